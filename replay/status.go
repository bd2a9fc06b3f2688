package replay

import (
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

// ProjectPassenger maps (current status, event) to the passenger's next
// status. Pure: no side effects, callers persist the returned value.
// COMPLETED is absorbing; RESET returns ENQUEUED/ONBOARD to WAITING.
func ProjectPassenger(cur timeline.PassengerStatus, ev timeline.Event) timeline.PassengerStatus {
	if cur == timeline.PassengerCompleted {
		return cur
	}
	switch ev.(type) {
	case timeline.Appear:
		return timeline.PassengerWaiting
	case timeline.Enqueue:
		return timeline.PassengerEnqueued
	case timeline.Load:
		return timeline.PassengerOnboard
	case timeline.DropOff:
		return timeline.PassengerCompleted
	case timeline.Reset:
		if cur == timeline.PassengerEnqueued || cur == timeline.PassengerOnboard {
			return timeline.PassengerWaiting
		}
	}
	return cur
}

// ProjectVehicle maps (current status, event) to the vehicle's next status.
// Only ENQUEUE, LOAD and DROP-OFF are structurally relevant; every other
// event passes the current status through unchanged. IDLE, AT_TERMINAL and
// ROAMING are opaque values the scheduling context seeded - the engine never
// computes them itself.
func ProjectVehicle(cur timeline.VehicleStatus, ev timeline.Event) timeline.VehicleStatus {
	switch ev.(type) {
	case timeline.Enqueue:
		return timeline.VehicleEnqueuing
	case timeline.Load:
		return timeline.VehicleServing
	case timeline.DropOff:
		return timeline.VehicleReturning
	}
	return cur
}
