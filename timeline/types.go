package timeline

import (
	"github.com/theoremus-urban-solutions/fleet-replay/utils"
)

// Point is a coordinate in the simulation's coordinate space (lon/lat, the
// order the routing service emits them in).
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Path is an ordered sequence of waypoints. A segment is a consecutive pair.
type Path []Point

// SegmentLength returns the Euclidean length of the segment starting at
// waypoint i. The caller must ensure i+1 is a valid index.
func (p Path) SegmentLength(i int) float64 {
	return utils.EuclideanDistance(p[i].Lon, p[i].Lat, p[i+1].Lon, p[i+1].Lat)
}

// Length returns the total Euclidean length of the path.
func (p Path) Length() float64 {
	total := 0.0
	for i := 0; i+1 < len(p); i++ {
		total += p.SegmentLength(i)
	}
	return total
}

// Kind distinguishes vehicles from passengers. It is an explicit field on
// every timeline, set once at load time from the source record's own type
// tag, never inferred from the entity's identifier.
type Kind string

const (
	KindVehicle   Kind = "vehicle"
	KindPassenger Kind = "passenger"
)

// PassengerStatus is the passenger lifecycle state machine. Transitions only
// follow WAITING -> ENQUEUED -> ONBOARD -> COMPLETED, with ENQUEUED and
// ONBOARD allowed back to WAITING via a RESET event. COMPLETED is absorbing.
type PassengerStatus string

const (
	PassengerWaiting   PassengerStatus = "WAITING"
	PassengerEnqueued  PassengerStatus = "ENQUEUED"
	PassengerOnboard   PassengerStatus = "ONBOARD"
	PassengerCompleted PassengerStatus = "COMPLETED"
)

// VehicleStatus is the vehicle state. ENQUEUING, SERVING and RETURNING are
// derived from events during replay; IDLE, AT_TERMINAL and ROAMING are
// opaque pass-through values seeded by the scheduling context that produced
// the run.
type VehicleStatus string

const (
	VehicleIdle       VehicleStatus = "IDLE"
	VehicleAtTerminal VehicleStatus = "AT_TERMINAL"
	VehicleRoaming    VehicleStatus = "ROAMING"
	VehicleReturning  VehicleStatus = "RETURNING"
	VehicleServing    VehicleStatus = "SERVING"
	VehicleEnqueuing  VehicleStatus = "ENQUEUING"
)

// EntityTimeline is one entity's immutable replay material: its path, speed,
// lifetime bounds and ordered event log. Replay progress (the cursor) is
// owned by the replay engine, not stored here, so a loaded timeline can back
// any number of concurrent replays.
type EntityTimeline struct {
	ID         string
	Kind       Kind
	Path       Path
	Speed      float64 // path units per millisecond
	CreateTime int64   // sim ms
	DeathTime  int64   // sim ms; negative means unbounded
	Events     []Event

	// InitialVehicleStatus seeds the pass-through vehicle state (ROAMING for
	// roaming vehicles, IDLE otherwise). Ignored for passengers.
	InitialVehicleStatus VehicleStatus
}

// Unbounded reports whether the timeline has no finite destruction time.
func (t *EntityTimeline) Unbounded() bool { return t.DeathTime < 0 }

// Terminal is informational overlay data consumed only by rendering
// collaborators. The engine never reads it for replay decisions.
type Terminal struct {
	ID                  string `json:"id"`
	Location            Point  `json:"location"`
	RemainingPassengers int    `json:"remainingPassengers"`
	RemainingVehicles   int    `json:"remainingVehicles"`
}

// Run is one loaded simulation run: a batch of entity timelines plus
// optional terminal overlay data.
type Run struct {
	ID        string
	Timelines map[string]*EntityTimeline
	Terminals []Terminal
}
