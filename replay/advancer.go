package replay

import (
	"errors"
	"math"

	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
	"github.com/theoremus-urban-solutions/fleet-replay/utils"
)

// ErrIndexOutOfRange is the per-entity fatal fault: the cursor needs a path
// waypoint that does not exist. The affected entity halts; the batch
// continues.
var ErrIndexOutOfRange = errors.New("path index out of range")

// A segment counts as traversed once progress reaches 1-segmentDoneEpsilon.
// The tolerance absorbs floating-point drift between elapsed-time distance
// and segment length; without it an entity can stall one frame short of a
// waypoint and never advance.
const segmentDoneEpsilon = 0.005

// advancer is the stepped resolver for one entity. It owns the mutable
// cursor over the immutable timeline: event index, path index, the
// remaining-MOVE and remaining-WAIT counters, and the time of the last
// event/segment boundary.
type advancer struct {
	tl *timeline.EntityTimeline

	eventIdx      int
	pathIdx       int
	remainingMove int
	remainingWait int64
	lastBoundary  int64

	pos    timeline.Point
	active bool
	failed bool

	pstatus timeline.PassengerStatus
	vstatus timeline.VehicleStatus
}

// passengerHook lets a vehicle's LOAD/DROP-OFF/ENQUEUE/RESET reach the
// referenced passenger's status.
type passengerHook func(passengerID string, ev timeline.Event)

func newAdvancer(tl *timeline.EntityTimeline) *advancer {
	a := &advancer{
		tl:           tl,
		active:       true,
		pos:          tl.Path[0],
		lastBoundary: tl.CreateTime,
		pstatus:      timeline.PassengerWaiting,
		vstatus:      tl.InitialVehicleStatus,
	}
	a.prime()
	return a
}

// step advances the entity by one tick at the given clock reading. At most
// one discrete event is consumed per tick; MOVE and WAIT consume ticks until
// their progress preconditions are met.
func (a *advancer) step(now int64, emit func(Notification), touch passengerHook) {
	if !a.active || a.failed {
		return
	}
	if now < a.tl.CreateTime {
		return
	}
	if a.eventIdx >= len(a.tl.Events) {
		a.active = false
		return
	}

	switch ev := a.tl.Events[a.eventIdx].(type) {
	case timeline.Appear:
		if ev.Spawn != nil {
			a.pos = *ev.Spawn
		} else {
			a.pos = a.tl.Path[0]
		}
		var status string
		if a.tl.Kind == timeline.KindPassenger {
			a.pstatus = ProjectPassenger(a.pstatus, ev)
			status = string(a.pstatus)
		} else {
			status = string(a.vstatus)
		}
		emit(Notification{
			EntityID: a.tl.ID,
			Kind:     ev.Kind(),
			SimTime:  now,
			Severity: SeverityEvent,
			Status:   status,
		})
		a.advanceEvent(now)

	case timeline.Move:
		a.stepMove(now, emit)

	case timeline.Wait:
		a.remainingWait -= now - a.lastBoundary
		a.lastBoundary = now
		if a.remainingWait <= 0 {
			a.advanceEvent(now)
		}

	case timeline.Load, timeline.DropOff, timeline.Enqueue, timeline.Reset:
		a.applyInstant(a.tl.Events[a.eventIdx], now, emit, touch)

	case timeline.Finish:
		a.active = false
		a.eventIdx++
		emit(Notification{
			EntityID: a.tl.ID,
			Kind:     ev.Kind(),
			SimTime:  now,
			Severity: SeverityEvent,
		})

	case timeline.Unknown:
		emit(Notification{
			EntityID: a.tl.ID,
			Kind:     ev.Kind(),
			Payload:  "unrecognized event kind skipped",
			SimTime:  now,
			Severity: SeverityWarning,
		})
		a.advanceEvent(now)
	}
}

func (a *advancer) stepMove(now int64, emit func(Notification)) {
	if a.pathIdx+1 >= len(a.tl.Path) {
		a.failed = true
		emit(Notification{
			EntityID: a.tl.ID,
			Kind:     timeline.EventMove,
			Payload:  ErrIndexOutOfRange.Error(),
			SimTime:  now,
			Severity: SeverityError,
		})
		return
	}

	elapsed := float64(now - a.lastBoundary)
	segLen := a.tl.Path.SegmentLength(a.pathIdx)
	progress := 1.0
	if segLen > 0 {
		progress = math.Min(1, elapsed*a.tl.Speed/segLen)
	}

	if progress >= 1-segmentDoneEpsilon {
		a.pos = a.tl.Path[a.pathIdx+1]
		a.pathIdx++
		a.lastBoundary = now
		a.remainingMove--
		if a.remainingMove <= 0 {
			a.advanceEvent(now)
		}
		return
	}

	from := a.tl.Path[a.pathIdx]
	to := a.tl.Path[a.pathIdx+1]
	lon, lat := utils.Interpolate(from.Lon, from.Lat, to.Lon, to.Lat, progress)
	a.pos = timeline.Point{Lon: lon, Lat: lat}
}

// applyInstant handles the instantaneous passenger-coupled events: position
// snaps to the current waypoint, status is projected, and the event is
// consumed the same tick it is reached.
func (a *advancer) applyInstant(ev timeline.Event, now int64, emit func(Notification), touch passengerHook) {
	a.pos = a.tl.Path[a.pathIdx]

	var status string
	if a.tl.Kind == timeline.KindPassenger {
		a.pstatus = ProjectPassenger(a.pstatus, ev)
		status = string(a.pstatus)
	} else {
		a.vstatus = ProjectVehicle(a.vstatus, ev)
		status = string(a.vstatus)
		if pid, ok := timeline.PassengerRef(ev); ok && pid != "" && touch != nil {
			touch(pid, ev)
		}
	}

	payload, _ := timeline.PassengerRef(ev)
	emit(Notification{
		EntityID: a.tl.ID,
		Kind:     ev.Kind(),
		Payload:  payload,
		SimTime:  now,
		Severity: SeverityEvent,
		Status:   status,
	})
	a.advanceEvent(now)
}

// advanceEvent moves the cursor to the next event, resets the boundary time
// and primes the counters the new event needs.
func (a *advancer) advanceEvent(now int64) {
	a.eventIdx++
	a.lastBoundary = now
	if a.eventIdx >= len(a.tl.Events) {
		a.active = false
		return
	}
	a.prime()
}

func (a *advancer) prime() {
	if a.eventIdx >= len(a.tl.Events) {
		return
	}
	switch e := a.tl.Events[a.eventIdx].(type) {
	case timeline.Move:
		a.remainingMove = e.Segments
	case timeline.Wait:
		a.remainingWait = e.DurationMS
	}
}
