package replay

import (
	"math"
	"testing"

	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

func collect(buf *[]Notification) func(Notification) {
	return func(n Notification) { *buf = append(*buf, n) }
}

func TestAdvancerHaltsOnMissingWaypoint(t *testing.T) {
	// Handcrafted past load validation: a MOVE with no waypoint left. The
	// advancer must fail this entity only, not panic.
	tl := &timeline.EntityTimeline{
		ID:         "trike_0",
		Kind:       timeline.KindVehicle,
		Path:       timeline.Path{{Lon: 0, Lat: 0}},
		Speed:      0.001,
		CreateTime: 0,
		DeathTime:  -1,
		Events: []timeline.Event{
			timeline.Appear{At: 0},
			timeline.Move{At: 0, Segments: 1},
		},
	}
	a := newAdvancer(tl)
	var notes []Notification
	a.step(1000, collect(&notes), nil) // APPEAR
	a.step(2000, collect(&notes), nil) // MOVE hits missing waypoint

	if !a.failed {
		t.Fatalf("advancer did not fail")
	}
	last := notes[len(notes)-1]
	if last.Severity != SeverityError {
		t.Fatalf("severity = %v, want error", last.Severity)
	}
	if last.Payload != ErrIndexOutOfRange.Error() {
		t.Fatalf("payload = %q", last.Payload)
	}

	// Further ticks are no-ops, no extra notifications.
	before := len(notes)
	a.step(3000, collect(&notes), nil)
	if len(notes) != before {
		t.Fatalf("failed advancer still emitting")
	}
}

func TestAdvancerMoveInterpolates(t *testing.T) {
	tl := &timeline.EntityTimeline{
		ID:         "trike_0",
		Kind:       timeline.KindVehicle,
		Path:       timeline.Path{{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}},
		Speed:      0.001, // 10 units = 10000ms per segment
		CreateTime: 0,
		DeathTime:  -1,
		Events: []timeline.Event{
			timeline.Appear{At: 0},
			timeline.Move{At: 0, Segments: 1},
		},
	}
	a := newAdvancer(tl)
	emit := func(Notification) {}

	a.step(1000, emit, nil) // APPEAR; boundary = 1000
	a.step(3000, emit, nil) // 2000ms into the segment
	if math.Abs(a.pos.Lon-2) > 1e-9 {
		t.Fatalf("pos.Lon = %g, want 2", a.pos.Lon)
	}
	a.step(6000, emit, nil)
	if math.Abs(a.pos.Lon-5) > 1e-9 {
		t.Fatalf("pos.Lon = %g, want 5", a.pos.Lon)
	}
	if a.pathIdx != 0 {
		t.Fatalf("segment completed early")
	}

	a.step(11000, emit, nil) // progress 1.0: segment done, snap to waypoint
	if a.pos != (timeline.Point{Lon: 10, Lat: 0}) {
		t.Fatalf("pos = %+v, want the next waypoint", a.pos)
	}
	if a.pathIdx != 1 {
		t.Fatalf("pathIdx = %d, want 1", a.pathIdx)
	}
}

func TestAdvancerMoveToleranceCompletesSegment(t *testing.T) {
	// 9960/10000 elapsed = progress 0.996 >= 0.995: the tolerance must
	// complete the segment rather than stall a frame short.
	tl := &timeline.EntityTimeline{
		ID:         "trike_0",
		Kind:       timeline.KindVehicle,
		Path:       timeline.Path{{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}},
		Speed:      0.001,
		CreateTime: 0,
		DeathTime:  -1,
		Events: []timeline.Event{
			timeline.Appear{At: 0},
			timeline.Move{At: 0, Segments: 1},
		},
	}
	a := newAdvancer(tl)
	emit := func(Notification) {}
	a.step(40, emit, nil)    // APPEAR; boundary = 40
	a.step(10000, emit, nil) // progress = 0.996
	if a.pathIdx != 1 {
		t.Fatalf("tolerance did not complete segment (pathIdx = %d)", a.pathIdx)
	}
	if a.pos != (timeline.Point{Lon: 10, Lat: 0}) {
		t.Fatalf("pos = %+v, want snapped waypoint", a.pos)
	}
}

func TestAdvancerWaitCountsDown(t *testing.T) {
	tl := &timeline.EntityTimeline{
		ID:         "trike_0",
		Kind:       timeline.KindVehicle,
		Path:       timeline.Path{{Lon: 3, Lat: 4}},
		CreateTime: 0,
		DeathTime:  -1,
		Events: []timeline.Event{
			timeline.Appear{At: 0},
			timeline.Wait{At: 0, DurationMS: 2500},
			timeline.Finish{At: 3000},
		},
	}
	a := newAdvancer(tl)
	emit := func(Notification) {}

	a.step(1000, emit, nil) // APPEAR
	a.step(2000, emit, nil) // wait: 1500 remaining
	a.step(3000, emit, nil) // wait: 500 remaining
	if a.eventIdx != 1 {
		t.Fatalf("wait consumed early (eventIdx = %d)", a.eventIdx)
	}
	if a.pos != (timeline.Point{Lon: 3, Lat: 4}) {
		t.Fatalf("position changed during WAIT: %+v", a.pos)
	}
	a.step(4000, emit, nil) // remaining -500: consumed
	if a.eventIdx != 2 {
		t.Fatalf("wait not consumed (eventIdx = %d)", a.eventIdx)
	}
}

func TestAdvancerIdlesBeforeCreation(t *testing.T) {
	tl := &timeline.EntityTimeline{
		ID:         "passenger_0",
		Kind:       timeline.KindPassenger,
		Path:       timeline.Path{{Lon: 1, Lat: 1}},
		CreateTime: 5000,
		DeathTime:  -1,
		Events:     []timeline.Event{timeline.Appear{At: 5000}},
	}
	a := newAdvancer(tl)
	var notes []Notification
	a.step(1000, collect(&notes), nil)
	a.step(4000, collect(&notes), nil)
	if len(notes) != 0 || a.eventIdx != 0 {
		t.Fatalf("advancer acted before creation time")
	}
	a.step(5000, collect(&notes), nil)
	if len(notes) != 1 || notes[0].Kind != timeline.EventAppear {
		t.Fatalf("APPEAR not consumed at creation time: %+v", notes)
	}
}
