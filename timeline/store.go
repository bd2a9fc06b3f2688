package timeline

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedTimeline is the load-time structural failure. It rejects the
// whole batch; there is no partial load.
var ErrMalformedTimeline = errors.New("malformed timeline")

// Store holds one validated, immutable run. Lookups are read-only; path and
// event content never changes after NewStore returns. Replay cursors live in
// the replay engine, so a Store can safely back concurrent readers.
type Store struct {
	timelines map[string]*EntityTimeline
	ids       []string
	terminals []Terminal
	runID     string
}

// NewStore validates every timeline in the run and returns a read-only store
// over them. Any violation fails the entire batch with ErrMalformedTimeline.
func NewStore(run *Run) (*Store, error) {
	if run == nil {
		return nil, fmt.Errorf("%w: nil run", ErrMalformedTimeline)
	}
	ids := make([]string, 0, len(run.Timelines))
	for id, tl := range run.Timelines {
		if tl == nil {
			return nil, fmt.Errorf("%w: entity %q: nil timeline", ErrMalformedTimeline, id)
		}
		if id != tl.ID {
			return nil, fmt.Errorf("%w: entity %q: keyed under %q", ErrMalformedTimeline, tl.ID, id)
		}
		if err := validateTimeline(tl); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &Store{
		timelines: run.Timelines,
		ids:       ids,
		terminals: run.Terminals,
		runID:     run.ID,
	}, nil
}

// Get returns the timeline for id.
func (s *Store) Get(id string) (*EntityTimeline, bool) {
	tl, ok := s.timelines[id]
	return tl, ok
}

// IDs returns all entity ids in deterministic (sorted) order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of timelines in the store.
func (s *Store) Len() int { return len(s.ids) }

// RunID returns the identifier of the loaded run.
func (s *Store) RunID() string { return s.runID }

// Terminals returns the overlay terminal records, which may be empty when
// the external overlay data was unavailable.
func (s *Store) Terminals() []Terminal {
	out := make([]Terminal, len(s.terminals))
	copy(out, s.terminals)
	return out
}

func validateTimeline(tl *EntityTimeline) error {
	fail := func(format string, args ...any) error {
		detail := fmt.Sprintf(format, args...)
		return fmt.Errorf("%w: entity %q: %s", ErrMalformedTimeline, tl.ID, detail)
	}

	if tl.Kind != KindVehicle && tl.Kind != KindPassenger {
		return fail("unknown entity kind %q", tl.Kind)
	}
	if len(tl.Path) < 1 {
		return fail("path must have at least one waypoint")
	}
	if tl.DeathTime >= 0 && tl.DeathTime < tl.CreateTime {
		return fail("destruction time %d precedes creation time %d", tl.DeathTime, tl.CreateTime)
	}

	pathIdx := 0
	lastTime := tl.CreateTime
	finished := false
	pstatus := PassengerWaiting

	for i, ev := range tl.Events {
		if finished {
			return fail("event %d (%s) follows FINISH", i, ev.Kind())
		}
		at := ev.FrameTime()
		if at < tl.CreateTime {
			return fail("event %d (%s) at %d precedes creation time %d", i, ev.Kind(), at, tl.CreateTime)
		}
		if tl.DeathTime >= 0 && at > tl.DeathTime {
			return fail("event %d (%s) at %d exceeds destruction time %d", i, ev.Kind(), at, tl.DeathTime)
		}
		if at < lastTime {
			return fail("event %d (%s) at %d out of order (previous %d)", i, ev.Kind(), at, lastTime)
		}
		lastTime = at

		switch e := ev.(type) {
		case Move:
			if e.Segments <= 0 {
				return fail("event %d: MOVE count %d must be positive", i, e.Segments)
			}
			if tl.Speed <= 0 {
				return fail("MOVE events require a positive speed, got %g", tl.Speed)
			}
			if pathIdx+e.Segments > len(tl.Path)-1 {
				return fail("event %d: MOVE(%d) from path index %d needs %d waypoints, path has %d",
					i, e.Segments, pathIdx, pathIdx+e.Segments+1, len(tl.Path))
			}
			pathIdx += e.Segments
		case Wait:
			if e.DurationMS < 0 {
				return fail("event %d: WAIT duration %d must not be negative", i, e.DurationMS)
			}
		case Finish:
			finished = true
		}

		if tl.Kind == KindPassenger {
			next, ok := passengerStep(pstatus, ev)
			if !ok {
				return fail("event %d: %s not allowed in passenger status %s", i, ev.Kind(), pstatus)
			}
			pstatus = next
		}
	}
	return nil
}

// passengerStep checks one passenger event against the status DAG:
// WAITING -> ENQUEUED -> ONBOARD -> COMPLETED, forward only, with RESET
// returning ENQUEUED/ONBOARD to WAITING. COMPLETED is absorbing.
func passengerStep(cur PassengerStatus, ev Event) (PassengerStatus, bool) {
	if cur == PassengerCompleted {
		switch ev.(type) {
		case Enqueue, Load, DropOff, Reset:
			return cur, false
		}
		return cur, true
	}
	switch ev.(type) {
	case Appear:
		return PassengerWaiting, cur == PassengerWaiting
	case Enqueue:
		return PassengerEnqueued, cur == PassengerWaiting
	case Load:
		return PassengerOnboard, cur == PassengerWaiting || cur == PassengerEnqueued
	case DropOff:
		return PassengerCompleted, cur == PassengerOnboard
	case Reset:
		return PassengerWaiting, cur == PassengerEnqueued || cur == PassengerOnboard
	}
	return cur, true
}
