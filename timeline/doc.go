/*
Package timeline provides loading, validation and read-only storage of
per-entity replay material: an immutable path plus an ordered event log.

This package is data-source agnostic for storage purposes - the Store accepts
an already-built Run - while DecodeRun understands the simulation generator's
JSON run documents directly.

# Basic Usage

Load from a run document:

	f, _ := os.Open("run.json")
	defer f.Close()

	run, err := timeline.DecodeRun(f)
	if err != nil {
	    log.Fatal(err) // ErrMalformedTimeline: whole batch rejected
	}
	store, err := timeline.NewStore(run)
	if err != nil {
	    log.Fatal(err)
	}

	tl, ok := store.Get("trike_0")

# Validation

NewStore enforces the structural invariants at load time and rejects the
entire batch on the first violation:

  - every path has at least one waypoint
  - every MOVE has enough waypoints left on the path
  - event times are non-decreasing and inside [CreateTime, DeathTime]
  - FINISH is terminal
  - passenger event order obeys the passenger status DAG

# Immutability

Path and event content never mutates after load. Replay progress (cursors)
belongs to the replay package, so one Store can back many replays. A Store is
discarded wholesale when a new run is loaded; there is no per-entity
teardown.
*/
package timeline
