package timeline

// Wire names for event kinds, as recorded by the simulation generator.
const (
	EventAppear  = "APPEAR"
	EventMove    = "MOVE"
	EventWait    = "WAIT"
	EventLoad    = "LOAD"
	EventDropOff = "DROP-OFF"
	EventEnqueue = "ENQUEUE"
	EventReset   = "RESET"
	EventFinish  = "FINISH"
)

// Event is the closed set of timeline event variants. Each variant carries
// only the fields its semantics require, plus the logical frame time the
// generator recorded it at (used for logging, not for replay pacing).
type Event interface {
	Kind() string
	FrameTime() int64
	isEvent()
}

// Appear places the entity into the world. Spawn overrides the path origin
// for entities that do not start on their path.
type Appear struct {
	At    int64
	Spawn *Point
}

func (Appear) isEvent() {}

func (e Appear) Kind() string { return EventAppear }

func (e Appear) FrameTime() int64 { return e.At }

// Move traverses Segments consecutive path segments at the entity's speed.
type Move struct {
	At       int64
	Segments int
}

func (Move) isEvent() {}

func (e Move) Kind() string { return EventMove }

func (e Move) FrameTime() int64 { return e.At }

// Wait holds the entity in place for DurationMS simulation milliseconds.
type Wait struct {
	At         int64
	DurationMS int64
}

func (Wait) isEvent() {}

func (e Wait) Kind() string { return EventWait }

func (e Wait) FrameTime() int64 { return e.At }

// Load boards the referenced passenger.
type Load struct {
	At          int64
	PassengerID string
}

func (Load) isEvent() {}

func (e Load) Kind() string { return EventLoad }

func (e Load) FrameTime() int64 { return e.At }

// DropOff delivers the referenced passenger.
type DropOff struct {
	At          int64
	PassengerID string
}

func (DropOff) isEvent() {}

func (e DropOff) Kind() string { return EventDropOff }

func (e DropOff) FrameTime() int64 { return e.At }

// Enqueue claims the referenced passenger for pickup.
type Enqueue struct {
	At          int64
	PassengerID string
}

func (Enqueue) isEvent() {}

func (e Enqueue) Kind() string { return EventEnqueue }

func (e Enqueue) FrameTime() int64 { return e.At }

// Reset releases a claim, returning the referenced passenger to WAITING.
type Reset struct {
	At          int64
	PassengerID string
}

func (Reset) isEvent() {}

func (e Reset) Kind() string { return EventReset }

func (e Reset) FrameTime() int64 { return e.At }

// Finish terminates the entity's replay. No events may follow it.
type Finish struct {
	At int64
}

func (Finish) isEvent() {}

func (e Finish) Kind() string { return EventFinish }

func (e Finish) FrameTime() int64 { return e.At }

// Unknown preserves an unrecognized event kind through load. The replay
// engine skips it with a warning rather than failing the batch.
type Unknown struct {
	At      int64
	RawKind string
}

func (Unknown) isEvent() {}

func (e Unknown) Kind() string { return e.RawKind }

func (e Unknown) FrameTime() int64 { return e.At }

// PassengerRef returns the passenger identifier carried by passenger-coupled
// events (LOAD, DROP-OFF, ENQUEUE, RESET) and false for everything else.
func PassengerRef(ev Event) (string, bool) {
	switch e := ev.(type) {
	case Load:
		return e.PassengerID, true
	case DropOff:
		return e.PassengerID, true
	case Enqueue:
		return e.PassengerID, true
	case Reset:
		return e.PassengerID, true
	}
	return "", false
}
