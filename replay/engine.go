package replay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
	"github.com/theoremus-urban-solutions/fleet-replay/utils"
)

// ErrUnknownEntity is returned for lookups on ids absent from the loaded run.
var ErrUnknownEntity = errors.New("unknown entity")

// EntityStatus is the engine's answer to a status query: the entity kind
// plus whichever status applies to it.
type EntityStatus struct {
	Kind      timeline.Kind
	Passenger timeline.PassengerStatus
	Vehicle   timeline.VehicleStatus
}

func (s EntityStatus) String() string {
	if s.Kind == timeline.KindPassenger {
		return string(s.Passenger)
	}
	return string(s.Vehicle)
}

// EntityState is one entity's projection at a point in time, as served to
// sinks (stream frames, SIRI, GTFS-RT).
type EntityState struct {
	ID      string         `json:"id"`
	Kind    timeline.Kind  `json:"kind"`
	Pos     timeline.Point `json:"pos"`
	Status  string         `json:"status"`
	Active  bool           `json:"active"`
	Failed  bool           `json:"failed"`
	Bearing *float64       `json:"bearing,omitempty"`
}

// Engine replays one loaded run. It owns the playback clock and one advancer
// (cursor) per entity; the underlying store stays immutable. A single
// scheduler goroutine calls Tick; readers may call the query methods
// concurrently.
type Engine struct {
	mu        sync.RWMutex
	store     *timeline.Store
	clock     *Clock
	advancers map[string]*advancer
	order     []string
	listeners []Listener
}

// New builds an engine over a validated store. The clock may be shared with
// other consumers; the engine is its only writer.
func New(store *timeline.Store, clock *Clock) *Engine {
	if clock == nil {
		clock = NewClock(DefaultTickMS)
	}
	e := &Engine{
		store: store,
		clock: clock,
		order: store.IDs(),
	}
	e.rebuild()
	return e
}

func (e *Engine) rebuild() {
	e.advancers = make(map[string]*advancer, len(e.order))
	for _, id := range e.order {
		tl, _ := e.store.Get(id)
		e.advancers[id] = newAdvancer(tl)
	}
}

// OnEvent registers a listener invoked synchronously for every applied
// discrete event, warning and failure. Listeners must not call back into the
// engine.
func (e *Engine) OnEvent(fn Listener) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) emit(n Notification) {
	for _, fn := range e.listeners {
		fn(n)
	}
}

// Tick advances the clock by one tick and steps every active entity with the
// new reading. It returns the new simulation time.
func (e *Engine) Tick() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Advance()
	for _, id := range e.order {
		e.advancers[id].step(now, e.emit, e.touchPassenger)
	}
	return now
}

// touchPassenger applies a vehicle's passenger-coupled event to the
// referenced passenger's status. A dangling reference is recoverable: the
// vehicle's own replay is unaffected.
func (e *Engine) touchPassenger(passengerID string, ev timeline.Event) {
	adv, ok := e.advancers[passengerID]
	if !ok || adv.tl.Kind != timeline.KindPassenger {
		e.emit(Notification{
			EntityID: passengerID,
			Kind:     ev.Kind(),
			Payload:  "event references unknown passenger",
			SimTime:  e.clock.Now(),
			Severity: SeverityWarning,
		})
		return
	}
	adv.pstatus = ProjectPassenger(adv.pstatus, ev)
}

// Now returns the current simulation time.
func (e *Engine) Now() int64 { return e.clock.Now() }

// TickMS returns the clock's fixed tick duration.
func (e *Engine) TickMS() int64 { return e.clock.TickMS() }

// Store returns the immutable run material backing this engine.
func (e *Engine) Store() *timeline.Store { return e.store }

// GetPosition returns the entity's current replayed position.
func (e *Engine) GetPosition(id string) (timeline.Point, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	adv, ok := e.advancers[id]
	if !ok {
		return timeline.Point{}, fmt.Errorf("%w: %q", ErrUnknownEntity, id)
	}
	return adv.pos, nil
}

// GetStatus returns the entity's current discrete status.
func (e *Engine) GetStatus(id string) (EntityStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	adv, ok := e.advancers[id]
	if !ok {
		return EntityStatus{}, fmt.Errorf("%w: %q", ErrUnknownEntity, id)
	}
	return EntityStatus{
		Kind:      adv.tl.Kind,
		Passenger: adv.pstatus,
		Vehicle:   adv.vstatus,
	}, nil
}

// SeekPosition computes the entity's position at an arbitrary absolute time
// without touching any cursor. See Seek for the constant-speed caveat.
func (e *Engine) SeekPosition(id string, absoluteTime int64) (timeline.Point, error) {
	tl, ok := e.store.Get(id)
	if !ok {
		return timeline.Point{}, fmt.Errorf("%w: %q", ErrUnknownEntity, id)
	}
	return Seek(tl, absoluteTime), nil
}

// ActiveCount reports how many entities still request ticks.
func (e *Engine) ActiveCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, adv := range e.advancers {
		if adv.active && !adv.failed {
			n++
		}
	}
	return n
}

// Snapshot returns every entity's state in deterministic order.
func (e *Engine) Snapshot() []EntityState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]EntityState, 0, len(e.order))
	for _, id := range e.order {
		adv := e.advancers[id]
		status := EntityStatus{Kind: adv.tl.Kind, Passenger: adv.pstatus, Vehicle: adv.vstatus}
		var bearing *float64
		if adv.tl.Kind == timeline.KindVehicle && adv.pathIdx+1 < len(adv.tl.Path) {
			from := adv.tl.Path[adv.pathIdx]
			to := adv.tl.Path[adv.pathIdx+1]
			b := utils.BearingDegrees(from.Lon, from.Lat, to.Lon, to.Lat)
			bearing = &b
		}
		out = append(out, EntityState{
			ID:      id,
			Kind:    adv.tl.Kind,
			Pos:     adv.pos,
			Status:  status.String(),
			Active:  adv.active && !adv.failed,
			Failed:  adv.failed,
			Bearing: bearing,
		})
	}
	return out
}

// Reset zeroes the clock and drops every cursor back to its initial state.
// This is the only supported cancellation; there is no per-entity reset.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock.Reset()
	e.rebuild()
}
