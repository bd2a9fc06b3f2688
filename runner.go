package fleetreplay

import (
	"log"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/fleet-replay/replay"
)

// TickFunc receives the completed tick's simulation time and the
// notifications it produced.
type TickFunc func(simTime int64, notes []replay.Notification)

// Runner drives the engine's clock from a single goroutine. One wall-clock
// interval elapses per simulated tick; the two durations need not match
// (fast-forward playback uses a shorter interval).
type Runner struct {
	engine   *replay.Engine
	interval time.Duration
	loop     bool
	onTick   TickFunc

	pending  []replay.Notification
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewRunner prepares a runner; Start launches it. The runner registers its
// own engine listener, so construct it before any manual Tick calls.
func NewRunner(engine *replay.Engine, interval time.Duration, loop bool) *Runner {
	r := &Runner{
		engine:   engine,
		interval: interval,
		loop:     loop,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	engine.OnEvent(func(n replay.Notification) {
		r.pending = append(r.pending, n)
	})
	return r
}

// OnTick registers the per-tick callback. Must be called before Start.
func (r *Runner) OnTick(fn TickFunc) { r.onTick = fn }

// Start launches the tick loop. Playback stops on its own once every entity
// has finished, unless looping is enabled.
func (r *Runner) Start() {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.pending = r.pending[:0]
				now := r.engine.Tick()
				if r.onTick != nil {
					notes := make([]replay.Notification, len(r.pending))
					copy(notes, r.pending)
					r.onTick(now, notes)
				}
				if r.engine.ActiveCount() == 0 {
					if !r.loop {
						log.Printf("playback complete at sim time %dms", now)
						return
					}
					log.Printf("playback complete at sim time %dms, looping", now)
					r.engine.Reset()
				}
			}
		}
	}()
}

// Stop halts the tick loop and waits for it to exit. Safe to call more than
// once, and after the loop has stopped on its own.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}
