package fleetreplay

import (
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/fleet-replay/replay"
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

func testStore(t *testing.T) *timeline.Store {
	t.Helper()
	run := &timeline.Run{
		ID: "test-run",
		Timelines: map[string]*timeline.EntityTimeline{
			"trike_1": {
				ID:                   "trike_1",
				Kind:                 timeline.KindVehicle,
				Path:                 timeline.Path{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 2, Lat: 0}},
				Speed:                0.001,
				DeathTime:            -1,
				InitialVehicleStatus: timeline.VehicleRoaming,
				Events: []timeline.Event{
					timeline.Appear{At: 0},
					timeline.Move{At: 0, Segments: 2},
					timeline.Finish{At: 3000},
				},
			},
		},
		Terminals: []timeline.Terminal{
			{ID: "terminal_0", Location: timeline.Point{Lon: 0, Lat: 0}, RemainingPassengers: 3},
		},
	}
	store, err := timeline.NewStore(run)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestRunnerStopsWhenPlaybackCompletes(t *testing.T) {
	engine := replay.New(testStore(t), replay.NewClock(1000))
	runner := NewRunner(engine, time.Millisecond, false)

	frames := make(chan int64, 16)
	runner.OnTick(func(simTime int64, notes []replay.Notification) {
		select {
		case frames <- simTime:
		default:
		}
	})
	runner.Start()

	deadline := time.After(2 * time.Second)
	var last int64
	for engine.ActiveCount() > 0 {
		select {
		case last = <-frames:
		case <-deadline:
			t.Fatal("playback did not complete")
		}
	}
	runner.Stop() // loop already exited on its own; must not hang

	if last == 0 && engine.Now() == 0 {
		t.Fatal("runner never ticked")
	}
	// APPEAR, two segments, FINISH: four ticks.
	if engine.Now() != 4000 {
		t.Errorf("sim time = %d at completion, want 4000", engine.Now())
	}
}

func TestRunnerLoopRestartsPlayback(t *testing.T) {
	engine := replay.New(testStore(t), replay.NewClock(1000))
	runner := NewRunner(engine, time.Millisecond, true)

	restarted := make(chan struct{}, 1)
	var sawEnd bool
	runner.OnTick(func(simTime int64, notes []replay.Notification) {
		if simTime >= 4000 {
			sawEnd = true
		}
		if sawEnd && simTime == 1000 {
			select {
			case restarted <- struct{}{}:
			default:
			}
		}
	})
	runner.Start()
	defer runner.Stop()

	select {
	case <-restarted:
	case <-time.After(2 * time.Second):
		t.Fatal("looping playback never restarted")
	}
}

func TestRunnerTickDeliversNotifications(t *testing.T) {
	engine := replay.New(testStore(t), replay.NewClock(1000))
	runner := NewRunner(engine, time.Millisecond, false)

	kinds := make(chan string, 16)
	runner.OnTick(func(simTime int64, notes []replay.Notification) {
		for _, n := range notes {
			select {
			case kinds <- n.Kind:
			default:
			}
		}
	})
	runner.Start()
	defer runner.Stop()

	select {
	case k := <-kinds:
		if k != timeline.EventAppear {
			t.Fatalf("first notification kind = %q, want APPEAR", k)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notifications delivered")
	}
}
