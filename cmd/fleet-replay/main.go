package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"

	fleetreplay "github.com/theoremus-urban-solutions/fleet-replay"
	"github.com/theoremus-urban-solutions/fleet-replay/config"
	"github.com/theoremus-urban-solutions/fleet-replay/internal"
	"github.com/theoremus-urban-solutions/fleet-replay/replay"
	"github.com/theoremus-urban-solutions/fleet-replay/siri"
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

// tick ceiling for unbounded oneshot replays
const maxOneshotTicks = 1_000_000

func main() {
	cfgPath := flag.String("config", "", "config file path (default: config.yml when present)")
	runPath := flag.String("run", "", "generator run JSON (overrides config)")
	terminalsPath := flag.String("terminals", "", "terminals overlay JSON (overrides config)")
	mode := flag.String("mode", "serve", "serve|oneshot")
	seek := flag.Int64("seek", -1, "oneshot: project positions at this sim time (ms) instead of replaying")
	ticks := flag.Int("ticks", 0, "oneshot: tick count to replay (0 = until every entity finishes)")
	format := flag.String("format", "json", "oneshot output: json|siri")
	flag.Parse()

	internal.InitLogging()
	if err := config.LoadAppConfig(*cfgPath); err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg := config.Config
	if *runPath != "" {
		cfg.Replay.RunPath = *runPath
	}
	if *terminalsPath != "" {
		cfg.Replay.TerminalsPath = *terminalsPath
	}
	if cfg.Replay.RunPath == "" {
		log.Fatal("no run file: pass -run or set replay.runPath")
	}

	run, err := timeline.LoadRunFile(cfg.Replay.RunPath)
	if err != nil {
		log.Fatalf("load run: %v", err)
	}
	if cfg.Replay.TerminalsPath != "" {
		terminals, err := timeline.LoadTerminalsFile(cfg.Replay.TerminalsPath)
		switch {
		case errors.Is(err, timeline.ErrMissingExternalData):
			log.Printf("continuing without terminals overlay: %v", err)
		case err != nil:
			log.Fatalf("load terminals: %v", err)
		default:
			run.Terminals = terminals
		}
	}
	store, err := timeline.NewStore(run)
	if err != nil {
		log.Fatalf("load store: %v", err)
	}
	log.Printf("loaded run %s: %d entities, %d terminals", store.RunID(), store.Len(), len(store.Terminals()))

	switch *mode {
	case "serve":
		svc := fleetreplay.NewService(store, cfg)
		svc.StartServer()
		svc.HandleGracefulShutdown()
	case "oneshot":
		oneshot(store, cfg, *seek, *ticks, *format)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func oneshot(store *timeline.Store, cfg config.AppConfig, seek int64, ticks int, format string) {
	engine := replay.New(store, replay.NewClock(int64(cfg.Replay.TickMS)))

	if seek >= 0 {
		out := make(map[string]timeline.Point, store.Len())
		for _, id := range store.IDs() {
			pos, err := engine.SeekPosition(id, seek)
			if err != nil {
				log.Fatalf("seek %s: %v", id, err)
			}
			out[id] = pos
		}
		printJSON(map[string]any{"simTime": seek, "positions": out})
		return
	}

	limit := ticks
	if limit <= 0 {
		limit = maxOneshotTicks
	}
	for i := 0; i < limit; i++ {
		engine.Tick()
		if ticks <= 0 && engine.ActiveCount() == 0 {
			break
		}
	}

	switch format {
	case "siri":
		printJSON(siri.BuildVehicleMonitoring(engine.Snapshot(), engine.Now(), siri.BuildOptions{
			ProducerRef:   cfg.Replay.ProducerRef,
			RunID:         store.RunID(),
			AnchorEpochMS: cfg.Replay.AnchorEpochMS,
			ValidityMS:    engine.TickMS(),
		}))
	case "json":
		printJSON(map[string]any{
			"runId":    store.RunID(),
			"simTime":  engine.Now(),
			"entities": engine.Snapshot(),
		})
	default:
		log.Fatalf("unknown format %q", format)
	}
}

func printJSON(v any) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(buf))
}
