package fleetreplay

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/fleet-replay/config"
	"github.com/theoremus-urban-solutions/fleet-replay/replay"
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

// Service ties an engine, a runner and the HTTP surface together.
type Service struct {
	cfg      config.AppConfig
	store    *timeline.Store
	engine   *replay.Engine
	runner   *Runner
	hub      *Hub
	server   *http.Server
	anchorMS int64
}

// NewService wires a service over a validated store. The anchor epoch maps
// simulation time onto wall-clock time for the SIRI and GTFS-RT exports; a
// zero config anchor uses service start.
func NewService(store *timeline.Store, cfg config.AppConfig) *Service {
	engine := replay.New(store, replay.NewClock(int64(cfg.Replay.TickMS)))

	anchor := cfg.Replay.AnchorEpochMS
	if anchor == 0 {
		anchor = time.Now().UnixMilli()
	}

	s := &Service{
		cfg:      cfg,
		store:    store,
		engine:   engine,
		hub:      newHub(),
		anchorMS: anchor,
	}
	s.runner = NewRunner(engine, time.Duration(cfg.Replay.FrameIntervalMS)*time.Millisecond, cfg.Replay.Loop)
	s.runner.OnTick(func(simTime int64, notes []replay.Notification) {
		s.hub.BroadcastFrame(frameMessage{
			Type:          "frame",
			SimTime:       simTime,
			Entities:      engine.Snapshot(),
			Notifications: notes,
			ServerTime:    time.Now().UnixMilli(),
		})
	})
	return s
}

// Engine exposes the underlying replay engine.
func (s *Service) Engine() *replay.Engine { return s.engine }

// StartServer begins playback and serves the HTTP API.
func (s *Service) StartServer() {
	s.runner.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/replay/state.json", s.handleState)
	mux.HandleFunc("/api/replay/terminals.json", s.handleTerminals)
	mux.HandleFunc("/api/replay/seek.json", s.handleSeek)
	mux.HandleFunc("/api/replay/stream", s.hub.HandleStream)
	mux.HandleFunc("/api/siri/vehicle-monitoring.json", s.handleVehicleMonitoringJSON)
	mux.HandleFunc("/api/gtfsrt/vehicle-positions.pb", s.handleVehiclePositionsPB)

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s (run %s, %d entities)", addr, s.store.RunID(), s.store.Len())
}

// HandleGracefulShutdown blocks until SIGINT/SIGTERM, then stops playback and
// drains the HTTP server.
func (s *Service) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")

	s.runner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}
