package fleetreplay

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/theoremus-urban-solutions/fleet-replay/feed"
	"github.com/theoremus-urban-solutions/fleet-replay/replay"
	"github.com/theoremus-urban-solutions/fleet-replay/siri"
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

type healthResponse struct {
	Status         string `json:"status"`
	RunID          string `json:"runId"`
	SimTime        int64  `json:"simTime"`
	ActiveEntities int    `json:"activeEntities"`
	Subscribers    int    `json:"subscribers"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:         "ok",
		RunID:          s.store.RunID(),
		SimTime:        s.engine.Now(),
		ActiveEntities: s.engine.ActiveCount(),
		Subscribers:    s.hub.SubscriberCount(),
	})
}

type stateResponse struct {
	RunID    string               `json:"runId"`
	SimTime  int64                `json:"simTime"`
	TickMS   int64                `json:"tickMS"`
	Entities []replay.EntityState `json:"entities"`
}

func (s *Service) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stateResponse{
		RunID:    s.store.RunID(),
		SimTime:  s.engine.Now(),
		TickMS:   s.engine.TickMS(),
		Entities: s.engine.Snapshot(),
	})
}

func (s *Service) handleTerminals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	terminals := s.store.Terminals()
	if terminals == nil {
		terminals = []timeline.Terminal{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"terminals": terminals})
}

type seekResponse struct {
	EntityID string         `json:"entityId"`
	SimTime  int64          `json:"simTime"`
	Pos      timeline.Point `json:"pos"`
}

// handleSeek answers position-at-arbitrary-time queries without touching
// playback. Seeking projects pure constant-speed motion along the path.
func (s *Service) handleSeek(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := r.URL.Query().Get("entity")
	at, err := strconv.ParseInt(r.URL.Query().Get("time"), 10, 64)
	if id == "" || err != nil {
		writeJSONError(w, http.StatusBadRequest, "entity and numeric time parameters are required")
		return
	}
	pos, err := s.engine.SeekPosition(id, at)
	if err != nil {
		if errors.Is(err, replay.ErrUnknownEntity) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = json.NewEncoder(w).Encode(seekResponse{EntityID: id, SimTime: at, Pos: pos})
}

func (s *Service) handleVehicleMonitoringJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := siri.BuildVehicleMonitoring(s.engine.Snapshot(), s.engine.Now(), siri.BuildOptions{
		ProducerRef:   s.cfg.Replay.ProducerRef,
		RunID:         s.store.RunID(),
		AnchorEpochMS: s.anchorMS,
		ValidityMS:    s.engine.TickMS(),
	})
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Service) handleVehiclePositionsPB(w http.ResponseWriter, r *http.Request) {
	buf, err := feed.MarshalVehiclePositions(s.engine.Snapshot(), s.engine.Now(), feed.BuildOptions{
		AnchorEpochMS: s.anchorMS,
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/x-protobuf")
	_, _ = w.Write(buf)
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
