package timeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Run records in the simulation generator's JSON shapes. Paths are tagged
// point dicts ({"type":"point","data":[lon,lat]}) and events are
// {type,data,time,location} dicts whose data field depends on the kind.

type pointRecord struct {
	Type string    `json:"type" validate:"required,eq=point"`
	Data []float64 `json:"data" validate:"required,len=2"`
}

func (p pointRecord) point() Point {
	return Point{Lon: p.Data[0], Lat: p.Data[1]}
}

type eventRecord struct {
	Type     string          `json:"type" validate:"required"`
	Data     json.RawMessage `json:"data"`
	Time     int64           `json:"time" validate:"gte=0"`
	Location []float64       `json:"location"`
}

type entityRecord struct {
	ID         string        `json:"id" validate:"required"`
	Type       string        `json:"type" validate:"required,oneof=trike passenger"`
	Speed      float64       `json:"speed" validate:"gte=0"`
	IsRoaming  bool          `json:"isRoaming"`
	CreateTime int64         `json:"createTime" validate:"gte=0"`
	DeathTime  int64         `json:"deathTime"`
	Path       []pointRecord `json:"path" validate:"required,min=1,dive"`
	Events     []eventRecord `json:"events" validate:"dive"`
}

type runRecord struct {
	RunID      string         `json:"runId"`
	Trikes     []entityRecord `json:"trikes" validate:"dive"`
	Passengers []entityRecord `json:"passengers" validate:"dive"`
}

type terminalRecord struct {
	ID                  string      `json:"id" validate:"required"`
	Location            pointRecord `json:"location" validate:"required"`
	RemainingPassengers int         `json:"remainingPassengers" validate:"gte=0"`
	RemainingVehicles   int         `json:"remainingVehicles" validate:"gte=0"`
}

// DecodeRun reads a generator run document ({"trikes": [...], "passengers":
// [...]}) and converts it into a Run. Records are validated structurally
// before conversion; any violation rejects the whole document with
// ErrMalformedTimeline. Unrecognized event kinds are preserved as Unknown
// events rather than rejected, since the replay engine treats them as
// recoverable.
func DecodeRun(r io.Reader) (*Run, error) {
	var rec runRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: decode run document: %v", ErrMalformedTimeline, err)
	}

	v := validator.New()
	if err := v.Struct(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTimeline, err)
	}

	run := &Run{
		ID:        rec.RunID,
		Timelines: make(map[string]*EntityTimeline, len(rec.Trikes)+len(rec.Passengers)),
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	for _, er := range rec.Trikes {
		tl, err := convertEntity(er, KindVehicle)
		if err != nil {
			return nil, err
		}
		if _, dup := run.Timelines[tl.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate entity id %q", ErrMalformedTimeline, tl.ID)
		}
		run.Timelines[tl.ID] = tl
	}
	for _, er := range rec.Passengers {
		tl, err := convertEntity(er, KindPassenger)
		if err != nil {
			return nil, err
		}
		if _, dup := run.Timelines[tl.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate entity id %q", ErrMalformedTimeline, tl.ID)
		}
		run.Timelines[tl.ID] = tl
	}
	return run, nil
}

// DecodeTerminals reads the terminals overlay document. Callers treat a
// missing or unreadable overlay as recoverable; only decode errors on a
// present document are reported.
func DecodeTerminals(r io.Reader) ([]Terminal, error) {
	var recs []terminalRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode terminals document: %w", err)
	}
	v := validator.New()
	terminals := make([]Terminal, 0, len(recs))
	for _, tr := range recs {
		if err := v.Struct(tr); err != nil {
			return nil, fmt.Errorf("terminal %q: %w", tr.ID, err)
		}
		terminals = append(terminals, Terminal{
			ID:                  tr.ID,
			Location:            tr.Location.point(),
			RemainingPassengers: tr.RemainingPassengers,
			RemainingVehicles:   tr.RemainingVehicles,
		})
	}
	return terminals, nil
}

func convertEntity(er entityRecord, kind Kind) (*EntityTimeline, error) {
	path := make(Path, len(er.Path))
	for i, pr := range er.Path {
		path[i] = pr.point()
	}

	events := make([]Event, 0, len(er.Events))
	for i, ev := range er.Events {
		converted, err := convertEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("%w: entity %q event %d: %v", ErrMalformedTimeline, er.ID, i, err)
		}
		events = append(events, converted)
	}

	death := er.DeathTime
	if death < 0 {
		death = -1
	}

	initial := VehicleIdle
	if er.IsRoaming {
		initial = VehicleRoaming
	}

	return &EntityTimeline{
		ID:                   er.ID,
		Kind:                 kind,
		Path:                 path,
		Speed:                er.Speed,
		CreateTime:           er.CreateTime,
		DeathTime:            death,
		Events:               events,
		InitialVehicleStatus: initial,
	}, nil
}

func convertEvent(er eventRecord) (Event, error) {
	switch er.Type {
	case EventAppear:
		var spawn *Point
		if len(er.Location) == 2 {
			spawn = &Point{Lon: er.Location[0], Lat: er.Location[1]}
		}
		return Appear{At: er.Time, Spawn: spawn}, nil
	case EventMove:
		var segments int
		if err := json.Unmarshal(er.Data, &segments); err != nil {
			return nil, fmt.Errorf("MOVE payload: %v", err)
		}
		return Move{At: er.Time, Segments: segments}, nil
	case EventWait:
		var duration int64
		if err := json.Unmarshal(er.Data, &duration); err != nil {
			return nil, fmt.Errorf("WAIT payload: %v", err)
		}
		return Wait{At: er.Time, DurationMS: duration}, nil
	case EventLoad, EventDropOff, EventEnqueue, EventReset:
		var passengerID string
		if len(er.Data) > 0 {
			if err := json.Unmarshal(er.Data, &passengerID); err != nil {
				return nil, fmt.Errorf("%s payload: %v", er.Type, err)
			}
		}
		switch er.Type {
		case EventLoad:
			return Load{At: er.Time, PassengerID: passengerID}, nil
		case EventDropOff:
			return DropOff{At: er.Time, PassengerID: passengerID}, nil
		case EventEnqueue:
			return Enqueue{At: er.Time, PassengerID: passengerID}, nil
		default:
			return Reset{At: er.Time, PassengerID: passengerID}, nil
		}
	case EventFinish:
		return Finish{At: er.Time}, nil
	default:
		return Unknown{At: er.Time, RawKind: er.Type}, nil
	}
}
