package siri

import (
	"github.com/theoremus-urban-solutions/fleet-replay/replay"
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
	"github.com/theoremus-urban-solutions/fleet-replay/utils"
)

// VehicleMonitoring represents the VehicleMonitoring delivery
type VehicleMonitoring struct {
	ResponseTimestamp string                 `json:"ResponseTimestamp"`
	ValidUntil        string                 `json:"ValidUntil,omitempty"`
	VehicleActivity   []VehicleActivityEntry `json:"VehicleActivity"`
}

// VehicleActivityEntry represents a single vehicle's activity
type VehicleActivityEntry struct {
	RecordedAtTime          string                  `json:"RecordedAtTime"`
	MonitoredVehicleJourney MonitoredVehicleJourney `json:"MonitoredVehicleJourney"`
}

// MonitoredVehicleJourney contains details about a monitored vehicle journey
type MonitoredVehicleJourney struct {
	FramedVehicleJourneyRef FramedVehicleJourneyRef `json:"FramedVehicleJourneyRef"`
	OperatorRef             string                  `json:"OperatorRef,omitempty"`
	Monitored               bool                    `json:"Monitored"`
	DataSource              string                  `json:"DataSource"`
	VehicleLocation         VehicleLocation         `json:"VehicleLocation"`
	Bearing                 *float64                `json:"Bearing,omitempty"`
	VehicleStatus           string                  `json:"VehicleStatus,omitempty"`
	VehicleRef              string                  `json:"VehicleRef"`
	IsCompleteStopSequence  bool                    `json:"IsCompleteStopSequence"`
}

// FramedVehicleJourneyRef identifies a vehicle's journey within a data frame.
// For replay the frame is the run: one journey per vehicle per run.
type FramedVehicleJourneyRef struct {
	DataFrameRef           string `json:"DataFrameRef"`
	DatedVehicleJourneyRef string `json:"DatedVehicleJourneyRef"`
}

// VehicleLocation represents the geographical location of a vehicle
type VehicleLocation struct {
	Latitude  *float64 `json:"Latitude"`
	Longitude *float64 `json:"Longitude"`
}

// BuildOptions parameterizes a VM build.
type BuildOptions struct {
	// ProducerRef is the SIRI codespace, also used as DataSource.
	ProducerRef string
	// RunID frames the journey references.
	RunID string
	// AnchorEpochMS maps simulation time 0 onto a wall-clock epoch so
	// RecordedAtTime is a real timestamp. Zero anchors at the Unix epoch.
	AnchorEpochMS int64
	// ValidityMS extends ResponseTimestamp into ValidUntil. Zero omits it.
	ValidityMS int64
}

// BuildVehicleMonitoring assembles a VM delivery from a replay snapshot at
// the given simulation time. Passenger entities are filtered out.
func BuildVehicleMonitoring(states []replay.EntityState, simTimeMS int64, opt BuildOptions) Response {
	recordedAt := utils.Iso8601FromUnixMillis(opt.AnchorEpochMS + simTimeMS)

	activity := make([]VehicleActivityEntry, 0, len(states))
	for _, st := range states {
		if st.Kind != timeline.KindVehicle {
			continue
		}
		lat := st.Pos.Lat
		lon := st.Pos.Lon
		activity = append(activity, VehicleActivityEntry{
			RecordedAtTime: recordedAt,
			MonitoredVehicleJourney: MonitoredVehicleJourney{
				FramedVehicleJourneyRef: FramedVehicleJourneyRef{
					DataFrameRef:           utils.Iso8601DateFromUnixSeconds((opt.AnchorEpochMS + simTimeMS) / 1000),
					DatedVehicleJourneyRef: journeyRef(opt.RunID, st.ID),
				},
				OperatorRef:     opt.ProducerRef,
				Monitored:       st.Active,
				DataSource:      opt.ProducerRef,
				VehicleLocation: VehicleLocation{Latitude: &lat, Longitude: &lon},
				Bearing:         st.Bearing,
				VehicleStatus:   st.Status,
				VehicleRef:      vehicleRef(opt.ProducerRef, st.ID),
			},
		})
	}

	validUntil := ""
	if opt.ValidityMS > 0 {
		validUntil = utils.ValidUntilFrom((opt.AnchorEpochMS+simTimeMS)/1000, int(opt.ValidityMS))
	}

	vm := VehicleMonitoring{
		ResponseTimestamp: recordedAt,
		ValidUntil:        validUntil,
		VehicleActivity:   activity,
	}
	return Response{
		Siri: ServiceDeliveryWrapper{
			ServiceDelivery: ServiceDelivery{
				ResponseTimestamp:         utils.Iso8601Now(),
				ProducerRef:               opt.ProducerRef,
				VehicleMonitoringDelivery: []VehicleMonitoring{vm},
			},
		},
	}
}

func vehicleRef(producer, id string) string {
	if producer == "" {
		return id
	}
	return producer + "_" + id
}

func journeyRef(runID, id string) string {
	if runID == "" {
		return id
	}
	return runID + "_" + id
}
