package siri

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/fleet-replay/replay"
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

func sampleStates() []replay.EntityState {
	bearing := 90.0
	return []replay.EntityState{
		{
			ID:      "trike_1",
			Kind:    timeline.KindVehicle,
			Pos:     timeline.Point{Lon: 10.75, Lat: 59.91},
			Status:  string(timeline.VehicleServing),
			Active:  true,
			Bearing: &bearing,
		},
		{
			ID:     "passenger_1",
			Kind:   timeline.KindPassenger,
			Pos:    timeline.Point{Lon: 10.76, Lat: 59.92},
			Status: string(timeline.PassengerOnboard),
			Active: true,
		},
	}
}

func TestBuildVehicleMonitoringFiltersPassengers(t *testing.T) {
	resp := BuildVehicleMonitoring(sampleStates(), 5000, BuildOptions{
		ProducerRef: "FLT",
		RunID:       "run-1",
	})

	deliveries := resp.Siri.ServiceDelivery.VehicleMonitoringDelivery
	if len(deliveries) != 1 {
		t.Fatalf("got %d deliveries, want 1", len(deliveries))
	}
	activity := deliveries[0].VehicleActivity
	if len(activity) != 1 {
		t.Fatalf("got %d activity entries, want 1 (passenger filtered)", len(activity))
	}

	mvj := activity[0].MonitoredVehicleJourney
	if mvj.VehicleRef != "FLT_trike_1" {
		t.Errorf("VehicleRef = %q, want FLT_trike_1", mvj.VehicleRef)
	}
	if mvj.FramedVehicleJourneyRef.DatedVehicleJourneyRef != "run-1_trike_1" {
		t.Errorf("DatedVehicleJourneyRef = %q", mvj.FramedVehicleJourneyRef.DatedVehicleJourneyRef)
	}
	if mvj.VehicleStatus != "SERVING" {
		t.Errorf("VehicleStatus = %q, want SERVING", mvj.VehicleStatus)
	}
	if mvj.DataSource != "FLT" {
		t.Errorf("DataSource = %q, want FLT", mvj.DataSource)
	}
	if mvj.VehicleLocation.Latitude == nil || *mvj.VehicleLocation.Latitude != 59.91 {
		t.Errorf("Latitude = %v, want 59.91", mvj.VehicleLocation.Latitude)
	}
	if mvj.Bearing == nil || *mvj.Bearing != 90 {
		t.Errorf("Bearing = %v, want 90", mvj.Bearing)
	}
}

func TestBuildVehicleMonitoringTimestamps(t *testing.T) {
	// Anchor 2024-01-01T00:00:00Z; sim time 5s; validity 10s.
	const anchor = int64(1704067200000)
	resp := BuildVehicleMonitoring(nil, 5000, BuildOptions{
		AnchorEpochMS: anchor,
		ValidityMS:    10000,
	})

	vm := resp.Siri.ServiceDelivery.VehicleMonitoringDelivery[0]
	if vm.ResponseTimestamp != "2024-01-01T00:00:05Z" {
		t.Errorf("ResponseTimestamp = %q", vm.ResponseTimestamp)
	}
	if vm.ValidUntil != "2024-01-01T00:00:15Z" {
		t.Errorf("ValidUntil = %q", vm.ValidUntil)
	}
	if len(vm.VehicleActivity) != 0 {
		t.Errorf("empty snapshot produced %d entries", len(vm.VehicleActivity))
	}
}

func TestResponseJSONShape(t *testing.T) {
	resp := BuildVehicleMonitoring(sampleStates(), 0, BuildOptions{ProducerRef: "FLT"})
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(raw)
	for _, want := range []string{
		`"Siri"`, `"ServiceDelivery"`, `"VehicleMonitoringDelivery"`,
		`"VehicleActivity"`, `"MonitoredVehicleJourney"`, `"VehicleRef":"FLT_trike_1"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("response JSON missing %s", want)
		}
	}
}
