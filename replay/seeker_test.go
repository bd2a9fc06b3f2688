package replay

import (
	"math"
	"testing"

	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

func seekerTimeline(t *testing.T) *timeline.EntityTimeline {
	t.Helper()
	return &timeline.EntityTimeline{
		ID:   "trike_0",
		Kind: timeline.KindVehicle,
		Path: timeline.Path{
			{Lon: 0, Lat: 0},
			{Lon: 2, Lat: 0},
			{Lon: 2, Lat: 2},
		},
		Speed:      0.001, // each 2-unit segment takes 2000ms
		CreateTime: 1000,
		DeathTime:  -1,
		Events:     []timeline.Event{timeline.Appear{At: 1000}},
	}
}

func TestSeekInterpolatesWithinSegment(t *testing.T) {
	tl := seekerTimeline(t)

	// 1500ms after creation: 1.5 units into the first segment.
	got := Seek(tl, 2500)
	if math.Abs(got.Lon-1.5) > 1e-9 || math.Abs(got.Lat) > 1e-9 {
		t.Fatalf("Seek = %+v, want (1.5, 0)", got)
	}

	// 3000ms after creation: 1 unit into the second segment.
	got = Seek(tl, 4000)
	if math.Abs(got.Lon-2) > 1e-9 || math.Abs(got.Lat-1) > 1e-9 {
		t.Fatalf("Seek = %+v, want (2, 1)", got)
	}
}

func TestSeekClampsBeforeCreationAndPastEnd(t *testing.T) {
	tl := seekerTimeline(t)

	if got := Seek(tl, 0); got != (timeline.Point{Lon: 0, Lat: 0}) {
		t.Fatalf("Seek before creation = %+v, want origin", got)
	}
	if got := Seek(tl, 1_000_000); got != (timeline.Point{Lon: 2, Lat: 2}) {
		t.Fatalf("Seek past end = %+v, want final waypoint", got)
	}
}

func TestSeekIdempotent(t *testing.T) {
	tl := seekerTimeline(t)
	for _, at := range []int64{0, 1000, 2500, 3333, 5000, 99999} {
		first := Seek(tl, at)
		second := Seek(tl, at)
		if first != second {
			t.Fatalf("Seek(%d) not idempotent: %+v vs %+v", at, first, second)
		}
	}
}

func TestSeekSinglePointPath(t *testing.T) {
	tl := &timeline.EntityTimeline{
		ID:         "passenger_0",
		Kind:       timeline.KindPassenger,
		Path:       timeline.Path{{Lon: 7, Lat: 8}},
		CreateTime: 0,
		DeathTime:  -1,
	}
	if got := Seek(tl, 5000); got != (timeline.Point{Lon: 7, Lat: 8}) {
		t.Fatalf("Seek = %+v, want the lone waypoint", got)
	}
}

func TestSeekSkipsZeroLengthSegments(t *testing.T) {
	tl := seekerTimeline(t)
	tl.Path = timeline.Path{
		{Lon: 0, Lat: 0},
		{Lon: 0, Lat: 0},
		{Lon: 2, Lat: 0},
	}
	got := Seek(tl, 2000) // 1000ms after creation: 1 unit along
	if math.Abs(got.Lon-1) > 1e-9 {
		t.Fatalf("Seek = %+v, want (1, 0)", got)
	}
}
