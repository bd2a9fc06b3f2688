package replay

import (
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
	"github.com/theoremus-urban-solutions/fleet-replay/utils"
)

// Seek computes the entity's position at an arbitrary absolute simulation
// time directly from path geometry, assuming constant speed over the whole
// path. It is pure and idempotent: repeated calls with the same arguments
// return the same coordinate.
//
// Seek is event-blind: WAIT and queued-delay events in the log do not slow
// it down, so for timelines containing such events it diverges from the
// stepped Advancer position. That divergence is intentional and pinned by a
// regression test; callers needing event-aware positions must replay ticks.
func Seek(tl *timeline.EntityTimeline, absoluteTime int64) timeline.Point {
	path := tl.Path
	if len(path) == 1 {
		return path[0]
	}

	elapsed := float64(absoluteTime - tl.CreateTime)
	if elapsed < 0 {
		elapsed = 0
	}
	if tl.Speed <= 0 {
		return path[0]
	}

	for i := 0; i+1 < len(path); i++ {
		segLen := path.SegmentLength(i)
		if segLen == 0 {
			continue
		}
		segTime := segLen / tl.Speed
		if elapsed <= segTime {
			t := elapsed / segTime
			lon, lat := utils.Interpolate(path[i].Lon, path[i].Lat, path[i+1].Lon, path[i+1].Lat, t)
			return timeline.Point{Lon: lon, Lat: lat}
		}
		elapsed -= segTime
	}

	// Past the end of the path: clamp to the final waypoint.
	return path[len(path)-1]
}
