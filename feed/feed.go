// Package feed encodes replay snapshots as GTFS-Realtime VehiclePositions.
package feed

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/fleet-replay/replay"
	"github.com/theoremus-urban-solutions/fleet-replay/timeline"
)

const gtfsRealtimeVersion = "2.0"

// BuildOptions parameterizes a feed build.
type BuildOptions struct {
	// AnchorEpochMS maps simulation time 0 onto a wall-clock epoch, so feed
	// timestamps are real Unix seconds. Zero anchors at the Unix epoch.
	AnchorEpochMS int64
}

// BuildVehiclePositions assembles a FULL_DATASET VehiclePositions feed from a
// replay snapshot at the given simulation time. Passenger entities are
// filtered out; failed vehicles keep their last known position.
func BuildVehiclePositions(states []replay.EntityState, simTimeMS int64, opt BuildOptions) *gtfsrtpb.FeedMessage {
	ts := uint64((opt.AnchorEpochMS + simTimeMS) / 1000)

	entities := make([]*gtfsrtpb.FeedEntity, 0, len(states))
	for _, st := range states {
		if st.Kind != timeline.KindVehicle {
			continue
		}
		pos := &gtfsrtpb.Position{
			Latitude:  proto.Float32(float32(st.Pos.Lat)),
			Longitude: proto.Float32(float32(st.Pos.Lon)),
		}
		if st.Bearing != nil {
			pos.Bearing = proto.Float32(float32(*st.Bearing))
		}
		entities = append(entities, &gtfsrtpb.FeedEntity{
			Id: proto.String(st.ID),
			Vehicle: &gtfsrtpb.VehiclePosition{
				Vehicle: &gtfsrtpb.VehicleDescriptor{
					Id:    proto.String(st.ID),
					Label: proto.String(st.Status),
				},
				Position:  pos,
				Timestamp: proto.Uint64(ts),
			},
		})
	}

	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(ts),
		},
		Entity: entities,
	}
}

// MarshalVehiclePositions builds and protobuf-encodes the feed.
func MarshalVehiclePositions(states []replay.EntityState, simTimeMS int64, opt BuildOptions) ([]byte, error) {
	return proto.Marshal(BuildVehiclePositions(states, simTimeMS, opt))
}
