// Package fleetreplay is the service layer over the replay engine: an HTTP
// server republishing replayed fleet state as JSON snapshots, SIRI
// VehicleMonitoring, GTFS-Realtime VehiclePositions and a WebSocket tick
// stream, plus the runner goroutine that drives playback.
package fleetreplay
