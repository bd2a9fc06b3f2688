package utils

import (
	"math"
)

// EuclideanDistance returns the straight-line distance between two points in
// coordinate space. Movement math runs in coordinate units (the simulation
// generator records speed in coordinate units per millisecond), so no
// geographic projection is applied here.
func EuclideanDistance(aLon, aLat, bLon, bLat float64) float64 {
	dx := bLon - aLon
	dy := bLat - aLat
	return math.Sqrt(dx*dx + dy*dy)
}

// Interpolate returns the point at fraction t along the straight line from
// (aLon, aLat) to (bLon, bLat). t is clamped to [0, 1].
func Interpolate(aLon, aLat, bLon, bLat, t float64) (float64, float64) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return aLon + t*(bLon-aLon), aLat + t*(bLat-aLat)
}

// HaversineKM returns the great-circle distance between two lat/lon points in
// kilometers. Used for display-oriented distances only.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// BearingDegrees returns the compass bearing from the first point toward the
// second, in degrees clockwise from north.
func BearingDegrees(aLon, aLat, bLon, bLat float64) float64 {
	la1 := aLat * math.Pi / 180
	la2 := bLat * math.Pi / 180
	dLon := (bLon - aLon) * math.Pi / 180
	y := math.Sin(dLon) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
