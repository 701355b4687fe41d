package spatial

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is Earth's mean radius in meters.
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// SpeedKmh converts a distance covered in a number of seconds to km/h.
// Returns 0 when seconds is not positive.
func SpeedKmh(distanceMeters, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return (distanceMeters / seconds) * 3.6
}
