package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Identical points
	assert.Zero(t, HaversineDistance(55.7558, 37.6173, 55.7558, 37.6173))

	// One degree of latitude is roughly 111.2 km
	d := HaversineDistance(55.0, 37.0, 56.0, 37.0)
	assert.InDelta(t, 111195, d, 200)

	// Symmetry
	d1 := HaversineDistance(55.7558, 37.6173, 59.9343, 30.3351)
	d2 := HaversineDistance(59.9343, 30.3351, 55.7558, 37.6173)
	assert.InDelta(t, d1, d2, 0.001)

	// Moscow to Saint Petersburg is about 634 km
	assert.InDelta(t, 634000, d1, 5000)
}

func TestSpeedKmh(t *testing.T) {
	assert.Zero(t, SpeedKmh(100, 0), "zero elapsed time must not divide")
	assert.Zero(t, SpeedKmh(100, -5))

	// 10 m/s is 36 km/h
	assert.InDelta(t, 36.0, SpeedKmh(100, 10), 0.001)
}
