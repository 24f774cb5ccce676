package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, CalculateHaversineDistance(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestCalculateHaversineDistance_KnownDistances(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want, delta            float64
	}{
		// One degree of latitude is ~111.195 km on a 6371 km sphere.
		{"one degree latitude", 0, 0, 1, 0, 111195, 1},
		{"one degree longitude at equator", 0, 0, 0, 1, 111195, 1},
		{"new york to london", 40.7128, -74.0060, 51.5074, -0.1278, 5570000, 10000},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CalculateHaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
			assert.InDelta(t, c.want, got, c.delta)
		})
	}
}

func TestCalculateHaversineDistance_Symmetric(t *testing.T) {
	a := CalculateHaversineDistance(40.7128, -74.0060, 40.7200, -74.0000)
	b := CalculateHaversineDistance(40.7200, -74.0000, 40.7128, -74.0060)
	assert.InDelta(t, a, b, 1e-9)
}
