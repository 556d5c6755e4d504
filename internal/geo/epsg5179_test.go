package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWGS84_NaturalOrigin(t *testing.T) {
	// The false origin (1,000,000, 2,000,000) is the projection's natural
	// origin at 38°N 127.5°E.
	lat, lon := ToWGS84(falseEasting, falseNorthing)
	assert.InDelta(t, 38.0, lat, 1e-9)
	assert.InDelta(t, 127.5, lon, 1e-9)
}

func TestFromWGS84_NaturalOrigin(t *testing.T) {
	e, n := FromWGS84(38.0, 127.5)
	assert.InDelta(t, falseEasting, e, 1e-4)
	assert.InDelta(t, falseNorthing, n, 1e-4)
}

func TestRoundtrip(t *testing.T) {
	// Points across the peninsula, including the Naju area the parcel
	// fixtures cover.
	points := []struct {
		name     string
		lat, lon float64
	}{
		{"naju", 35.0721, 126.8412},
		{"seoul", 37.5663, 126.9779},
		{"busan", 35.1796, 129.0756},
		{"jeju", 33.4996, 126.5312},
		{"northeast", 38.5, 128.3},
	}

	for _, p := range points {
		t.Run(p.name, func(t *testing.T) {
			e, n := FromWGS84(p.lat, p.lon)
			lat, lon := ToWGS84(e, n)
			assert.InDelta(t, p.lat, lat, 1e-9)
			assert.InDelta(t, p.lon, lon, 1e-9)
		})
	}
}

func TestProjection_Orientation(t *testing.T) {
	// North of the origin means larger northing; east means larger easting.
	_, nSouth := FromWGS84(35.0, 127.5)
	assert.Less(t, nSouth, falseNorthing)

	eWest, _ := FromWGS84(38.0, 126.0)
	assert.Less(t, eWest, falseEasting)

	eEast, _ := FromWGS84(38.0, 129.0)
	assert.Greater(t, eEast, falseEasting)
}
