package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneFeatures(t *testing.T) {
	zones := []RiskZone{
		{
			DistrictName: "학산지구",
			ZoneCode:     "D-4672-001",
			TypeCode:     4,
			GradeCode:    "나",
			Geo:          Geo{Lat: 35.07, Lon: 126.84},
			Area:         400,
		},
	}

	fc := ZoneFeatures(zones)
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{126.84, 35.07}, f.Geometry.Coordinates)
	assert.Equal(t, "학산지구", f.Properties["district_name"])
	assert.Equal(t, 20.0, f.Properties["radius_m"])
	assert.Equal(t, "orange", f.Properties["color"])
}

func TestZoneFeatures_EmptyEncodesAsArray(t *testing.T) {
	data, err := json.Marshal(ZoneFeatures(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestParcelFeatures(t *testing.T) {
	layers := []ParcelLayer{
		{
			Name:  "paddy",
			Color: "yellow",
			Polygons: []ParcelPolygon{
				{
					UID: "42",
					PNU: "4617025021101230000",
					Rings: []Ring{
						{
							{Lat: 35.01, Lon: 126.80},
							{Lat: 35.02, Lon: 126.81},
							{Lat: 35.01, Lon: 126.82},
							{Lat: 35.01, Lon: 126.80},
						},
					},
				},
			},
		},
		{Name: "orchard", Color: "red", Polygons: []ParcelPolygon{{UID: "7", PNU: "46170", Rings: []Ring{{}}}}},
	}

	fc := ParcelFeatures(layers)
	require.Len(t, fc.Features, 2)

	f := fc.Features[0]
	assert.Equal(t, "Polygon", f.Geometry.Type)
	assert.Equal(t, "paddy", f.Properties["layer"])
	assert.Equal(t, "yellow", f.Properties["color"])
	assert.Equal(t, "42", f.Properties["uid"])

	rings, ok := f.Geometry.Coordinates.([][][]float64)
	require.True(t, ok)
	require.Len(t, rings, 1)
	require.Len(t, rings[0], 4)
	assert.Equal(t, []float64{126.80, 35.01}, rings[0][0])

	assert.Equal(t, "orchard", fc.Features[1].Properties["layer"])
}
