package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanriverlabs/riskzone-map/internal/config"
	"github.com/hanriverlabs/riskzone-map/internal/geo"
)

// writeParcelJSON builds a farm-map fixture with one parcel whose ring is
// the given WGS-84 triangle, projected to EPSG:5179 plane coordinates.
func writeParcelJSON(t *testing.T, uid, pnu string, ring [][2]float64) string {
	t.Helper()

	coords := ""
	for i, p := range ring {
		e, n := geo.FromWGS84(p[0], p[1])
		if i > 0 {
			coords += ","
		}
		coords += fmt.Sprintf(`{"x":%.4f,"y":%.4f}`, e, n)
	}

	content := fmt.Sprintf(`{
		"output": {
			"farmmapData": {
				"data": [
					{"uid": %s, "pnu": %s, "geometry": [{"xy": [%s]}]}
				]
			}
		}
	}`, uid, pnu, coords)

	path := filepath.Join(t.TempDir(), "parcels.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParcelLayer(t *testing.T) {
	ring := [][2]float64{
		{35.0721, 126.8412},
		{35.0725, 126.8418},
		{35.0718, 126.8421},
		{35.0721, 126.8412},
	}
	path := writeParcelJSON(t, `"42"`, `"4617025021101230000"`, ring)

	layer, err := LoadParcelLayer(config.ParcelFile{Name: "paddy", Path: path, Color: "yellow"})
	require.NoError(t, err)

	assert.Equal(t, "paddy", layer.Name)
	assert.Equal(t, "yellow", layer.Color)
	require.Len(t, layer.Polygons, 1)

	p := layer.Polygons[0]
	assert.Equal(t, "42", p.UID)
	assert.Equal(t, "4617025021101230000", p.PNU)
	require.Len(t, p.Rings, 1)
	require.Len(t, p.Rings[0], 4)

	// Projection roundtrip: loaded coordinates match the source WGS-84 ring.
	for i, want := range ring {
		assert.InDelta(t, want[0], p.Rings[0][i].Lat, 1e-7, "ring point %d lat", i)
		assert.InDelta(t, want[1], p.Rings[0][i].Lon, 1e-7, "ring point %d lon", i)
	}
}

func TestLoadParcelLayer_NumericIdentifiers(t *testing.T) {
	// Some exports emit uid and pnu as bare numbers.
	path := writeParcelJSON(t, `42`, `4617025021101230000`, [][2]float64{{35.07, 126.84}})

	layer, err := LoadParcelLayer(config.ParcelFile{Name: "field", Path: path, Color: "green"})
	require.NoError(t, err)
	require.Len(t, layer.Polygons, 1)
	assert.Equal(t, "42", layer.Polygons[0].UID)
	assert.Equal(t, "4617025021101230000", layer.Polygons[0].PNU)
}

func TestLoadParcelLayer_SkipsEmptyGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parcels.json")
	content := `{
		"output": {
			"farmmapData": {
				"data": [
					{"uid": "1", "pnu": "100", "geometry": []},
					{"uid": "2", "pnu": "200", "geometry": [{"xy": []}]}
				]
			}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	layer, err := LoadParcelLayer(config.ParcelFile{Name: "empty", Path: path, Color: "gray"})
	require.NoError(t, err)
	assert.Empty(t, layer.Polygons)
}

func TestLoadParcelLayer_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parcels.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output": [`), 0o644))

	_, err := LoadParcelLayer(config.ParcelFile{Name: "x", Path: path, Color: "red"})
	require.Error(t, err)
}

func TestLoadParcelLayers_FailsWholeSet(t *testing.T) {
	good := writeParcelJSON(t, `"1"`, `"100"`, [][2]float64{{35.0, 126.8}})

	_, err := LoadParcelLayers([]config.ParcelFile{
		{Name: "good", Path: good, Color: "yellow"},
		{Name: "missing", Path: filepath.Join(t.TempDir(), "nope.json"), Color: "red"},
	})
	require.Error(t, err)
}
