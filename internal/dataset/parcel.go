package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hanriverlabs/riskzone-map/internal/config"
	"github.com/hanriverlabs/riskzone-map/internal/domain"
	"github.com/hanriverlabs/riskzone-map/internal/geo"
)

// Farm-map export structure. Coordinates are EPSG:5179 plane coordinates.
type farmMapFile struct {
	Output struct {
		FarmMapData struct {
			Data []farmMapItem `json:"data"`
		} `json:"farmmapData"`
	} `json:"output"`
}

type farmMapItem struct {
	UID      flexString        `json:"uid"`
	PNU      flexString        `json:"pnu"`
	Geometry []farmMapGeometry `json:"geometry"`
}

type farmMapGeometry struct {
	XY []farmMapCoord `json:"xy"`
}

type farmMapCoord struct {
	X float64 `json:"x"` // easting
	Y float64 `json:"y"` // northing
}

// flexString accepts both JSON strings and numbers. Farm-map exports are not
// consistent about quoting uid and pnu.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// LoadParcelLayer reads one farm-map JSON file and projects its parcel rings
// to WGS-84. The layer keeps the manifest's display color.
func LoadParcelLayer(file config.ParcelFile) (domain.ParcelLayer, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return domain.ParcelLayer{}, fmt.Errorf("read parcel file: %w", err)
	}

	var parsed farmMapFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return domain.ParcelLayer{}, fmt.Errorf("parse parcel file %s: %w", file.Path, err)
	}

	layer := domain.ParcelLayer{
		Name:  file.Name,
		Color: file.Color,
	}

	for i, item := range parsed.Output.FarmMapData.Data {
		polygon := domain.ParcelPolygon{
			UID: string(item.UID),
			PNU: string(item.PNU),
		}
		if polygon.UID == "" {
			polygon.UID = strconv.Itoa(i)
		}
		for _, g := range item.Geometry {
			ring := make(domain.Ring, 0, len(g.XY))
			for _, c := range g.XY {
				lat, lon := geo.ToWGS84(c.X, c.Y)
				ring = append(ring, domain.Geo{Lat: lat, Lon: lon})
			}
			if len(ring) > 0 {
				polygon.Rings = append(polygon.Rings, ring)
			}
		}
		if len(polygon.Rings) > 0 {
			layer.Polygons = append(layer.Polygons, polygon)
		}
	}

	return layer, nil
}

// LoadParcelLayers loads every manifest entry. A single unreadable file fails
// the whole load so a reload never serves a half-updated overlay set.
func LoadParcelLayers(files []config.ParcelFile) ([]domain.ParcelLayer, error) {
	layers := make([]domain.ParcelLayer, 0, len(files))
	for _, f := range files {
		layer, err := LoadParcelLayer(f)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}
