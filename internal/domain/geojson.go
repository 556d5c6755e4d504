package domain

// GeoJSON feature types served to the browser. Geometry coordinates follow
// the GeoJSON convention: [lon, lat] pairs.

// FeatureCollection is a standard GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature with geometry and display properties.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry holds a Point or Polygon geometry.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// ZoneFeatures converts risk zones to a Point FeatureCollection. Radius and
// color ride along as properties; the client draws circles from them.
func ZoneFeatures(zones []RiskZone) FeatureCollection {
	features := make([]Feature, 0, len(zones))
	for _, z := range zones {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{z.Geo.Lon, z.Geo.Lat},
			},
			Properties: map[string]any{
				"district_name": z.DistrictName,
				"zone_code":     z.ZoneCode,
				"type_code":     z.TypeCode,
				"grade_code":    z.GradeCode,
				"region_code":   z.RegionCode,
				"facility_name": z.FacilityName,
				"designated_on": z.DesignatedOn,
				"reason":        z.Reason,
				"radius_m":      z.Radius(),
				"color":         z.Color(),
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// ParcelFeatures converts parcel layers to a Polygon FeatureCollection.
// Every parcel carries its layer name and color so the client can style and
// toggle layers without a second lookup.
func ParcelFeatures(layers []ParcelLayer) FeatureCollection {
	features := make([]Feature, 0, PolygonCount(layers))
	for _, layer := range layers {
		for _, p := range layer.Polygons {
			rings := make([][][]float64, 0, len(p.Rings))
			for _, ring := range p.Rings {
				coords := make([][]float64, 0, len(ring))
				for _, g := range ring {
					coords = append(coords, []float64{g.Lon, g.Lat})
				}
				rings = append(rings, coords)
			}
			features = append(features, Feature{
				Type: "Feature",
				Geometry: Geometry{
					Type:        "Polygon",
					Coordinates: rings,
				},
				Properties: map[string]any{
					"uid":   p.UID,
					"pnu":   p.PNU,
					"layer": layer.Name,
					"color": layer.Color,
				},
			})
		}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
