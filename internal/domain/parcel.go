package domain

// ParcelPolygon is one farm-map parcel boundary in WGS-84. A parcel may have
// more than one ring; each ring is a closed sequence of coordinates.
type ParcelPolygon struct {
	UID   string `json:"uid"`
	PNU   string `json:"pnu"`
	Rings []Ring `json:"rings"`
}

// Ring is an ordered sequence of WGS-84 coordinates forming a polygon ring.
type Ring []Geo

// ParcelLayer groups the parcels of one source file under a display color,
// e.g. the "paddy" layer in yellow and the "orchard" layer in red.
type ParcelLayer struct {
	Name     string          `json:"name"`
	Color    string          `json:"color"`
	Polygons []ParcelPolygon `json:"polygons"`
}

// PolygonCount returns the total number of parcels across all layers.
func PolygonCount(layers []ParcelLayer) int {
	n := 0
	for _, l := range layers {
		n += len(l.Polygons)
	}
	return n
}
