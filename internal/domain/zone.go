package domain

import (
	"math"
	"strconv"
	"strings"
)

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RawZoneRecord holds one CSV row keyed by header name, before validation.
type RawZoneRecord map[string]string

// RiskZone is the domain-rich representation of one designated district.
type RiskZone struct {
	DistrictName string  `json:"district_name"`
	ZoneCode     string  `json:"zone_code"`
	TypeCode     int     `json:"type_code"`
	GradeCode    string  `json:"grade_code"`
	RegionCode   string  `json:"region_code"`
	FacilityName string  `json:"facility_name,omitempty"`
	DesignatedOn string  `json:"designated_on,omitempty"` // yyyymmdd, kept verbatim
	Reason       string  `json:"reason,omitempty"`
	RiskFactors  string  `json:"risk_factors,omitempty"`
	Geo          Geo     `json:"geo"`
	Area         float64 `json:"area_m2"`
}

// typeColors maps district type codes to display colors. Codes outside the
// table render red so unexpected data stays visible on the map.
var typeColors = map[int]string{
	1: "blue",
	2: "purple",
	3: "gray",
	4: "orange",
	5: "green",
	6: "darkblue",
}

// DefaultZoneColor is used for type codes without a color assignment.
const DefaultZoneColor = "red"

// Color returns the display color for the zone's type code.
func (z RiskZone) Color() string {
	if c, ok := typeColors[z.TypeCode]; ok {
		return c
	}
	return DefaultZoneColor
}

// Radius returns the circle radius in metres: the square root of the
// designated area, so circle area on the map tracks the real area.
func (z RiskZone) Radius() float64 {
	if z.Area <= 0 {
		return 0
	}
	return math.Sqrt(z.Area)
}

// ParseZoneRecord validates and converts a raw CSV row into a RiskZone.
// Returns ok=false for rows that cannot be rendered: missing or unparseable
// x, y, or DSGN_AREA. Such rows are skipped, not treated as errors.
func ParseZoneRecord(rec RawZoneRecord) (RiskZone, bool) {
	lon, okLon := parseFloatField(rec["x"])
	lat, okLat := parseFloatField(rec["y"])
	area, okArea := parseFloatField(rec["DSGN_AREA"])
	if !okLon || !okLat || !okArea {
		return RiskZone{}, false
	}

	return RiskZone{
		DistrictName: strings.TrimSpace(rec["DST_RSK_DSTRCT_NM"]),
		ZoneCode:     strings.TrimSpace(rec["DST_RSK_DSTRCTCD"]),
		TypeCode:     parseIntOrZero(rec["DST_RSK_DSTRCT_TYPE_CD"]),
		GradeCode:    strings.TrimSpace(rec["DST_RSK_DSTRCT_GRD_CD"]),
		RegionCode:   strings.TrimSpace(rec["DST_RSK_DSTRCT_RGN_CD"]),
		FacilityName: strings.TrimSpace(rec["FCLT_NM"]),
		DesignatedOn: strings.TrimSpace(rec["DSGN_YMD"]),
		Reason:       strings.TrimSpace(rec["DSGN_RSN"]),
		RiskFactors:  strings.TrimSpace(rec["RSK_FACTR_CN"]),
		Geo:          Geo{Lat: lat, Lon: lon},
		Area:         area,
	}, true
}

// parseFloatField parses a required numeric field. Empty strings and
// non-numeric values report !ok instead of defaulting to zero, because a
// zero coordinate or area would silently render garbage.
func parseFloatField(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseIntOrZero parses an optional integer code, returning 0 on failure.
// Type code 0 is not in the color table, so bad codes render as the default.
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Some extracts format codes as "1.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return int(f)
	}
	return 0
}

// CenterOf returns the mean coordinate of the given zones, used as the map
// center when no address has been geocoded. Reports ok=false for an empty
// slice so callers can fall back to a fixed center.
func CenterOf(zones []RiskZone) (Geo, bool) {
	if len(zones) == 0 {
		return Geo{}, false
	}
	var sumLat, sumLon float64
	for _, z := range zones {
		sumLat += z.Geo.Lat
		sumLon += z.Geo.Lon
	}
	n := float64(len(zones))
	return Geo{Lat: sumLat / n, Lon: sumLon / n}, true
}
