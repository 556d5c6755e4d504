package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() RawZoneRecord {
	return RawZoneRecord{
		"x":                      "126.8412",
		"y":                      "35.0721",
		"DSGN_AREA":              "2500",
		"DST_RSK_DSTRCT_NM":      "학산지구",
		"DST_RSK_DSTRCTCD":       "D-4672-001",
		"DST_RSK_DSTRCT_TYPE_CD": "2",
		"DST_RSK_DSTRCT_GRD_CD":  "나",
		"DST_RSK_DSTRCT_RGN_CD":  "46170",
		"FCLT_NM":                "학산배수펌프장",
		"DSGN_YMD":               "20190321",
		"DSGN_RSN":               "상습침수",
		"RSK_FACTR_CN":           "하천 범람 우려",
	}
}

func TestParseZoneRecord(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		zone, ok := ParseZoneRecord(validRecord())
		require.True(t, ok)

		assert.Equal(t, "학산지구", zone.DistrictName)
		assert.Equal(t, "D-4672-001", zone.ZoneCode)
		assert.Equal(t, 2, zone.TypeCode)
		assert.Equal(t, "나", zone.GradeCode)
		assert.Equal(t, "46170", zone.RegionCode)
		assert.Equal(t, "학산배수펌프장", zone.FacilityName)
		assert.Equal(t, "20190321", zone.DesignatedOn)
		assert.Equal(t, "상습침수", zone.Reason)
		assert.Equal(t, "하천 범람 우려", zone.RiskFactors)
		assert.Equal(t, 35.0721, zone.Geo.Lat)
		assert.Equal(t, 126.8412, zone.Geo.Lon)
		assert.Equal(t, 2500.0, zone.Area)
	})

	t.Run("missing coordinate is skipped", func(t *testing.T) {
		rec := validRecord()
		rec["x"] = ""
		_, ok := ParseZoneRecord(rec)
		assert.False(t, ok)
	})

	t.Run("missing area is skipped", func(t *testing.T) {
		rec := validRecord()
		delete(rec, "DSGN_AREA")
		_, ok := ParseZoneRecord(rec)
		assert.False(t, ok)
	})

	t.Run("non-numeric latitude is skipped", func(t *testing.T) {
		rec := validRecord()
		rec["y"] = "n/a"
		_, ok := ParseZoneRecord(rec)
		assert.False(t, ok)
	})

	t.Run("float-formatted type code", func(t *testing.T) {
		rec := validRecord()
		rec["DST_RSK_DSTRCT_TYPE_CD"] = "5.0"
		zone, ok := ParseZoneRecord(rec)
		require.True(t, ok)
		assert.Equal(t, 5, zone.TypeCode)
	})

	t.Run("garbage type code becomes zero", func(t *testing.T) {
		rec := validRecord()
		rec["DST_RSK_DSTRCT_TYPE_CD"] = "abc"
		zone, ok := ParseZoneRecord(rec)
		require.True(t, ok)
		assert.Equal(t, 0, zone.TypeCode)
		assert.Equal(t, DefaultZoneColor, zone.Color())
	})
}

func TestRiskZone_Color(t *testing.T) {
	cases := []struct {
		typeCode int
		color    string
	}{
		{1, "blue"},
		{2, "purple"},
		{3, "gray"},
		{4, "orange"},
		{5, "green"},
		{6, "darkblue"},
		{7, "red"},
		{0, "red"},
		{-1, "red"},
	}
	for _, tc := range cases {
		z := RiskZone{TypeCode: tc.typeCode}
		assert.Equal(t, tc.color, z.Color(), "type code %d", tc.typeCode)
	}
}

func TestRiskZone_Radius(t *testing.T) {
	assert.Equal(t, 50.0, RiskZone{Area: 2500}.Radius())
	assert.InDelta(t, math.Sqrt(12345), RiskZone{Area: 12345}.Radius(), 1e-9)
	assert.Equal(t, 0.0, RiskZone{Area: 0}.Radius())
	assert.Equal(t, 0.0, RiskZone{Area: -10}.Radius())
}

func TestCenterOf(t *testing.T) {
	t.Run("mean of coordinates", func(t *testing.T) {
		zones := []RiskZone{
			{Geo: Geo{Lat: 35.0, Lon: 126.0}},
			{Geo: Geo{Lat: 37.0, Lon: 128.0}},
		}
		center, ok := CenterOf(zones)
		require.True(t, ok)
		assert.InDelta(t, 36.0, center.Lat, 1e-9)
		assert.InDelta(t, 127.0, center.Lon, 1e-9)
	})

	t.Run("empty slice", func(t *testing.T) {
		_, ok := CenterOf(nil)
		assert.False(t, ok)
	})
}
