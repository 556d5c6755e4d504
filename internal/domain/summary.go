package domain

import (
	"sort"
	"strconv"
	"strings"
)

// Summary is the chart payload: every aggregation the dashboard renders,
// computed server-side with deterministic ordering.
type Summary struct {
	ZoneCount   int     `json:"zone_count"`
	SkippedRows int     `json:"skipped_rows"`
	TotalArea   float64 `json:"total_area_m2"`

	// GradeByType feeds the grouped bar chart: district counts per
	// (type code, grade code) pair.
	GradeByType []TypeGradeCount `json:"grade_by_type"`

	// GradeCounts feeds the grade pie chart.
	GradeCounts []CodeCount `json:"grade_counts"`

	// TypeCounts feeds the type histogram.
	TypeCounts []CodeCount `json:"type_counts"`

	// ReasonCounts lists designation reasons by frequency.
	ReasonCounts []LabelCount `json:"reason_counts"`

	// AreaByDistrict lists total designated area per district.
	AreaByDistrict []DistrictArea `json:"area_by_district"`

	// RiskFactors lists the distinct risk-factor texts per district,
	// joined with " | " in row order.
	RiskFactors []DistrictRiskFactors `json:"risk_factors"`
}

// TypeGradeCount is one cell of the type × grade pivot.
type TypeGradeCount struct {
	TypeCode  int    `json:"type_code"`
	GradeCode string `json:"grade_code"`
	Count     int    `json:"count"`
}

// CodeCount pairs a categorical code with its frequency.
type CodeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// LabelCount pairs a free-text label with its frequency.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DistrictArea is the total designated area of one district.
type DistrictArea struct {
	DistrictName string  `json:"district_name"`
	AreaM2       float64 `json:"area_m2"`
}

// DistrictRiskFactors collects the risk-factor texts of one district.
type DistrictRiskFactors struct {
	DistrictName string `json:"district_name"`
	Factors      string `json:"factors"`
}

// Summarize computes all dashboard aggregations from the loaded zones.
// skippedRows is carried through so the page can report data quality.
func Summarize(zones []RiskZone, skippedRows int) Summary {
	s := Summary{
		ZoneCount:   len(zones),
		SkippedRows: skippedRows,
	}

	gradeByType := map[TypeGradeCount]int{}
	gradeCounts := map[string]int{}
	typeCounts := map[string]int{}
	reasonCounts := map[string]int{}
	areaByDistrict := map[string]float64{}
	factorsByDistrict := map[string][]string{}
	var districtOrder []string

	for _, z := range zones {
		s.TotalArea += z.Area

		key := TypeGradeCount{TypeCode: z.TypeCode, GradeCode: z.GradeCode}
		gradeByType[key]++
		gradeCounts[z.GradeCode]++
		typeCounts[codeString(z.TypeCode)]++
		if z.Reason != "" {
			reasonCounts[z.Reason]++
		}

		if z.DistrictName != "" {
			if _, seen := areaByDistrict[z.DistrictName]; !seen {
				districtOrder = append(districtOrder, z.DistrictName)
			}
			areaByDistrict[z.DistrictName] += z.Area
			if z.RiskFactors != "" {
				factorsByDistrict[z.DistrictName] = append(factorsByDistrict[z.DistrictName], z.RiskFactors)
			}
		}
	}

	for key, n := range gradeByType {
		key.Count = n
		s.GradeByType = append(s.GradeByType, key)
	}
	sort.Slice(s.GradeByType, func(i, j int) bool {
		a, b := s.GradeByType[i], s.GradeByType[j]
		if a.TypeCode != b.TypeCode {
			return a.TypeCode < b.TypeCode
		}
		return a.GradeCode < b.GradeCode
	})

	s.GradeCounts = sortedCodeCounts(gradeCounts)
	s.TypeCounts = sortedCodeCounts(typeCounts)

	for label, n := range reasonCounts {
		s.ReasonCounts = append(s.ReasonCounts, LabelCount{Label: label, Count: n})
	}
	// Most frequent first; ties break on label so output is stable.
	sort.Slice(s.ReasonCounts, func(i, j int) bool {
		a, b := s.ReasonCounts[i], s.ReasonCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Label < b.Label
	})

	for _, name := range districtOrder {
		s.AreaByDistrict = append(s.AreaByDistrict, DistrictArea{
			DistrictName: name,
			AreaM2:       areaByDistrict[name],
		})
		if factors := factorsByDistrict[name]; len(factors) > 0 {
			s.RiskFactors = append(s.RiskFactors, DistrictRiskFactors{
				DistrictName: name,
				Factors:      strings.Join(factors, " | "),
			})
		}
	}
	sort.Slice(s.AreaByDistrict, func(i, j int) bool {
		return s.AreaByDistrict[i].DistrictName < s.AreaByDistrict[j].DistrictName
	})
	sort.Slice(s.RiskFactors, func(i, j int) bool {
		return s.RiskFactors[i].DistrictName < s.RiskFactors[j].DistrictName
	})

	return s
}

func sortedCodeCounts(m map[string]int) []CodeCount {
	out := make([]CodeCount, 0, len(m))
	for code, n := range m {
		out = append(out, CodeCount{Code: code, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func codeString(code int) string {
	return strconv.Itoa(code)
}
