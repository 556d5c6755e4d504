// Command genmock generates a mock risk-zone dataset for local runs and
// demos: a zone CSV, one farm-map JSON per parcel layer, and the matching
// manifest. Output is deterministic so fixtures can be committed.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/hanriverlabs/riskzone-map/internal/config"
	"github.com/hanriverlabs/riskzone-map/internal/geo"
)

// Mock data clusters around Naju, Jeollanam-do, like the real extract.
const (
	baseLat = 35.0721
	baseLon = 126.8412
	seed    = 4672
)

var grades = []string{"가", "나", "다"}

var reasons = []string{
	"상습침수",
	"급경사지 붕괴위험",
	"노후 저수지",
	"해일 위험",
}

var layerDefs = []config.ParcelFile{
	{Name: "paddy", Path: "parcels_paddy.json", Color: "yellow"},
	{Name: "field", Path: "parcels_field.json", Color: "green"},
	{Name: "orchard", Path: "parcels_orchard.json", Color: "red"},
	{Name: "uncultivated", Path: "parcels_uncultivated.json", Color: "brown"},
	{Name: "facility", Path: "parcels_facility.json", Color: "gray"},
}

func main() {
	out := flag.String("out", "", "output directory for the mock dataset")
	zoneCount := flag.Int("zones", 60, "number of mock risk zones")
	parcelCount := flag.Int("parcels", 20, "number of parcels per layer")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*out, *zoneCount, *parcelCount); err != nil {
		log.Fatal(err)
	}
}

func run(outDir string, zoneCount, parcelCount int) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))

	if err := writeZoneCSV(filepath.Join(outDir, "crisis_address.csv"), rng, zoneCount); err != nil {
		return err
	}

	manifest := make([]config.ParcelFile, 0, len(layerDefs))
	for _, def := range layerDefs {
		path := filepath.Join(outDir, def.Path)
		if err := writeParcelJSON(path, rng, def.Name, parcelCount); err != nil {
			return err
		}
		manifest = append(manifest, config.ParcelFile{Name: def.Name, Path: path, Color: def.Color})
	}

	manifestPath := filepath.Join(outDir, "parcels.json")
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %d zones and %d parcel layers to %s\n", zoneCount, len(manifest), outDir)
	fmt.Printf("run with:\n  ZONE_CSV_PATH=%s PARCEL_MANIFEST=%s go run ./cmd/viewer\n",
		filepath.Join(outDir, "crisis_address.csv"), manifestPath)
	return nil
}

func writeZoneCSV(path string, rng *rand.Rand, count int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"DST_RSK_DSTRCT_NM", "DST_RSK_DSTRCTCD", "DST_RSK_DSTRCT_TYPE_CD",
		"DST_RSK_DSTRCT_GRD_CD", "DST_RSK_DSTRCT_RGN_CD", "FCLT_NM",
		"DSGN_YMD", "DSGN_RSN", "RSK_FACTR_CN", "DSGN_AREA", "x", "y",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		lat := baseLat + (rng.Float64()-0.5)*0.4
		lon := baseLon + (rng.Float64()-0.5)*0.4
		row := []string{
			fmt.Sprintf("모의%02d지구", i+1),
			fmt.Sprintf("D-4672-%03d", i+1),
			fmt.Sprintf("%d", 1+rng.Intn(6)),
			grades[rng.Intn(len(grades))],
			"46170",
			"",
			fmt.Sprintf("20%02d%02d%02d", 10+rng.Intn(16), 1+rng.Intn(12), 1+rng.Intn(28)),
			reasons[rng.Intn(len(reasons))],
			"모의 생성 데이터",
			fmt.Sprintf("%d", 500+rng.Intn(20000)),
			fmt.Sprintf("%.6f", lon),
			fmt.Sprintf("%.6f", lat),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	// A few unrenderable rows so skip counting stays exercised.
	for i := 0; i < 3; i++ {
		if err := w.Write([]string{fmt.Sprintf("결측%d지구", i+1), "", "1", "가", "46170", "", "", "", "", "", "", ""}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type mockCoord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type mockGeometry struct {
	XY []mockCoord `json:"xy"`
}

type mockParcel struct {
	UID      string         `json:"uid"`
	PNU      string         `json:"pnu"`
	Geometry []mockGeometry `json:"geometry"`
}

func writeParcelJSON(path string, rng *rand.Rand, layer string, count int) error {
	parcels := make([]mockParcel, 0, count)
	for i := 0; i < count; i++ {
		centerLat := baseLat + (rng.Float64()-0.5)*0.05
		centerLon := baseLon + (rng.Float64()-0.5)*0.05

		// Small quadrilateral around the center, ~50-150 m across.
		side := 0.0005 + rng.Float64()*0.001
		ring := []mockCoord{
			planeCoord(centerLat-side, centerLon-side),
			planeCoord(centerLat-side, centerLon+side),
			planeCoord(centerLat+side, centerLon+side),
			planeCoord(centerLat+side, centerLon-side),
			planeCoord(centerLat-side, centerLon-side),
		}

		parcels = append(parcels, mockParcel{
			UID:      fmt.Sprintf("%s-%d", layer, i+1),
			PNU:      fmt.Sprintf("46170250211%08d", rng.Intn(100000000)),
			Geometry: []mockGeometry{{XY: ring}},
		})
	}

	doc := map[string]any{
		"output": map[string]any{
			"farmmapData": map[string]any{
				"data": parcels,
			},
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func planeCoord(lat, lon float64) mockCoord {
	e, n := geo.FromWGS84(lat, lon)
	return mockCoord{X: e, Y: n}
}
