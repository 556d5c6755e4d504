// Command validate performs integrity checks on a risk-zone dataset before it
// is deployed: the zone CSV parses, coordinates and areas are plausible, and
// every parcel file in the manifest projects into the Korean peninsula.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -zone-csv data/crisis_address.csv \
//	  -parcel-manifest data/parcels.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hanriverlabs/riskzone-map/internal/config"
	"github.com/hanriverlabs/riskzone-map/internal/dataset"
	"github.com/hanriverlabs/riskzone-map/internal/domain"
)

// Rough bounding box around South Korea; anything outside is a projection or
// data-entry error.
const (
	minLat = 33.0
	maxLat = 39.5
	minLon = 124.0
	maxLon = 132.0
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func (p *phase) report() {
	if p.passed() {
		fmt.Printf("PASS  %s\n", p.name)
		return
	}
	fmt.Printf("FAIL  %s\n", p.name)
	for _, e := range p.errors {
		fmt.Printf("      - %s\n", e)
	}
}

func main() {
	zoneCSV := flag.String("zone-csv", "", "path to the risk-zone CSV")
	parcelManifest := flag.String("parcel-manifest", "", "path to the parcel layer manifest (optional)")
	flag.Parse()

	if *zoneCSV == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*zoneCSV, *parcelManifest); code != 0 {
		os.Exit(code)
	}
}

func run(zoneCSV, parcelManifest string) int {
	fmt.Println("=== Risk-Zone Dataset Validation ===")
	fmt.Println()

	phases := []*phase{validateZones(zoneCSV)}
	if parcelManifest != "" {
		phases = append(phases, validateParcels(parcelManifest))
	}

	failed := 0
	for _, p := range phases {
		p.report()
		if !p.passed() {
			failed++
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("all %d phases passed\n", len(phases))
	return 0
}

func validateZones(path string) *phase {
	p := &phase{name: "zone CSV"}

	zones, skipped, err := dataset.LoadZones(path)
	if err != nil {
		p.errorf("load failed: %v", err)
		return p
	}
	if len(zones) == 0 {
		p.errorf("no renderable rows in %s", path)
		return p
	}

	fmt.Printf("zone CSV: %d rows loaded, %d skipped\n", len(zones), skipped)
	if skipped > len(zones) {
		p.errorf("more rows skipped (%d) than loaded (%d); header mismatch?", skipped, len(zones))
	}

	seen := map[string]int{}
	for i, z := range zones {
		if !inKorea(z.Geo) {
			p.errorf("row %d (%s): coordinates (%.4f, %.4f) outside Korea", i, z.DistrictName, z.Geo.Lat, z.Geo.Lon)
		}
		if z.Area <= 0 {
			p.errorf("row %d (%s): non-positive area %.1f", i, z.DistrictName, z.Area)
		}
		if z.ZoneCode != "" {
			seen[z.ZoneCode]++
		}
	}
	for code, n := range seen {
		if n > 1 {
			p.errorf("zone code %s appears %d times", code, n)
		}
	}
	return p
}

func validateParcels(manifestPath string) *phase {
	p := &phase{name: "parcel layers"}

	files, err := config.LoadParcelManifest(manifestPath)
	if err != nil {
		p.errorf("manifest: %v", err)
		return p
	}

	for _, f := range files {
		layer, err := dataset.LoadParcelLayer(f)
		if err != nil {
			p.errorf("%s: %v", f.Path, err)
			continue
		}
		fmt.Printf("parcel layer %q: %d polygons\n", layer.Name, len(layer.Polygons))

		for _, poly := range layer.Polygons {
			if poly.PNU == "" {
				p.errorf("%s: parcel uid=%s has no pnu", f.Path, poly.UID)
			}
			for _, ring := range poly.Rings {
				if len(ring) < 3 {
					p.errorf("%s: parcel uid=%s has a degenerate ring (%d points)", f.Path, poly.UID, len(ring))
				}
				for _, g := range ring {
					if !inKorea(g) {
						p.errorf("%s: parcel uid=%s projects outside Korea (%.4f, %.4f)", f.Path, poly.UID, g.Lat, g.Lon)
						break
					}
				}
			}
		}
	}
	return p
}

func inKorea(g domain.Geo) bool {
	return g.Lat >= minLat && g.Lat <= maxLat && g.Lon >= minLon && g.Lon <= maxLon
}
