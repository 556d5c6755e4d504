// Package dataset loads the risk-zone CSV and farm-map parcel files and
// holds the current in-memory snapshot served to clients.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hanriverlabs/riskzone-map/internal/domain"
)

// LoadZones reads the risk-zone CSV at path. Rows missing required fields
// (coordinates, area) are skipped and counted, matching the dataset's known
// quality: partial rows are normal, not an error.
func LoadZones(path string) ([]domain.RiskZone, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open zone csv: %w", err)
	}
	defer f.Close()

	return readZones(f)
}

func readZones(r io.Reader) ([]domain.RiskZone, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are skipped below, not fatal

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	// Excel exports prepend a UTF-8 BOM to the first header cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var zones []domain.RiskZone
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rec := make(domain.RawZoneRecord, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}

		zone, ok := domain.ParseZoneRecord(rec)
		if !ok {
			skipped++
			continue
		}
		zones = append(zones, zone)
	}

	return zones, skipped, nil
}
