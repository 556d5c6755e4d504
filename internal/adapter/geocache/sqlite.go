// Package geocache persists geocoding results in SQLite so lookups survive
// restarts. Kakao API quotas are tight for an unauthenticated demo key, and
// the address set users query is small and repetitive.
package geocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hanriverlabs/riskzone-map/internal/domain"
	"github.com/hanriverlabs/riskzone-map/internal/observability"
)

// Store wraps a Geocoder with a SQLite-backed cache. Only successful results
// are persisted; not-found and provider failures always retry the provider.
type Store struct {
	db      *sql.DB
	inner   domain.Geocoder
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New opens (or creates) the cache database at dbPath and wraps inner.
func New(dbPath string, inner domain.Geocoder, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open geocode cache db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		address_name TEXT,
		road_address TEXT,
		region_1depth TEXT,
		region_2depth TEXT,
		cached_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create geocode cache schema: %w", err)
	}

	return &Store{
		db:      db,
		inner:   inner,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Geocode checks the persistent cache before calling the wrapped geocoder.
// Cache errors degrade to a provider call rather than failing the lookup.
func (s *Store) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	if result, ok := s.lookup(ctx, address); ok {
		s.metrics.GeocodeCache.WithLabelValues("sqlite", "hit").Inc()
		return result, nil
	}
	s.metrics.GeocodeCache.WithLabelValues("sqlite", "miss").Inc()

	result, err := s.inner.Geocode(ctx, address)
	if err != nil {
		return result, err
	}
	s.save(ctx, address, result)
	return result, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) lookup(ctx context.Context, address string) (domain.GeocodeResult, bool) {
	var r domain.GeocodeResult
	var cachedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT lat, lon, address_name, road_address, region_1depth, region_2depth, cached_at
		 FROM geocode_cache WHERE address = ?`, address).
		Scan(&r.Lat, &r.Lon, &r.AddressName, &r.RoadAddress, &r.RegionDepth1, &r.RegionDepth2, &cachedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("geocode cache lookup failed", "error", err)
		}
		return domain.GeocodeResult{}, false
	}
	if domain.Now().Sub(cachedAt) > s.ttl {
		return domain.GeocodeResult{}, false
	}
	return r, true
}

func (s *Store) save(ctx context.Context, address string, r domain.GeocodeResult) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO geocode_cache
			(address, lat, lon, address_name, road_address, region_1depth, region_2depth, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(address) DO UPDATE SET
			lat = excluded.lat, lon = excluded.lon,
			address_name = excluded.address_name, road_address = excluded.road_address,
			region_1depth = excluded.region_1depth, region_2depth = excluded.region_2depth,
			cached_at = excluded.cached_at`,
		address, r.Lat, r.Lon, r.AddressName, r.RoadAddress, r.RegionDepth1, r.RegionDepth2, domain.Now())
	if err != nil {
		s.logger.Warn("geocode cache save failed", "error", err)
	}
}
