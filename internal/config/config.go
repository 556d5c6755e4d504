// Package config loads service settings from environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset inputs.
	ZoneCSVPath    string
	ParcelManifest string // optional; no parcel overlays when empty
	ReloadSchedule string // optional cron expression; no reload when empty

	// Kakao geocoding configuration.
	KakaoRESTAPIKey  string
	KakaoEnabled     bool
	KakaoTimeout     time.Duration
	GeocodeCacheSize int
	GeocodeCacheTTL  time.Duration
	GeocodeDBPath    string // optional sqlite persistent cache

	// Page defaults.
	DefaultAddress string
}

// ParcelFile describes one parcel layer entry in the manifest.
type ParcelFile struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Color string `json:"color"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	kakaoTimeout, err := parseDuration("KAKAO_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("GEOCODE_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("KAKAO_REST_API_KEY")
	kakaoEnabled := apiKey != ""
	if v := os.Getenv("KAKAO_ENABLED"); v != "" {
		kakaoEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ZoneCSVPath:    os.Getenv("ZONE_CSV_PATH"),
		ParcelManifest: os.Getenv("PARCEL_MANIFEST"),
		ReloadSchedule: os.Getenv("RELOAD_SCHEDULE"),

		KakaoRESTAPIKey:  apiKey,
		KakaoEnabled:     kakaoEnabled,
		KakaoTimeout:     kakaoTimeout,
		GeocodeCacheSize: parseGeocodeCacheSize(),
		GeocodeCacheTTL:  cacheTTL,
		GeocodeDBPath:    os.Getenv("GEOCODE_DB_PATH"),

		DefaultAddress: os.Getenv("DEFAULT_ADDRESS"),
	}

	if cfg.ZoneCSVPath == "" {
		return nil, errors.New("ZONE_CSV_PATH is required")
	}
	if cfg.KakaoEnabled && cfg.KakaoRESTAPIKey == "" {
		return nil, errors.New("KAKAO_ENABLED is true but KAKAO_REST_API_KEY is not set")
	}
	if cfg.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(cfg.ReloadSchedule); err != nil {
			return nil, fmt.Errorf("invalid RELOAD_SCHEDULE: %w", err)
		}
	}

	return cfg, nil
}

// LoadParcelManifest reads and validates the parcel layer manifest file.
func LoadParcelManifest(path string) ([]ParcelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parcel manifest: %w", err)
	}
	var files []ParcelFile
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("parse parcel manifest: %w", err)
	}
	for i, f := range files {
		if f.Path == "" {
			return nil, fmt.Errorf("parcel manifest entry %d: path is required", i)
		}
		if f.Color == "" {
			return nil, fmt.Errorf("parcel manifest entry %d (%s): color is required", i, f.Path)
		}
	}
	return files, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseGeocodeCacheSize() int {
	if s := os.Getenv("GEOCODE_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
