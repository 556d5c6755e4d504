// Command viewer serves the disaster-risk-zone map: the Leaflet page, the
// GeoJSON and summary endpoints, and the geocoding proxy.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/hanriverlabs/riskzone-map/internal/adapter/geocache"
	"github.com/hanriverlabs/riskzone-map/internal/adapter/httpapi"
	"github.com/hanriverlabs/riskzone-map/internal/adapter/kakao"
	"github.com/hanriverlabs/riskzone-map/internal/config"
	"github.com/hanriverlabs/riskzone-map/internal/dataset"
	"github.com/hanriverlabs/riskzone-map/internal/domain"
	"github.com/hanriverlabs/riskzone-map/internal/observability"
)

func main() {
	// Local development convenience; absent .env files are fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	var parcelFiles []config.ParcelFile
	if cfg.ParcelManifest != "" {
		parcelFiles, err = config.LoadParcelManifest(cfg.ParcelManifest)
		if err != nil {
			logger.Error("failed to load parcel manifest", "error", err)
			os.Exit(1)
		}
	}

	store := dataset.NewStore(cfg.ZoneCSVPath, parcelFiles, logger, metrics)
	if err := store.Load(); err != nil {
		logger.Error("initial dataset load failed", "error", err)
		os.Exit(1)
	}

	// Geocoder stack: Kakao client behind an in-memory LRU and, when
	// configured, a persistent sqlite cache.
	var geocoder domain.Geocoder
	var geocodeDB *geocache.Store
	if cfg.KakaoEnabled {
		client := kakao.NewClient(cfg.KakaoRESTAPIKey, cfg.KakaoTimeout, metrics, logger)
		geocoder = kakao.NewCachedGeocoder(client, cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL, metrics)
		if cfg.GeocodeDBPath != "" {
			geocodeDB, err = geocache.New(cfg.GeocodeDBPath, geocoder, cfg.GeocodeCacheTTL, metrics, logger)
			if err != nil {
				logger.Error("failed to open geocode cache db", "error", err)
				os.Exit(1)
			}
			geocoder = geocodeDB
		}
		metrics.GeocodeEnabled.Set(1)
		logger.Info("kakao geocoding enabled",
			"cache_size", cfg.GeocodeCacheSize,
			"cache_ttl", cfg.GeocodeCacheTTL,
			"persistent_cache", cfg.GeocodeDBPath != "",
		)
	} else {
		logger.Info("kakao geocoding disabled")
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.Deps{
		Store:          store,
		Geocoder:       geocoder,
		Metrics:        metrics,
		Logger:         logger,
		DefaultAddress: cfg.DefaultAddress,
	})

	// Scheduled dataset reload; a failed reload keeps the current snapshot.
	var scheduler *cron.Cron
	if cfg.ReloadSchedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.ReloadSchedule, func() {
			if err := store.Load(); err != nil {
				logger.Error("scheduled dataset reload failed", "error", err)
			}
		})
		if err != nil {
			logger.Error("failed to schedule dataset reload", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("dataset reload scheduled", "schedule", cfg.ReloadSchedule)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if geocodeDB != nil {
		if err := geocodeDB.Close(); err != nil {
			logger.Error("geocode cache db close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
