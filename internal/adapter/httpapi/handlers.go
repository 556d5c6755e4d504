package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hanriverlabs/riskzone-map/internal/dataset"
	"github.com/hanriverlabs/riskzone-map/internal/domain"
	"github.com/hanriverlabs/riskzone-map/internal/observability"
)

type handlers struct {
	store          *dataset.Store
	geocoder       domain.Geocoder
	metrics        *observability.Metrics
	logger         *slog.Logger
	defaultAddress string
}

// summaryResponse adds snapshot bookkeeping to the chart payload.
type summaryResponse struct {
	domain.Summary
	LoadedAt time.Time `json:"loaded_at"`
}

// geocodeError is the JSON error body for the geocode endpoint. The page
// shows the message and leaves the map unmarked.
type geocodeError struct {
	Error string `json:"error"`
}

func (h *handlers) handleZones(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, domain.ZoneFeatures(snap.Zones))
}

func (h *handlers) handleParcels(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, domain.ParcelFeatures(snap.Layers))
}

func (h *handlers) handleSummary(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:  domain.Summarize(snap.Zones, snap.SkippedRows),
		LoadedAt: snap.LoadedAt,
	})
}

func (h *handlers) handleGeocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeJSON(w, http.StatusBadRequest, geocodeError{Error: "address query parameter is required"})
		return
	}
	if h.geocoder == nil {
		writeJSON(w, http.StatusServiceUnavailable, geocodeError{Error: "geocoding is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.geocoder.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			writeJSON(w, http.StatusNotFound, geocodeError{Error: "no coordinates found for the address"})
			return
		}
		h.logger.Warn("geocoding failed", "address", address, "error", err)
		writeJSON(w, http.StatusBadGateway, geocodeError{Error: "geocoding provider request failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// snapshot fetches the current dataset snapshot, answering 503 when no load
// has succeeded yet.
func (h *handlers) snapshot(w http.ResponseWriter) (*dataset.Snapshot, bool) {
	snap := h.store.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "dataset not loaded"})
		return nil, false
	}
	return snap, true
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
