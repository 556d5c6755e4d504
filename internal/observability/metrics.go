package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// map service.
type Metrics struct {
	// Dataset metrics.
	ZonesLoaded    prometheus.Gauge
	ParcelsLoaded  prometheus.Gauge
	RowsSkipped    prometheus.Gauge
	DatasetReloads *prometheus.CounterVec // labels: outcome={success,error}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,not_found,error}
	GeocodeCache       *prometheus.CounterVec // labels: layer={memory,sqlite}, result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge

	// HTTP metrics.
	HTTPRequestDuration *prometheus.HistogramVec // labels: route, code
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ZonesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riskzone_map",
			Name:      "zones_loaded",
			Help:      "Risk zones in the current dataset snapshot.",
		}),
		ParcelsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riskzone_map",
			Name:      "parcels_loaded",
			Help:      "Parcel polygons in the current dataset snapshot.",
		}),
		RowsSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riskzone_map",
			Name:      "rows_skipped",
			Help:      "CSV rows skipped during the last load for missing required fields.",
		}),
		DatasetReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskzone_map",
			Name:      "dataset_reloads_total",
			Help:      "Dataset reload attempts by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskzone_map",
			Name:      "geocode_requests_total",
			Help:      "Geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskzone_map",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by layer and result.",
		}, []string{"layer", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "riskzone_map",
			Name:      "geocode_api_duration_seconds",
			Help:      "Kakao API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "riskzone_map",
			Name:      "geocode_enabled",
			Help:      "1 when address geocoding is enabled, 0 otherwise.",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "riskzone_map",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and status code.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"route", "code"}),
	}

	prometheus.MustRegister(
		m.ZonesLoaded,
		m.ParcelsLoaded,
		m.RowsSkipped,
		m.DatasetReloads,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
		m.HTTPRequestDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ZonesLoaded:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "riskzone_map", Name: "zones_loaded"}),
		ParcelsLoaded:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "riskzone_map", Name: "parcels_loaded"}),
		RowsSkipped:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "riskzone_map", Name: "rows_skipped"}),
		DatasetReloads:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "riskzone_map", Name: "dataset_reloads_total"}, []string{"outcome"}),
		GeocodeRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "riskzone_map", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "riskzone_map", Name: "geocode_cache_total"}, []string{"layer", "result"}),
		GeocodeAPIDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "riskzone_map", Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "riskzone_map", Name: "geocode_enabled"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "riskzone_map", Name: "http_request_duration_seconds"}, []string{"route", "code"}),
	}
}
