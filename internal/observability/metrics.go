package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "disaster_helper"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Snapshot store.
	StoreOperations *prometheus.CounterVec // labels: collection, op={load,save}, outcome={success,absent,error}

	// Assistant replies.
	ChatReplies *prometheus.CounterVec // labels: source={remote,keyword}

	// Weather provider metrics.
	WeatherRequests    *prometheus.CounterVec // labels: outcome={success,fallback}
	WeatherCache       *prometheus.CounterVec // labels: result={hit,miss}
	WeatherAPIDuration prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge

	// Alert events.
	AlertEvents *prometheus.CounterVec // labels: action, outcome={success,error}

	// Advisory sync pipeline.
	AdvisorySyncRuns     *prometheus.CounterVec // labels: outcome={success,error}
	AdvisoryAlertsAdded  prometheus.Counter
	AdvisorySyncRunning  prometheus.Gauge
	AdvisorySyncDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Snapshot store operations by collection, operation and outcome.",
		}, []string{"collection", "op", "outcome"}),
		ChatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_replies_total",
			Help:      "Assistant replies by source.",
		}, []string{"source"}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_requests_total",
			Help:      "Weather reports served by outcome.",
		}, []string{"outcome"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "weather_api_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when SOS reverse geocoding is enabled, 0 otherwise.",
		}),
		AlertEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_events_total",
			Help:      "Alert change events published by action and outcome.",
		}, []string{"action", "outcome"}),
		AdvisorySyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_sync_runs_total",
			Help:      "Advisory sync runs by outcome.",
		}, []string{"outcome"}),
		AdvisoryAlertsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisory_alerts_added_total",
			Help:      "Alerts created from weather advisories.",
		}),
		AdvisorySyncRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "advisory_sync_running",
			Help:      "1 when the advisory sync loop is active, 0 when shut down.",
		}),
		AdvisorySyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "advisory_sync_duration_seconds",
			Help:      "Duration of a complete advisory sync run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	prometheus.MustRegister(
		m.StoreOperations,
		m.ChatReplies,
		m.WeatherRequests,
		m.WeatherCache,
		m.WeatherAPIDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
		m.AlertEvents,
		m.AdvisorySyncRuns,
		m.AdvisoryAlertsAdded,
		m.AdvisorySyncRunning,
		m.AdvisorySyncDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		StoreOperations:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "store_operations_total"}, []string{"collection", "op", "outcome"}),
		ChatReplies:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "chat_replies_total"}, []string{"source"}),
		WeatherRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "weather_requests_total"}, []string{"outcome"}),
		WeatherCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "weather_cache_total"}, []string{"result"}),
		WeatherAPIDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "weather_api_duration_seconds"}),
		GeocodeRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "geocode_enabled"}),
		AlertEvents:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "alert_events_total"}, []string{"action", "outcome"}),
		AdvisorySyncRuns:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "advisory_sync_runs_total"}, []string{"outcome"}),
		AdvisoryAlertsAdded:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "advisory_alerts_added_total"}),
		AdvisorySyncRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "advisory_sync_running"}),
		AdvisorySyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "advisory_sync_duration_seconds"}),
	}
}
