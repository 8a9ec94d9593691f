package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "epea"

// Metrics holds the Prometheus counters, histograms, and gauges for the viewer.
type Metrics struct {
	IconsRendered        *prometheus.CounterVec // labels: mode={grid,modal,standalone}
	IconCache            *prometheus.CounterVec // labels: result={hit,miss}
	HighlightTransitions *prometheus.CounterVec // labels: kind={parameter,vessel,leave,ignored}
	HTTPRequests         *prometheus.CounterVec // labels: route, code

	// Dataset load metrics.
	DatasetLoaded       prometheus.Gauge
	DatasetCampaigns    prometheus.Gauge
	DatasetLoadDuration prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		IconsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "icons_rendered_total",
			Help:      "Campaign icons rendered by display mode.",
		}, []string{"mode"}),
		IconCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "icon_cache_total",
			Help:      "Rendered grid icon cache lookups by result.",
		}, []string{"result"}),
		HighlightTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "highlight_transitions_total",
			Help:      "Highlight state machine transitions by kind.",
		}, []string{"kind"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Page requests by route and status code.",
		}, []string{"route", "code"}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_loaded",
			Help:      "1 when the dataset and icon template are loaded, 0 otherwise.",
		}),
		DatasetCampaigns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_campaigns",
			Help:      "Number of campaigns in the loaded dataset.",
		}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of the startup dataset and template load.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// NewMetrics creates and registers all viewer metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.IconsRendered,
		m.IconCache,
		m.HighlightTransitions,
		m.HTTPRequests,
		m.DatasetLoaded,
		m.DatasetCampaigns,
		m.DatasetLoadDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
