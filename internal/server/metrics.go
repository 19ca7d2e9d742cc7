package server

import (
	"time"

	"github.com/mazesearch/mazesearch/pkg/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for mazesearch_searches_total
const (
	OutcomeFound       = "found"
	OutcomeUnreachable = "unreachable"
)

// Metrics records one sample per finished search
type Metrics struct {
	searches   *prometheus.CounterVec
	expansions *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the search collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mazesearch_searches_total",
			Help: "Total searches by algorithm and outcome",
		}, []string{"algorithm", "outcome"}),

		expansions: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mazesearch_search_expansions",
			Help:    "Cells expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14), // 1 to 8192 cells
		}, []string{"algorithm"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mazesearch_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"algorithm"}),
	}
}

// Observe is an engine.ResultHook
func (m *Metrics) Observe(result search.Result, elapsed time.Duration) {
	outcome := OutcomeUnreachable
	if result.Found() {
		outcome = OutcomeFound
	}
	alg := string(result.Algorithm)
	m.searches.WithLabelValues(alg, outcome).Inc()
	m.expansions.WithLabelValues(alg).Observe(float64(result.TimeUnits))
	m.duration.WithLabelValues(alg).Observe(elapsed.Seconds())
}
