package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for search.
type Metrics struct {
	// Search latency by outcome (ok, error)
	SearchLatency *prometheus.HistogramVec

	// Hits returned per page
	ResultsReturned prometheus.Histogram

	// Non-empty decision dates that could not be parsed
	DateParseFailures prometheus.Counter
}

// New creates a new Metrics instance with all search metrics registered.
func New() *Metrics {
	return &Metrics{
		SearchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "caselaw_search_duration_seconds",
			Help:    "Duration of searches including result building",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),

		ResultsReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caselaw_search_results_returned",
			Help:    "Number of results built per search page",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),

		DateParseFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caselaw_search_date_parse_failures_total",
			Help: "Search results whose decision date was present but unparseable",
		}),
	}
}

// ObserveSearch records one search.
func (m *Metrics) ObserveSearch(outcome string, results int, d time.Duration) {
	if m != nil {
		m.SearchLatency.WithLabelValues(outcome).Observe(d.Seconds())
		if outcome == "ok" {
			m.ResultsReturned.Observe(float64(results))
		}
	}
}

// IncrementDateParseFailure records an unparseable decision date.
func (m *Metrics) IncrementDateParseFailure() {
	if m != nil {
		m.DateParseFailures.Inc()
	}
}
