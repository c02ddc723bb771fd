package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for document renditions.
type Metrics struct {
	// Rendition latency by format and outcome (ok, not_found, error)
	RenditionLatency *prometheus.HistogramVec

	// Best PDF requests served by generation, by reason (missing, invalid)
	PDFFallbacks *prometheus.CounterVec
}

// New creates a new Metrics instance with all document metrics registered.
func New() *Metrics {
	return &Metrics{
		RenditionLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "caselaw_document_rendition_duration_seconds",
			Help:    "Duration of document renditions by format and outcome",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"format", "outcome"}),

		PDFFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caselaw_document_pdf_fallbacks_total",
			Help: "Best PDF requests served by a generated PDF, by reason",
		}, []string{"reason"}),
	}
}

// ObserveRendition records one resolved request.
func (m *Metrics) ObserveRendition(format, outcome string, d time.Duration) {
	if m != nil {
		m.RenditionLatency.WithLabelValues(format, outcome).Observe(d.Seconds())
	}
}

// IncrementPDFFallback records a best PDF request served by generation.
func (m *Metrics) IncrementPDFFallback(reason string) {
	if m != nil {
		m.PDFFallbacks.WithLabelValues(reason).Inc()
	}
}
