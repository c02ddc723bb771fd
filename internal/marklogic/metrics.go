package marklogic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "caselaw_marklogic_request_duration_seconds",
		Help:    "Latency of document store requests by operation and outcome",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation", "outcome"})

	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caselaw_document_cache_requests_total",
		Help: "Document cache lookups by kind and result (hit, miss, error)",
	}, []string{"kind", "result"})
)
