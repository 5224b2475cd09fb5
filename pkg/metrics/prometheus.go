package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"MarketPulse/internal/domain/models"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	cacheOps         *prometheus.CounterVec
	syntheticChains  *prometheus.CounterVec
	predictions      *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_upstream_requests_total",
				Help: "Upstream provider calls by endpoint and classified outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		cacheOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_cache_operations_total",
				Help: "Cache operations by kind and result",
			},
			[]string{"op", "result"},
		),
		syntheticChains: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_synthetic_chains_total",
				Help: "Option chains served from the synthesizer fallback",
			},
			[]string{"symbol"},
		),
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_predictions_total",
				Help: "Prediction requests by result",
			},
			[]string{"result"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordUpstream records an upstream call outcome.
func (r *Recorder) RecordUpstream(endpoint string, status models.FetchStatus) {
	r.upstreamRequests.WithLabelValues(endpoint, status.String()).Inc()
}

// RecordCache records a cache operation result (hit, miss, error).
func (r *Recorder) RecordCache(op, result string) {
	r.cacheOps.WithLabelValues(op, result).Inc()
}

// RecordSynthetic records a synthesized chain being served.
func (r *Recorder) RecordSynthetic(symbol string) {
	r.syntheticChains.WithLabelValues(symbol).Inc()
}

// RecordPrediction records a prediction request result.
func (r *Recorder) RecordPrediction(result string) {
	r.predictions.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
