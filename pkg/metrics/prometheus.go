package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	evaluations *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	pulseScore  *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

var (
	once     sync.Once
	recorder *Recorder
)

// New returns the process-wide Prometheus metrics recorder. The collectors
// register on the default registry, which allows only one registration, so
// every caller shares the same instance.
func New() *Recorder {
	once.Do(func() {
		recorder = newRecorder()
	})
	return recorder
}

func newRecorder() *Recorder {
	return &Recorder{
		evaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_evaluations_total",
				Help: "Total number of pulse evaluations by status",
			},
			[]string{"keyword", "status"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		pulseScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketpulse_last_pulse_score",
				Help: "Last evaluated pulse score for a keyword",
			},
			[]string{"keyword"},
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

// RecordEvaluation records a completed pulse evaluation.
func (r *Recorder) RecordEvaluation(keyword, status string) {
	r.evaluations.WithLabelValues(keyword, status).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordPulseScore records the last pulse score for a keyword.
func (r *Recorder) RecordPulseScore(keyword string, score float64) {
	r.pulseScore.WithLabelValues(keyword).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
