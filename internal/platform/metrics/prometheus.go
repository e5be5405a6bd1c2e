// Package metrics records classification metrics with Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swing_backend/internal/feature/swing/domain/entity"
)

// Recorder implements usecase.Metrics using Prometheus.
type Recorder struct {
	classifications prometheus.Counter
	records         *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	duration        prometheus.Histogram
}

// New registers the swing metrics on reg and returns a recorder for them.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		classifications: f.NewCounter(prometheus.CounterOpts{
			Name: "swing_classifications_total",
			Help: "Total number of completed classifications",
		}),
		records: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swing_records_total",
			Help: "Total number of classified records by category",
		}, []string{"category"}),
		errorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swing_errors_total",
			Help: "Total number of failed classifications by kind",
		}, []string{"kind"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "swing_classification_duration_seconds",
			Help:    "Duration of classifications in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
	}
}

// ObserveClassification records one completed classification.
func (r *Recorder) ObserveClassification(records []entity.ClassifiedRecord, elapsed time.Duration) {
	r.classifications.Inc()
	for _, rec := range records {
		r.records.WithLabelValues(rec.Category.String()).Inc()
	}
	r.duration.Observe(elapsed.Seconds())
}

// RecordError records a failed classification.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
