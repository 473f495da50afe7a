package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	recordsSaved *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	lastPrice    *prometheus.GaugeVec
	duration     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		recordsSaved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmpulse_records_saved_total",
				Help: "Total number of price records saved, by source",
			},
			[]string{"source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "farmpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "farmpulse_last_price_zmw",
				Help: "Last collected price for a commodity at a market",
			},
			[]string{"commodity", "market"},
		),
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "farmpulse_operation_duration_seconds",
				Help:    "Duration of collection and forecast operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSaved records price rows saved from a source.
func (r *Recorder) RecordSaved(source string, count int) {
	r.recordsSaved.WithLabelValues(source).Add(float64(count))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the latest price seen for a commodity at a market.
func (r *Recorder) RecordLastPrice(commodity, market string, price float64) {
	r.lastPrice.WithLabelValues(commodity, market).Set(price)
}

// RecordDuration records operation duration in seconds.
func (r *Recorder) RecordDuration(op string, seconds float64) {
	r.duration.WithLabelValues(op).Observe(seconds)
}
