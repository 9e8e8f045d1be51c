// Package metrics provides observability for the payment screening pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the payment pipeline.
type Metrics struct {
	// Payments counts processed payments by final status.
	Payments *prometheus.CounterVec

	// PipelineLatency is the end-to-end duration per payment, both parties
	// screened and the result published.
	PipelineLatency prometheus.Histogram

	// Malformed counts inbound messages that could not be decoded.
	Malformed prometheus.Counter

	// PublishFailures counts results that could not be published.
	PublishFailures prometheus.Counter
}

// New creates and registers all payment pipeline metrics.
func New() *Metrics {
	return &Metrics{
		Payments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_payments_processed_total",
			Help: "Payments processed by the pipeline, by final status",
		}, []string{"status"}),
		PipelineLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigil_payments_pipeline_duration_seconds",
			Help:    "End-to-end payment screening duration",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		Malformed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigil_payments_malformed_total",
			Help: "Inbound payment messages dropped as undecodable",
		}),
		PublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigil_payments_publish_failures_total",
			Help: "Screening results that failed to publish",
		}),
	}
}

// IncrementPayment records a finished payment by status.
func (m *Metrics) IncrementPayment(status string) {
	if m != nil {
		m.Payments.WithLabelValues(status).Inc()
	}
}

// ObservePipelineLatency records one payment's end-to-end duration.
func (m *Metrics) ObservePipelineLatency(d time.Duration) {
	if m != nil {
		m.PipelineLatency.Observe(d.Seconds())
	}
}

// IncrementMalformed records one undecodable inbound message.
func (m *Metrics) IncrementMalformed() {
	if m != nil {
		m.Malformed.Inc()
	}
}

// IncrementPublishFailure records one failed result publish.
func (m *Metrics) IncrementPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}
