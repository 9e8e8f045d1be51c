// Package metrics provides observability for the screening module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for screening calls.
type Metrics struct {
	// ScreenLatency is the duration of full screening calls.
	ScreenLatency prometheus.Histogram

	// Decisions counts screening outcomes by decision.
	Decisions *prometheus.CounterVec

	// Findings observes how many findings a screening call produced.
	Findings prometheus.Histogram

	// StrategyHits counts which strategy produced each finding.
	StrategyHits *prometheus.CounterVec
}

// New creates and registers all screening metrics.
func New() *Metrics {
	return &Metrics{
		ScreenLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigil_screening_duration_seconds",
			Help:    "Duration of screening calls including all matching strategies",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_screening_decisions_total",
			Help: "Total screening outcomes by decision",
		}, []string{"decision"}),
		Findings: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigil_screening_findings",
			Help:    "Number of findings per screening call",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		StrategyHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_screening_strategy_hits_total",
			Help: "Findings produced by each matching strategy",
		}, []string{"strategy"}),
	}
}

// ObserveScreenLatency records the duration of one screening call.
func (m *Metrics) ObserveScreenLatency(d time.Duration) {
	if m != nil {
		m.ScreenLatency.Observe(d.Seconds())
	}
}

// IncrementDecision records a screening outcome.
func (m *Metrics) IncrementDecision(decision string) {
	if m != nil {
		m.Decisions.WithLabelValues(decision).Inc()
	}
}

// ObserveFindings records the finding count for one call.
func (m *Metrics) ObserveFindings(n int) {
	if m != nil {
		m.Findings.Observe(float64(n))
	}
}

// IncrementStrategy records the strategy behind one finding.
func (m *Metrics) IncrementStrategy(strategy string) {
	if m != nil {
		m.StrategyHits.WithLabelValues(strategy).Inc()
	}
}
