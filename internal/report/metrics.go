package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are counters over selections and calls, kept in a private
// registry so every run (and every test) starts from zero.
type Metrics struct {
	registry     *prometheus.Registry
	selections   *prometheus.CounterVec
	decorations  *prometheus.CounterVec
	calls        *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentdeco_selections_total",
				Help: "Times each agent was consulted while resolving a wrapper",
			},
			[]string{"agent"},
		),
		decorations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentdeco_decorations_total",
				Help: "Targets decorated, by selection kind",
			},
			[]string{"kind"},
		),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agentdeco_calls_total",
				Help: "Timed calls by target and outcome",
			},
			[]string{"target", "outcome"},
		),
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agentdeco_call_duration_seconds",
				Help:    "Wall clock duration of timed calls",
				Buckets: prometheus.ExponentialBuckets(0.0001, 10, 6),
			},
			[]string{"target"},
		),
	}

	m.registry.MustRegister(m.selections, m.decorations, m.calls, m.callDuration)
	return m
}

// Registry exposes the underlying registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSelection counts one visit to an agent
func (m *Metrics) ObserveSelection(agent string) {
	m.selections.WithLabelValues(agent).Inc()
}

// ObserveDecoration counts one applied selection
func (m *Metrics) ObserveDecoration(kind string) {
	m.decorations.WithLabelValues(kind).Inc()
}

// ObserveCall records a finished timed call
func (m *Metrics) ObserveCall(r *Result) {
	m.calls.WithLabelValues(r.Target, r.Outcome()).Inc()
	m.callDuration.WithLabelValues(r.Target).Observe(r.Wall.Seconds())
}
