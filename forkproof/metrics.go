package forkproof

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors the pool updates.
type Metrics struct {
	Recorded prometheus.Counter
	Pending  prometheus.Gauge
}

// NewMetrics builds and registers a Metrics under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		Recorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forkproof",
			Name:      "recorded_total",
			Help:      "Conflicting-vote proofs recorded.",
		}),
		Pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "forkproof",
			Name:      "pending",
			Help:      "Proofs awaiting inclusion or publication.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Recorded, m.Pending)
	}
	return m
}
