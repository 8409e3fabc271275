package syncer

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors the syncer updates.
type Metrics struct {
	Active   prometheus.Gauge
	Queries  prometheus.Counter
	Misses   prometheus.Counter
	Related  prometheus.Counter
}

// NewMetrics builds and registers a Metrics under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "syncer",
			Name:      "active_total",
			Help:      "Accounts currently being pull-synced.",
		}),
		Queries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "syncer",
			Name:      "queries_total",
			Help:      "Peer queries dispatched.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "syncer",
			Name:      "misses_total",
			Help:      "First queries for an account that never found a block.",
		}),
		Related: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "syncer",
			Name:      "related_total",
			Help:      "Related-account syncs started via SyncRelated fan-out.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Active, m.Queries, m.Misses, m.Related)
	}
	return m
}
