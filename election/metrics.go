package election

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors the engine updates as it
// processes elections. Registering them is left to the embedding node
// (NewMetrics does not auto-register with the default registerer).
// The engine updates Confirmed, Expired, Forked and WakeLag; it never
// sets Active.
type Metrics struct {
	Active     prometheus.Gauge
	Confirmed  prometheus.Counter
	Expired    prometheus.Counter
	Forked     prometheus.Counter
	WakeLag    prometheus.Histogram
}

// NewMetrics builds a Metrics with the given namespace, registering the
// collectors with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "active_total",
			Help:      "Number of elections currently open.",
		}),
		Confirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "confirmed_total",
			Help:      "Elections confirmed with a winner.",
		}),
		Expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "expired_total",
			Help:      "Elections destroyed after exceeding their round cap.",
		}),
		Forked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "forked_total",
			Help:      "Conflicting-vote latches (fork_found set), counted once per latch.",
		}),
		WakeLag: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "election",
			Name:      "wake_lag_seconds",
			Help:      "Delay between an election's scheduled wakeup and when the worker processed it.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Active, m.Confirmed, m.Expired, m.Forked, m.WakeLag)
	}
	return m
}
