package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejected *prometheus.CounterVec
	Degraded prometheus.Gauge
}

// NewMetrics registers the limiter metrics with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "landreg_ratelimit_rejected_total",
			Help: "Requests rejected by the rate limiter, by key kind",
		}, []string{"kind"}),
		Degraded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "landreg_ratelimit_degraded",
			Help: "1 while the shared rate limit store is unavailable and the in-process fallback answers",
		}),
	}
}

func (m *Metrics) RecordRejected(kind string) {
	m.Rejected.WithLabelValues(kind).Inc()
}

func (m *Metrics) SetDegraded(degraded bool) {
	if degraded {
		m.Degraded.Set(1)
		return
	}
	m.Degraded.Set(0)
}
