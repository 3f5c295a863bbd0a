package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the dispute registry.
type Metrics struct {
	DisputesRaised   *prometheus.CounterVec
	DisputesResolved prometheus.Counter
}

// New registers the dispute metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		DisputesRaised: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "landreg_dispute_raised_total",
			Help: "Disputes raised by category",
		}, []string{"category"}),
		DisputesResolved: factory.NewCounter(prometheus.CounterOpts{
			Name: "landreg_dispute_resolved_total",
			Help: "Total number of resolved disputes",
		}),
	}
}

func (m *Metrics) RecordRaised(category string) {
	m.DisputesRaised.WithLabelValues(category).Inc()
}

func (m *Metrics) IncrementResolved() {
	m.DisputesResolved.Inc()
}
