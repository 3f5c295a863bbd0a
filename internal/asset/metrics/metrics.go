package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the asset registry.
type Metrics struct {
	LandsRegistered  prometheus.Counter
	LandsVerified    *prometheus.CounterVec
	LandsTransferred prometheus.Counter
	MutationDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		LandsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "landreg_asset_lands_registered_total",
			Help: "Total number of land records created",
		}),
		LandsVerified: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "landreg_asset_lands_inspected_total",
			Help: "Land inspections by outcome (approved, rejected)",
		}, []string{"outcome"}),
		LandsTransferred: factory.NewCounter(prometheus.CounterOpts{
			Name: "landreg_asset_lands_transferred_total",
			Help: "Total number of ownership transfers",
		}),
		MutationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "landreg_asset_mutation_duration_seconds",
			Help:    "Duration of asset registry mutations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementRegistered() {
	m.LandsRegistered.Inc()
}

func (m *Metrics) RecordInspection(approved bool) {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	m.LandsVerified.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementTransferred() {
	m.LandsTransferred.Inc()
}

// ObserveMutation records the duration of operation. Call with time.Now() at the start.
func (m *Metrics) ObserveMutation(operation string, start time.Time) {
	m.MutationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
