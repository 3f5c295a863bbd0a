package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the purchase workflow.
type Metrics struct {
	RequestsCreated   prometheus.Counter
	RequestsProcessed *prometheus.CounterVec
	PurchasesDone     prometheus.Counter
	PaymentVolume     prometheus.Counter
	MutationDuration  *prometheus.HistogramVec
}

// New registers the transfer metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		RequestsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "landreg_transfer_requests_created_total",
			Help: "Total number of purchase requests created",
		}),
		RequestsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "landreg_transfer_requests_processed_total",
			Help: "Seller decisions on purchase requests (accepted, rejected)",
		}, []string{"decision"}),
		PurchasesDone: factory.NewCounter(prometheus.CounterOpts{
			Name: "landreg_transfer_purchases_completed_total",
			Help: "Total number of completed purchases",
		}),
		PaymentVolume: factory.NewCounter(prometheus.CounterOpts{
			Name: "landreg_transfer_payment_volume_total",
			Help: "Sum of completed payment amounts",
		}),
		MutationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "landreg_transfer_mutation_duration_seconds",
			Help:    "Duration of purchase workflow mutations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementCreated() {
	m.RequestsCreated.Inc()
}

func (m *Metrics) RecordDecision(approved bool) {
	decision := "rejected"
	if approved {
		decision = "accepted"
	}
	m.RequestsProcessed.WithLabelValues(decision).Inc()
}

func (m *Metrics) RecordPurchase(amount int64) {
	m.PurchasesDone.Inc()
	m.PaymentVolume.Add(float64(amount))
}

func (m *Metrics) ObserveMutation(operation string, start time.Time) {
	m.MutationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
