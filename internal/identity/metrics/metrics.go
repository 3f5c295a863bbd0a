package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the identity registry.
type Metrics struct {
	UsersRegistered  prometheus.Counter
	UsersVerified    prometheus.Counter
	RoleChanges      *prometheus.CounterVec
	StatusCacheReads *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec
}

// New registers the identity metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "landreg_identity_users_registered_total",
			Help: "Total number of registered users",
		}),
		UsersVerified: factory.NewCounter(prometheus.CounterOpts{
			Name: "landreg_identity_users_verified_total",
			Help: "Total number of users verified by an inspector",
		}),
		RoleChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "landreg_identity_role_changes_total",
			Help: "Role grants and revocations by role and direction",
		}, []string{"role", "op"}),
		StatusCacheReads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "landreg_identity_status_cache_reads_total",
			Help: "Verification status cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		MutationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "landreg_identity_mutation_duration_seconds",
			Help:    "Duration of identity mutations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementRegistered() {
	m.UsersRegistered.Inc()
}

func (m *Metrics) IncrementVerified(n int) {
	m.UsersVerified.Add(float64(n))
}

// RecordRoleChange counts a grant ("assign") or revocation ("revoke").
func (m *Metrics) RecordRoleChange(role, op string) {
	m.RoleChanges.WithLabelValues(role, op).Inc()
}

func (m *Metrics) RecordCacheRead(result string) {
	m.StatusCacheReads.WithLabelValues(result).Inc()
}

// ObserveMutation records the duration of operation. Call with time.Now() at the start.
func (m *Metrics) ObserveMutation(operation string, start time.Time) {
	m.MutationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
