package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	auditRepositoryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit_repository",
		Name:      "operations_total",
		Help:      "Count of audit trail store operations.",
	}, []string{"operation", "network", "status"})
	auditRepositoryOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "audit_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of audit trail store operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation", "network", "status"})
	auditRepositoryRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit_repository",
		Name:      "rows_total",
		Help:      "Audit event rows written or read.",
	}, []string{"operation", "network"})
)

// AuditRepository records ClickHouse audit store calls.
type AuditRepository struct {
	network string
}

func NewAuditRepository(network string) *AuditRepository {
	return &AuditRepository{network: orUnknown(network)}
}

// Observe records duration and status of a store operation.
func (m AuditRepository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	auditRepositoryOperationsTotal.WithLabelValues(operation, m.network, status).Inc()
	auditRepositoryOperationDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveRows counts rows moved by a successful operation.
func (m AuditRepository) ObserveRows(operation string, rows int) {
	if rows <= 0 {
		return
	}
	auditRepositoryRowsTotal.WithLabelValues(operation, m.network).Add(float64(rows))
}
