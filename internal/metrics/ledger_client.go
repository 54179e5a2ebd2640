package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "benefitchain"

var (
	ledgerClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger_client",
		Name:      "operations_total",
		Help:      "Count of ledger client operations.",
	}, []string{"operation", "network", "status"})
	ledgerClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger client operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// LedgerClient tracks metrics for calls to the ledger node.
type LedgerClient struct {
	network string
}

// NewLedgerClient constructs a metrics collector for ledger calls.
func NewLedgerClient(network string) *LedgerClient {
	return &LedgerClient{network: orUnknown(network)}
}

// Observe records a single ledger call outcome and duration.
func (m LedgerClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	ledgerClientRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	ledgerClientRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
