package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	auditFetchPageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit_ingester",
		Name:      "fetch_page_total",
		Help:      "Count of history page fetches.",
	}, []string{"network", "status"})

	auditFetchPageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "audit_ingester",
		Name:      "fetch_page_duration_seconds",
		Help:      "Duration of fetching one history page.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	auditStoreBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit_ingester",
		Name:      "store_batch_total",
		Help:      "Count of stored event batches.",
	}, []string{"network", "status"})

	auditStoreBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "audit_ingester",
		Name:      "store_batch_duration_seconds",
		Help:      "Duration of storing a batch of events.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	auditStoreBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "audit_ingester",
		Name:      "store_batch_size",
		Help:      "Number of events stored per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	auditCursorRound = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "audit_ingester",
		Name:      "cursor_round",
		Help:      "Confirmed round of the last ingested operation.",
	}, []string{"network"})
)

type AuditIngester struct {
	network string
}

func NewAuditIngester(network string) *AuditIngester {
	return &AuditIngester{network: orUnknown(network)}
}

func (m AuditIngester) ObserveFetchPage(err error, started time.Time) {
	status := statusOf(err)
	auditFetchPageTotal.WithLabelValues(m.network, status).Inc()
	auditFetchPageDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
}

func (m AuditIngester) ObserveStoreBatch(err error, events int, started time.Time) {
	status := statusOf(err)
	auditStoreBatchTotal.WithLabelValues(m.network, status).Inc()
	auditStoreBatchDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	auditStoreBatchSize.WithLabelValues(m.network).Observe(float64(events))
}

func (m AuditIngester) ObserveCursor(round uint64) {
	auditCursorRound.WithLabelValues(m.network).Set(float64(round))
}
