package metrics

import (
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/apperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	composerGroupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "composer",
		Name:      "groups_total",
		Help:      "Count of submitted atomic groups by outcome.",
	}, []string{"network", "status"})

	composerGroupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "composer",
		Name:      "group_duration_seconds",
		Help:      "Time from signing request to confirmation of a group.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	}, []string{"network", "status"})

	composerGroupSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "composer",
		Name:      "group_operations",
		Help:      "Number of top-level operations per group.",
		Buckets:   prometheus.LinearBuckets(1, 1, 16),
	}, []string{"network"})
)

// Composer tracks atomic group submissions. The status label is the
// failure kind, so declined signatures and contract rejections stay apart.
type Composer struct {
	network string
}

func NewComposer(network string) *Composer {
	return &Composer{network: orUnknown(network)}
}

func (m Composer) ObserveGroup(err error, operations int, started time.Time) {
	status := "success"
	if err != nil {
		status = apperr.KindOf(err).String()
	}
	composerGroupsTotal.WithLabelValues(m.network, status).Inc()
	composerGroupDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	composerGroupSize.WithLabelValues(m.network).Observe(float64(operations))
}
