package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Directory Prometheus metrics.
var (
	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinedex",
			Name:      "cache_total",
			Help:      "Restaurant cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	IndexWriteFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinedex",
			Name:      "index_write_failures_total",
			Help:      "Derived structure writes that failed after the primary record was stored",
		},
		[]string{"structure"},
	)

	DedupRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dinedex",
			Name:      "dedup_rejections_total",
			Help:      "Restaurant creations rejected as duplicates",
		},
	)

	ReviewsRecordedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dinedex",
			Name:      "reviews_recorded_total",
			Help:      "Reviews appended to the ledger",
		},
	)
)

var registerDirectoryOnce sync.Once

// RegisterDirectoryMetrics registers the directory metrics with the default registerer.
// Safe to call more than once.
func RegisterDirectoryMetrics() {
	registerDirectoryOnce.Do(func() {
		prometheus.MustRegister(CacheTotal, IndexWriteFailuresTotal, DedupRejectionsTotal, ReviewsRecordedTotal)
	})
}
