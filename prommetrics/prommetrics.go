// Package prommetrics exposes index operations as Prometheus metrics.
//
// The collector plugs into an index through hnsw.WithMetricsCollector:
//
//	collector := prommetrics.New(prometheus.DefaultRegisterer, "myapp")
//	idx := hnsw.New(params, 0, 42, hnsw.WithMetricsCollector(collector))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/graphann/hnsw"
)

// Compile time check to ensure Collector satisfies hnsw.MetricsCollector.
var _ hnsw.MetricsCollector = (*Collector)(nil)

// Collector implements hnsw.MetricsCollector on top of Prometheus.
type Collector struct {
	insertTotal       prometheus.Counter
	insertErrors      prometheus.Counter
	insertDuration    prometheus.Histogram
	batchInsertTotal  prometheus.Counter
	batchInsertItems  prometheus.Counter
	batchInsertFailed prometheus.Counter
	searchTotal       prometheus.Counter
	searchErrors      prometheus.Counter
	searchDuration    prometheus.Histogram
}

// New registers the collector's metrics with reg under namespace and returns
// it. A nil reg falls back to prometheus.DefaultRegisterer. Registering two
// collectors with the same namespace on one registry panics, as usual for
// promauto.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Collector{
		insertTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "insert_total",
			Help:      "Number of insert operations.",
		}),
		insertErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "insert_errors_total",
			Help:      "Number of insert operations that returned an error.",
		}),
		insertDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "insert_duration_seconds",
			Help:      "Insert latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		batchInsertTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "batch_insert_total",
			Help:      "Number of batch insert operations.",
		}),
		batchInsertItems: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "batch_insert_items_total",
			Help:      "Number of items attempted across batch inserts.",
		}),
		batchInsertFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "batch_insert_failed_total",
			Help:      "Number of items not inserted across batch inserts.",
		}),
		searchTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "search_total",
			Help:      "Number of search operations.",
		}),
		searchErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "search_errors_total",
			Help:      "Number of search operations that returned an error.",
		}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "hnsw",
			Name:      "search_duration_seconds",
			Help:      "Search latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// RecordInsert implements hnsw.MetricsCollector.
func (c *Collector) RecordInsert(duration time.Duration, err error) {
	c.insertTotal.Inc()
	c.insertDuration.Observe(duration.Seconds())
	if err != nil {
		c.insertErrors.Inc()
	}
}

// RecordBatchInsert implements hnsw.MetricsCollector.
func (c *Collector) RecordBatchInsert(count, failed int, duration time.Duration) {
	c.batchInsertTotal.Inc()
	c.batchInsertItems.Add(float64(count))
	c.batchInsertFailed.Add(float64(failed))
}

// RecordSearch implements hnsw.MetricsCollector.
func (c *Collector) RecordSearch(k int, duration time.Duration, err error) {
	c.searchTotal.Inc()
	c.searchDuration.Observe(duration.Seconds())
	if err != nil {
		c.searchErrors.Inc()
	}
}
