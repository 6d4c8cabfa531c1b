// Package prometheus exports index metrics through the Prometheus client.
//
//	collector := prometheus.NewCollector(prom.DefaultRegisterer)
//	idx, _ := reqindex.New(ctx, src, reqindex.WithMetricsCollector(collector))
//	http.Handle("/metrics", promhttp.Handler())
package prometheus

import (
	"time"

	"github.com/hupe1980/reqindex"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "reqindex"

// Collector implements reqindex.MetricsCollector with Prometheus metrics.
type Collector struct {
	rebuilds       *prometheus.CounterVec
	rebuildLatency prometheus.Histogram
	records        prometheus.Gauge
	edges          prometheus.Gauge
	lookups        *prometheus.CounterVec
	opLatency      *prometheus.HistogramVec
}

var _ reqindex.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg.
// It panics if a metric with the same name is already registered.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebuilds_total",
			Help:      "Total rebuild attempts",
		}, []string{"status"}),
		rebuildLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Duration of rebuilds including the snapshot fetch",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records in the current generation",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "edges",
			Help:      "Directed relationship edges in the current generation",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Total lookups by identifier",
		}, []string{"result"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of index queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(c.rebuilds, c.rebuildLatency, c.records, c.edges, c.lookups, c.opLatency)
	return c
}

// RecordRebuild implements reqindex.MetricsCollector.
func (c *Collector) RecordRebuild(records, edges int, d time.Duration, err error) {
	c.rebuildLatency.Observe(d.Seconds())
	if err != nil {
		c.rebuilds.WithLabelValues("error").Inc()
		return
	}
	c.rebuilds.WithLabelValues("success").Inc()
	c.records.Set(float64(records))
	c.edges.Set(float64(edges))
}

// RecordLookup implements reqindex.MetricsCollector.
func (c *Collector) RecordLookup(hit bool, d time.Duration) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.lookups.WithLabelValues(result).Inc()
	c.opLatency.WithLabelValues("get").Observe(d.Seconds())
}

// RecordQuery implements reqindex.MetricsCollector.
func (c *Collector) RecordQuery(op string, d time.Duration) {
	c.opLatency.WithLabelValues(op).Observe(d.Seconds())
}
