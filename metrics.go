package reqindex

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metric/prometheus package provides a Prometheus implementation.
//
//	collector := prometheus.NewCollector(prom.DefaultRegisterer)
//	idx, _ := reqindex.New(ctx, src, reqindex.WithMetricsCollector(collector))
type MetricsCollector interface {
	// RecordRebuild is called after each rebuild attempt.
	// records and edges describe the new generation and are zero on failure.
	RecordRebuild(records, edges int, duration time.Duration, err error)

	// RecordLookup is called after each GetByID call.
	RecordLookup(hit bool, duration time.Duration)

	// RecordQuery is called after each ordered, related or graph query.
	// op is a stable operation name such as "related" or "mst".
	RecordQuery(op string, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRebuild(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLookup(bool, time.Duration)             {}
func (NoopMetricsCollector) RecordQuery(string, time.Duration)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RebuildCount      atomic.Int64
	RebuildErrors     atomic.Int64
	RebuildTotalNanos atomic.Int64
	LastRecords       atomic.Int64
	LastEdges         atomic.Int64
	LookupCount       atomic.Int64
	LookupMisses      atomic.Int64
	LookupTotalNanos  atomic.Int64
	QueryCount        atomic.Int64
	QueryTotalNanos   atomic.Int64
}

// RecordRebuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRebuild(records, edges int, duration time.Duration, err error) {
	b.RebuildCount.Add(1)
	b.RebuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RebuildErrors.Add(1)
		return
	}
	b.LastRecords.Store(int64(records))
	b.LastEdges.Store(int64(edges))
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(hit bool, duration time.Duration) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(duration.Nanoseconds())
	if !hit {
		b.LookupMisses.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ string, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RebuildCount:    b.RebuildCount.Load(),
		RebuildErrors:   b.RebuildErrors.Load(),
		RebuildAvgNanos: avg(b.RebuildTotalNanos.Load(), b.RebuildCount.Load()),
		LastRecords:     b.LastRecords.Load(),
		LastEdges:       b.LastEdges.Load(),
		LookupCount:     b.LookupCount.Load(),
		LookupMisses:    b.LookupMisses.Load(),
		LookupAvgNanos:  avg(b.LookupTotalNanos.Load(), b.LookupCount.Load()),
		QueryCount:      b.QueryCount.Load(),
		QueryAvgNanos:   avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RebuildCount    int64
	RebuildErrors   int64
	RebuildAvgNanos int64
	LastRecords     int64
	LastEdges       int64
	LookupCount     int64
	LookupMisses    int64
	LookupAvgNanos  int64
	QueryCount      int64
	QueryAvgNanos   int64
}
