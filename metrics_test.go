package reqindex

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	var mc BasicMetricsCollector

	assert.Equal(t, BasicMetricsStats{}, mc.GetStats())

	mc.RecordRebuild(10, 20, 4*time.Millisecond, nil)
	mc.RecordRebuild(0, 0, 2*time.Millisecond, errors.New("fetch failed"))
	mc.RecordLookup(true, 100*time.Nanosecond)
	mc.RecordLookup(false, 300*time.Nanosecond)
	mc.RecordQuery("related", time.Microsecond)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.RebuildCount)
	assert.Equal(t, int64(1), stats.RebuildErrors)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.RebuildAvgNanos)
	// A failed rebuild keeps the sizes of the last successful one.
	assert.Equal(t, int64(10), stats.LastRecords)
	assert.Equal(t, int64(20), stats.LastEdges)
	assert.Equal(t, int64(2), stats.LookupCount)
	assert.Equal(t, int64(1), stats.LookupMisses)
	assert.Equal(t, int64(200), stats.LookupAvgNanos)
	assert.Equal(t, int64(1), stats.QueryCount)
	assert.Equal(t, int64(1000), stats.QueryAvgNanos)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := t.Context()

	l.WithComponent("index").WithGeneration(3).LogRebuild(ctx, 3, 10, 24, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "component=index")
	assert.Contains(t, buf.String(), "records=10")
	assert.Contains(t, buf.String(), "edges=24")

	buf.Reset()
	l.LogRebuild(ctx, 4, 0, 0, time.Millisecond, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")

	buf.Reset()
	l.LogDuplicates(ctx, 1, 0)
	assert.Empty(t, buf.String())
	l.LogDuplicates(ctx, 1, 2)
	assert.Contains(t, buf.String(), "duplicates=2")

	buf.Reset()
	l.LogLookup(ctx, 7, false)
	l.LogQuery(ctx, "mst", 9)
	assert.Contains(t, buf.String(), "id=7")
	assert.Contains(t, buf.String(), "op=mst")

	// Noop logger discards everything.
	NoopLogger().LogRebuild(ctx, 1, 1, 1, time.Millisecond, nil)
}
