package reqindex

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultMaxRelated is the number of neighbours Related returns.
const DefaultMaxRelated = 5

type options struct {
	logger             *Logger
	metricsCollector   MetricsCollector
	tracerProvider     trace.TracerProvider
	maxRelated         int
	workers            int
	minRebuildInterval time.Duration
}

// Option configures New.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		tracerProvider:   noop.NewTracerProvider(),
		maxRelated:       DefaultMaxRelated,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.tracerProvider == nil {
		o.tracerProvider = noop.NewTracerProvider()
	}
	return o
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := reqindex.NewJSONLogger(slog.LevelInfo)
//	idx, _ := reqindex.New(ctx, src, reqindex.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &reqindex.BasicMetricsCollector{}
//	idx, _ := reqindex.New(ctx, src, reqindex.WithMetricsCollector(metrics))
//	// ... use idx ...
//	stats := metrics.GetStats()
//	fmt.Printf("Rebuilds: %d, Avg: %dns\n", stats.RebuildCount, stats.RebuildAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithTracerProvider sets the provider for rebuild spans. The default is a
// no-op provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithMaxRelated sets how many neighbours Related returns. Values <= 0 make
// Related return no records.
func WithMaxRelated(n int) Option {
	return func(o *options) {
		o.maxRelated = n
	}
}

// WithWorkers bounds the number of goroutines used for the pairwise
// similarity pass. 0 uses GOMAXPROCS; 1 computes it on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMinRebuildInterval throttles Rebuild so that consecutive rebuilds start
// at least d apart. Callers block until the interval has passed or their
// context is done. 0 disables throttling.
func WithMinRebuildInterval(d time.Duration) Option {
	return func(o *options) {
		o.minRebuildInterval = d
	}
}
