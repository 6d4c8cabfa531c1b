package resource

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxWorkers is the maximum number of concurrent similarity workers.
	// If 0, defaults to GOMAXPROCS.
	MaxWorkers int64

	// MinRebuildInterval is the minimum spacing between rebuilds.
	// If 0, rebuilds are not throttled.
	MinRebuildInterval time.Duration
}

// Controller manages worker slots and rebuild pacing.
type Controller struct {
	cfg Config

	workers *semaphore.Weighted

	rebuilds *rate.Limiter // nil if unthrottled
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = int64(runtime.GOMAXPROCS(0))
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.MinRebuildInterval > 0 {
		c.rebuilds = rate.NewLimiter(rate.Every(cfg.MinRebuildInterval), 1)
	}

	return c
}

// Workers returns the configured worker limit (1 for a nil Controller).
func (c *Controller) Workers() int {
	if c == nil {
		return 1
	}
	return int(c.cfg.MaxWorkers)
}

// AcquireWorker reserves a worker slot, blocking while all slots are busy.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.workers.Acquire(ctx, 1)
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workers.Release(1)
}

// WaitRebuild blocks until a rebuild may start or ctx is done.
func (c *Controller) WaitRebuild(ctx context.Context) error {
	if c == nil || c.rebuilds == nil {
		return ctx.Err()
	}
	return c.rebuilds.Wait(ctx)
}
