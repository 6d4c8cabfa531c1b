package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Workers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})
	assert.Equal(t, 2, c.Workers())

	// Acquire 2
	require.NoError(t, c.AcquireWorker(t.Context()))
	require.NoError(t, c.AcquireWorker(t.Context()))

	// A blocked acquire honours the context.
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireWorker(ctx), context.DeadlineExceeded)

	// Release 1 and the next acquire succeeds.
	c.ReleaseWorker()
	require.NoError(t, c.AcquireWorker(t.Context()))
}

func TestController_DefaultWorkers(t *testing.T) {
	c := NewController(Config{})
	assert.GreaterOrEqual(t, c.Workers(), 1)
}

func TestController_RebuildThrottle(t *testing.T) {
	c := NewController(Config{MinRebuildInterval: time.Hour})

	require.NoError(t, c.WaitRebuild(t.Context()), "first rebuild uses the burst token")

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.WaitRebuild(ctx))
}

func TestController_Unthrottled(t *testing.T) {
	c := NewController(Config{})
	for i := 0; i < 5; i++ {
		require.NoError(t, c.WaitRebuild(t.Context()))
	}
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	assert.Equal(t, 1, c.Workers())
	require.NoError(t, c.AcquireWorker(t.Context()))
	c.ReleaseWorker()
	require.NoError(t, c.WaitRebuild(t.Context()))
}
