package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hupe1980/reqindex"
	"github.com/hupe1980/reqindex/blobstore"
	"github.com/hupe1980/reqindex/codec"
	"github.com/hupe1980/reqindex/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type countingRebuilder struct {
	calls atomic.Int64
	err   error
}

func (c *countingRebuilder) Rebuild(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func start(t *testing.T, w *Watcher) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- w.Run(t.Context()) }()
	return errc
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	r := &countingRebuilder{}

	w, err := New(path, r, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	errc := start(t, w)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	}

	require.Eventually(t, func() bool { return w.Rebuilds() == 1 }, 2*time.Second, 10*time.Millisecond)
	// No further rebuild without new events.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int64(1), r.calls.Load())

	require.NoError(t, w.Close())
	assert.ErrorIs(t, <-errc, ErrClosed)
	require.NoError(t, w.Close())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	r := &countingRebuilder{}

	w, err := New(filepath.Join(dir, "records.json"), r, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	errc := start(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, r.calls.Load())

	require.NoError(t, w.Close())
	<-errc
}

func TestWatcher_CountsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	r := &countingRebuilder{err: errors.New("boom")}

	w, err := New(path, r, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	errc := start(t, w)

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	require.Eventually(t, func() bool { return w.Failures() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, w.Rebuilds())

	require.NoError(t, w.Close())
	<-errc
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New(filepath.Join(t.TempDir(), "records.json"), &countingRebuilder{})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(t.Context())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestWatcher_RebuildsIndexOnAtomicReplace(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := blobstore.NewLocalStore(t.TempDir())

	now := time.Now()
	recs := source.SampleRecords(now)
	require.NoError(t, source.WriteSnapshot(t.Context(), store, source.DefaultSnapshotName, recs[:5], codec.Default))

	ix, err := reqindex.New(t.Context(), source.NewSnapshotSource(store, source.DefaultSnapshotName))
	require.NoError(t, err)
	require.Equal(t, 5, ix.Statistics().Total)

	w, err := New(store.Path(source.DefaultSnapshotName), ix, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	errc := start(t, w)

	require.NoError(t, source.WriteSnapshot(t.Context(), store, source.DefaultSnapshotName, recs, codec.Default))

	require.Eventually(t, func() bool { return ix.Statistics().Total == 10 }, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, ix.Generation(), uint64(2))

	require.NoError(t, w.Close())
	<-errc
}

func TestNew_NilRebuilder(t *testing.T) {
	_, err := New("records.json", nil)
	assert.Error(t, err)
}
