// Package watch rebuilds an index whenever its snapshot file changes on disk.
//
// Bursts of file system events are collapsed into a single rebuild once the
// file has been quiet for the debounce window.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hupe1980/reqindex"
)

// DefaultDebounce is the quiet period applied when no WithDebounce option is given.
const DefaultDebounce = 250 * time.Millisecond

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watch: watcher closed")

// Rebuilder is implemented by *reqindex.Index.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

type options struct {
	debounce time.Duration
	logger   *reqindex.Logger
}

// Option configures a Watcher.
type Option func(*options)

// WithDebounce sets the quiet period after the last event before rebuilding.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithLogger sets the logger used for rebuild results and watcher errors.
func WithLogger(l *reqindex.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Watcher triggers a rebuild when a single file changes.
type Watcher struct {
	file      string
	rebuilder Rebuilder
	opts      options
	fsw       *fsnotify.Watcher

	rebuilds atomic.Int64
	failures atomic.Int64

	done      chan struct{}
	closeOnce sync.Once
}

// New watches the directory containing path. Only events for path itself
// trigger rebuilds, so atomic replacement through a rename is picked up.
func New(path string, r Rebuilder, optFns ...Option) (*Watcher, error) {
	if r == nil {
		return nil, errors.New("watch: nil rebuilder")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	opts := options{
		debounce: DefaultDebounce,
		logger:   reqindex.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		file:      abs,
		rebuilder: r,
		opts:      opts,
		fsw:       fsw,
		done:      make(chan struct{}),
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.file }

// Rebuilds returns the number of rebuilds that succeeded.
func (w *Watcher) Rebuilds() int64 { return w.rebuilds.Load() }

// Failures returns the number of rebuilds that failed.
func (w *Watcher) Failures() int64 { return w.failures.Load() }

// Run processes events until ctx is canceled or Close is called. A failed
// rebuild is logged and counted; the watcher keeps running.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.opts.debounce)
	timer.Stop()
	defer timer.Stop()

	logger := w.opts.logger.WithComponent("watch")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return ErrClosed
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return ErrClosed
			}
			if !w.relevant(ev) {
				continue
			}
			logger.DebugContext(ctx, "snapshot changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.opts.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrClosed
			}
			logger.WarnContext(ctx, "watch error", "error", err)
		case <-timer.C:
			if err := w.rebuilder.Rebuild(ctx); err != nil {
				w.failures.Add(1)
				logger.ErrorContext(ctx, "rebuild after change failed", "error", err)
				continue
			}
			w.rebuilds.Add(1)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.file {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}
