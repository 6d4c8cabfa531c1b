package reqindex

import (
	"errors"
	"fmt"

	"github.com/hupe1980/reqindex/internal/queue"
)

var (
	// ErrNilSource is returned by New when no record source is given.
	ErrNilSource = errors.New("record source must not be nil")

	// ErrEmptyCollection is returned when a query needs at least one record.
	ErrEmptyCollection = queue.ErrEmpty
)

// RebuildError reports a failed rebuild. The index keeps serving the
// generation that was current before the attempt.
type RebuildError struct {
	// Generation is the generation that remained visible.
	Generation uint64
	// Cause is the error returned by the record source or the build.
	Cause error
}

func (e *RebuildError) Error() string {
	return fmt.Sprintf("rebuild failed (serving generation %d): %v", e.Generation, e.Cause)
}

func (e *RebuildError) Unwrap() error { return e.Cause }
