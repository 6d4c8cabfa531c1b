package source

import (
	"context"

	"github.com/hupe1980/reqindex/model"
)

// RecordSource provides full snapshots of the canonical record collection.
type RecordSource interface {
	// Records returns every record. Implementations must return a slice the
	// caller may keep.
	Records(ctx context.Context) ([]model.Record, error)
}

// Func adapts an ordinary function to the RecordSource interface.
type Func func(ctx context.Context) ([]model.Record, error)

// Records calls f(ctx).
func (f Func) Records(ctx context.Context) ([]model.Record, error) {
	return f(ctx)
}

// Static returns a source that always yields a copy of recs.
func Static(recs []model.Record) RecordSource {
	return Func(func(ctx context.Context) ([]model.Record, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := make([]model.Record, len(recs))
		copy(out, recs)
		return out, nil
	})
}
