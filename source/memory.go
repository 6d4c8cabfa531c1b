package source

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/reqindex/model"
)

// MemorySource is an in-memory record store that assigns identifiers and
// creation times to appended records.
// It is safe for concurrent use.
type MemorySource struct {
	mu      sync.RWMutex
	records map[model.ID]model.Record
	ids     IDGenerator
	now     func() time.Time
}

// MemoryOption configures a MemorySource.
type MemoryOption func(*MemorySource)

// WithIDGenerator sets the identifier generator. The default is NewSequence(1).
func WithIDGenerator(g IDGenerator) MemoryOption {
	return func(m *MemorySource) { m.ids = g }
}

// WithClock sets the function used to stamp CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemorySource) { m.now = now }
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource(opts ...MemoryOption) *MemorySource {
	m := &MemorySource{
		records: make(map[model.ID]model.Record),
		ids:     NewSequence(1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Append validates r, assigns it a new ID, stamps CreatedAt, resets its status
// to Submitted and stores it. Caller-provided ID, CreatedAt and Status are
// ignored.
func (m *MemorySource) Append(ctx context.Context, r model.Record) (model.ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.Status = model.StatusSubmitted
	r.UpdatedAt = nil
	if err := Validate(r); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = m.ids.NextID()
	r.CreatedAt = m.now()
	m.records[r.ID] = r

	return r.ID, nil
}

// Load stores already-identified records as they are, e.g. a seed data set.
// Records that fail validation are rejected and nothing is stored.
func (m *MemorySource) Load(ctx context.Context, recs ...model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, r := range recs {
		if err := Validate(r); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range recs {
		m.records[r.ID] = r
	}
	return nil
}

// Update replaces the mutable fields of the stored record with r.ID and stamps
// UpdatedAt. It reports false when no such record exists.
func (m *MemorySource) Update(ctx context.Context, r model.Record) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := Validate(r); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.records[r.ID]
	if !ok {
		return false, nil
	}

	now := m.now()
	cur.Title = r.Title
	cur.Description = r.Description
	cur.Category = r.Category
	cur.Location = r.Location
	cur.Priority = r.Priority
	cur.Status = r.Status
	cur.UpdatedAt = &now
	m.records[r.ID] = cur

	return true, nil
}

// Delete removes the record with the given ID and reports whether it existed.
func (m *MemorySource) Delete(id model.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return false
	}
	delete(m.records, id)
	return true
}

// Get returns the record with the given ID.
func (m *MemorySource) Get(id model.ID) (model.Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	return r, ok
}

// Len returns the number of stored records.
func (m *MemorySource) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}

// Records returns a copy of all records, newest first. Records created at the
// same instant are ordered by ascending ID.
func (m *MemorySource) Records(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	out := make([]model.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b model.Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
