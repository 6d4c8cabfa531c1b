package testutil

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hupe1980/reqindex/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Shuffle shuffles recs in place.
func (r *RNG) Shuffle(recs []model.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(recs), func(i, j int) { recs[i], recs[j] = recs[j], recs[i] })
}

var (
	streets = []string{"Main Road", "Beach Road", "Kloof Street", "Oak Street", "Long Street", "Victoria Road"}
	suburbs = []string{"Gardens", "Sea Point", "Woodstock", "Claremont", "Rondebosch", "Camps Bay", "Constantia"}
)

// Record returns a random record with the given ID, created within 60 days
// before base.
func (r *RNG) Record(id model.ID, base time.Time) model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	category := model.Category(r.rand.Intn(int(model.CategoryOther) + 1))
	return model.Record{
		ID:          id,
		Title:       fmt.Sprintf("Request %d", id),
		Description: fmt.Sprintf("Generated %s request", category),
		Category:    category,
		Location:    streets[r.rand.Intn(len(streets))] + ", " + suburbs[r.rand.Intn(len(suburbs))],
		Priority:    model.Priorities[r.rand.Intn(len(model.Priorities))],
		Status:      model.Statuses[r.rand.Intn(len(model.Statuses))],
		CreatedAt:   base.Add(-time.Duration(r.rand.Int63n(int64(60 * 24 * time.Hour)))),
	}
}

// Records returns n random records with IDs 1..n.
func (r *RNG) Records(n int, base time.Time) []model.Record {
	out := make([]model.Record, n)
	for i := range out {
		out[i] = r.Record(model.ID(i+1), base)
	}
	return out
}

// RecordsWithIDs returns one random record per ID, in the given order.
func (r *RNG) RecordsWithIDs(ids []model.ID, base time.Time) []model.Record {
	out := make([]model.Record, len(ids))
	for i, id := range ids {
		out[i] = r.Record(id, base)
	}
	return out
}

// IDs extracts the IDs of recs, preserving order.
func IDs(recs []model.Record) []model.ID {
	out := make([]model.ID, len(recs))
	for i, rec := range recs {
		out[i] = rec.ID
	}
	return out
}
