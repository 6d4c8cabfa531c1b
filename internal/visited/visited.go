// Package visited provides the visited set used by graph traversals.
package visited

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/reqindex/model"
)

// Set tracks visited record IDs in a roaring bitmap.
// Record IDs may be sparse, so a compressed bitmap is used rather than a dense
// bitset sized by the largest ID.
type Set struct {
	rb *roaring.Bitmap
}

var setPool = sync.Pool{
	New: func() any {
		return &Set{rb: roaring.New()}
	},
}

// Get returns a cleared set from the pool. Release it with Put.
func Get() *Set {
	s := setPool.Get().(*Set)
	s.Reset()
	return s
}

// Put returns s to the pool.
func Put(s *Set) {
	if s == nil {
		return
	}
	setPool.Put(s)
}

// Visit marks id as visited. It returns false if id was already visited.
func (s *Set) Visit(id model.ID) bool {
	return s.rb.CheckedAdd(uint32(id))
}

// Visited returns true if id has been visited.
func (s *Set) Visited(id model.ID) bool {
	return s.rb.Contains(uint32(id))
}

// Reset clears the set.
func (s *Set) Reset() {
	s.rb.Clear()
}
