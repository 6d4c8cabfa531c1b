// Package unionfind implements a disjoint-set forest with path compression.
//
// Sets are merged without union-by-rank; with path compression alone the
// amortized cost per operation stays close to logarithmic, which is plenty
// for graphs of a few thousand vertices.
package unionfind

// Set is a disjoint-set forest over comparable keys.
// The zero value is not usable; create one with New.
type Set[K comparable] struct {
	parent map[K]K
	sets   int
}

// New creates an empty forest with room for capacity elements.
func New[K comparable](capacity int) *Set[K] {
	return &Set[K]{parent: make(map[K]K, capacity)}
}

// MakeSet adds x as a singleton set. It is a no-op if x is already present.
func (s *Set[K]) MakeSet(x K) {
	if _, ok := s.parent[x]; ok {
		return
	}
	s.parent[x] = x
	s.sets++
}

// Contains reports whether x has been added.
func (s *Set[K]) Contains(x K) bool {
	_, ok := s.parent[x]
	return ok
}

// Find returns the representative of the set containing x.
// The second result is false if x was never added.
func (s *Set[K]) Find(x K) (K, bool) {
	p, ok := s.parent[x]
	if !ok {
		return x, false
	}

	root := x
	for p != root {
		root = p
		p = s.parent[root]
	}

	// Path compression: point every node on the path straight at the root.
	for x != root {
		next := s.parent[x]
		s.parent[x] = root
		x = next
	}

	return root, true
}

// Union merges the sets containing x and y. It returns true if they were in
// different sets, and false if they were already joined or either key is unknown.
func (s *Set[K]) Union(x, y K) bool {
	rx, ok := s.Find(x)
	if !ok {
		return false
	}
	ry, ok := s.Find(y)
	if !ok {
		return false
	}
	if rx == ry {
		return false
	}
	s.parent[rx] = ry
	s.sets--
	return true
}

// Sets returns the number of disjoint sets.
func (s *Set[K]) Sets() int { return s.sets }
