// Package bst implements an unbalanced binary search tree of records keyed by ID.
//
// The tree is the baseline lookup structure: search is O(log n) on average and
// O(n) for adversarial (sorted) insertion orders, where the tree degenerates
// into a chain.
package bst

import "github.com/hupe1980/reqindex/model"

type node struct {
	rec         model.Record
	left, right *node
}

// Tree is an unbalanced binary search tree. It is not safe for concurrent
// mutation; concurrent reads are safe once building is done.
type Tree struct {
	root  *node
	count int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Insert adds r to the tree. An existing record with the same ID is kept and the
// tree shape is left unchanged.
//
// Len counts Insert calls, so it also increments for duplicate IDs.
func (t *Tree) Insert(r model.Record) {
	t.root = insert(t.root, r)
	t.count++
}

func insert(n *node, r model.Record) *node {
	if n == nil {
		return &node{rec: r}
	}

	switch {
	case r.ID < n.rec.ID:
		n.left = insert(n.left, r)
	case r.ID > n.rec.ID:
		n.right = insert(n.right, r)
	}

	return n
}

// Search returns the record with the given ID.
func (t *Tree) Search(id model.ID) (model.Record, bool) {
	return search(t.root, id)
}

func search(n *node, id model.ID) (model.Record, bool) {
	if n == nil {
		return model.Record{}, false
	}

	switch {
	case id == n.rec.ID:
		return n.rec, true
	case id < n.rec.ID:
		return search(n.left, id)
	default:
		return search(n.right, id)
	}
}

// AllSorted returns all records in ascending ID order.
func (t *Tree) AllSorted() []model.Record {
	out := make([]model.Record, 0, t.count)
	return inOrder(t.root, out)
}

func inOrder(n *node, out []model.Record) []model.Record {
	if n == nil {
		return out
	}
	out = inOrder(n.left, out)
	out = append(out, n.rec)
	return inOrder(n.right, out)
}

// Len returns the number of Insert calls since the tree was created.
func (t *Tree) Len() int { return t.count }

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	return height(t.root)
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}
