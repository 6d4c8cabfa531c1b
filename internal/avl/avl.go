// Package avl implements a self-balancing AVL tree of records keyed by ID.
//
// Nodes live in a single slice and refer to each other through int32 handles
// instead of pointers. Each child handle has exactly one parent. After every
// insertion each node satisfies |height(left) - height(right)| <= 1, so the tree
// height is bounded by ~1.44*log2(n+2) and Search is O(log n) in the worst case.
package avl

import "github.com/hupe1980/reqindex/model"

type handle int32

const nilHandle handle = -1

type node struct {
	rec    model.Record
	left   handle
	right  handle
	height int32
}

// Tree is an AVL tree. It is not safe for concurrent mutation; concurrent reads
// are safe once building is done.
type Tree struct {
	nodes []node
	root  handle
	count int
}

// New creates an empty tree with room for capacity nodes.
func New(capacity int) *Tree {
	if capacity < 0 {
		capacity = 0
	}
	return &Tree{
		nodes: make([]node, 0, capacity),
		root:  nilHandle,
	}
}

func (t *Tree) heightOf(h handle) int32 {
	if h == nilHandle {
		return 0
	}
	return t.nodes[h].height
}

// balanceOf returns height(left) - height(right).
func (t *Tree) balanceOf(h handle) int32 {
	if h == nilHandle {
		return 0
	}
	return t.heightOf(t.nodes[h].left) - t.heightOf(t.nodes[h].right)
}

func (t *Tree) update(h handle) {
	n := &t.nodes[h]
	n.height = 1 + max(t.heightOf(n.left), t.heightOf(n.right))
}

func (t *Tree) key(h handle) model.ID {
	return t.nodes[h].rec.ID
}

//	    y            x
//	   / \          / \
//	  x   c   =>   a   y
//	 / \              / \
//	a   b            b   c
func (t *Tree) rotateRight(y handle) handle {
	x := t.nodes[y].left
	b := t.nodes[x].right

	t.nodes[x].right = y
	t.nodes[y].left = b

	t.update(y)
	t.update(x)

	return x
}

//	  x                y
//	 / \              / \
//	a   y     =>     x   c
//	   / \          / \
//	  b   c        a   b
func (t *Tree) rotateLeft(x handle) handle {
	y := t.nodes[x].right
	b := t.nodes[y].left

	t.nodes[y].left = x
	t.nodes[x].right = b

	t.update(x)
	t.update(y)

	return y
}

// Insert adds r and rebalances every ancestor of the new node. An existing
// record with the same ID is kept and the tree is left unchanged.
//
// Len counts Insert calls, so it also increments for duplicate IDs.
func (t *Tree) Insert(r model.Record) {
	t.root = t.insert(t.root, r)
	t.count++
}

func (t *Tree) insert(h handle, r model.Record) handle {
	if h == nilHandle {
		t.nodes = append(t.nodes, node{rec: r, left: nilHandle, right: nilHandle, height: 1})
		return handle(len(t.nodes) - 1)
	}

	// t.nodes may grow during the recursive call, so no pointer into it is held here.
	switch k := t.key(h); {
	case r.ID < k:
		child := t.insert(t.nodes[h].left, r)
		t.nodes[h].left = child
	case r.ID > k:
		child := t.insert(t.nodes[h].right, r)
		t.nodes[h].right = child
	default:
		return h
	}

	t.update(h)
	bal := t.balanceOf(h)

	// Left-Left
	if bal > 1 && r.ID < t.key(t.nodes[h].left) {
		return t.rotateRight(h)
	}

	// Right-Right
	if bal < -1 && r.ID > t.key(t.nodes[h].right) {
		return t.rotateLeft(h)
	}

	// Left-Right
	if bal > 1 && r.ID > t.key(t.nodes[h].left) {
		t.nodes[h].left = t.rotateLeft(t.nodes[h].left)
		return t.rotateRight(h)
	}

	// Right-Left
	if bal < -1 && r.ID < t.key(t.nodes[h].right) {
		t.nodes[h].right = t.rotateRight(t.nodes[h].right)
		return t.rotateLeft(h)
	}

	return h
}

// Search returns the record with the given ID.
func (t *Tree) Search(id model.ID) (model.Record, bool) {
	h := t.root
	for h != nilHandle {
		n := &t.nodes[h]
		switch {
		case id == n.rec.ID:
			return n.rec, true
		case id < n.rec.ID:
			h = n.left
		default:
			h = n.right
		}
	}
	return model.Record{}, false
}

// AllSorted returns all records in ascending ID order.
func (t *Tree) AllSorted() []model.Record {
	out := make([]model.Record, 0, len(t.nodes))
	return t.inOrder(t.root, out)
}

func (t *Tree) inOrder(h handle, out []model.Record) []model.Record {
	if h == nilHandle {
		return out
	}
	out = t.inOrder(t.nodes[h].left, out)
	out = append(out, t.nodes[h].rec)
	return t.inOrder(t.nodes[h].right, out)
}

// Len returns the number of Insert calls since the tree was created.
func (t *Tree) Len() int { return t.count }

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int { return int(t.heightOf(t.root)) }

// Balanced reports whether every node satisfies the AVL balance condition and
// carries a correct height.
func (t *Tree) Balanced() bool {
	_, ok := t.check(t.root)
	return ok
}

func (t *Tree) check(h handle) (int32, bool) {
	if h == nilHandle {
		return 0, true
	}
	lh, ok := t.check(t.nodes[h].left)
	if !ok {
		return 0, false
	}
	rh, ok := t.check(t.nodes[h].right)
	if !ok {
		return 0, false
	}
	if d := lh - rh; d > 1 || d < -1 {
		return 0, false
	}
	height := 1 + max(lh, rh)
	return height, height == t.nodes[h].height
}
