// Package queue provides an array-backed binary heap of records ordered by priority.
//
// The root always holds a record of the highest priority present. Among equal
// priorities the order depends on the insertion sequence and is not stable.
package queue

import (
	"errors"

	"github.com/hupe1980/reqindex/model"
)

// ErrEmpty is returned by Peek and PopHighest on an empty heap.
var ErrEmpty = errors.New("queue: heap is empty")

// PriorityHeap is a max-heap keyed by record priority.
type PriorityHeap struct {
	items []model.Record
}

// New initializes a new heap with room for capacity records.
func New(capacity int) *PriorityHeap {
	if capacity < 0 {
		capacity = 0
	}
	return &PriorityHeap{
		items: make([]model.Record, 0, capacity),
	}
}

// Len returns the number of records in the heap.
func (pq *PriorityHeap) Len() int { return len(pq.items) }

// Reset clears the heap for reuse.
func (pq *PriorityHeap) Reset() {
	clear(pq.items)
	pq.items = pq.items[:0]
}

// Push inserts a record while maintaining the heap invariant.
func (pq *PriorityHeap) Push(r model.Record) {
	pq.items = append(pq.items, r)
	siftUp(pq.items, len(pq.items)-1)
}

// Peek returns the highest-priority record without removing it.
func (pq *PriorityHeap) Peek() (model.Record, error) {
	if len(pq.items) == 0 {
		return model.Record{}, ErrEmpty
	}
	return pq.items[0], nil
}

// PopHighest removes and returns the highest-priority record.
func (pq *PriorityHeap) PopHighest() (model.Record, error) {
	var err error
	var r model.Record
	pq.items, r, err = pop(pq.items)
	return r, err
}

// AllByPriority returns every record in non-increasing priority order.
// The heap itself is left unchanged.
func (pq *PriorityHeap) AllByPriority() []model.Record {
	work := make([]model.Record, len(pq.items))
	copy(work, pq.items)

	out := make([]model.Record, 0, len(work))
	for len(work) > 0 {
		var r model.Record
		work, r, _ = pop(work)
		out = append(out, r)
	}
	return out
}

func higher(items []model.Record, i, j int) bool {
	return items[i].Priority > items[j].Priority
}

func pop(items []model.Record) ([]model.Record, model.Record, error) {
	n := len(items)
	if n == 0 {
		return items, model.Record{}, ErrEmpty
	}
	root := items[0]
	items[0] = items[n-1]
	items[n-1] = model.Record{} // release references held by the record
	items = items[:n-1]
	if len(items) > 0 {
		siftDown(items, 0)
	}
	return items, root, nil
}

func siftUp(items []model.Record, i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !higher(items, i, p) {
			return
		}
		items[i], items[p] = items[p], items[i]
		i = p
	}
}

func siftDown(items []model.Record, i int) {
	n := len(items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && higher(items, r, l) {
			best = r
		}
		if !higher(items, best, i) {
			return
		}
		items[i], items[best] = items[best], items[i]
		i = best
	}
}
