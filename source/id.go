package source

import (
	"sync/atomic"

	"github.com/hupe1980/reqindex/model"
)

// IDGenerator hands out record identifiers.
// Implementations must be safe for concurrent use.
type IDGenerator interface {
	NextID() model.ID
}

// Sequence is a monotonically increasing IDGenerator.
type Sequence struct {
	next atomic.Uint32
}

// NewSequence returns a Sequence whose first identifier is start.
func NewSequence(start model.ID) *Sequence {
	s := &Sequence{}
	s.next.Store(uint32(start))
	return s
}

// NextID returns the next identifier.
func (s *Sequence) NextID() model.ID {
	return model.ID(s.next.Add(1) - 1)
}
