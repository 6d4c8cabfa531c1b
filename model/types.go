package model

import (
	"fmt"
	"time"
)

// ID is the record identifier. It is the sole ordering and lookup key of every index.
type ID uint32

// Contact holds the reporter's contact details.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Record is a service request snapshot.
//
// Records are owned by the record source. Indexes hold copies and never change
// a record's identity.
type Record struct {
	ID          ID         `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title" validate:"required,max=100"`
	Description string     `json:"description" yaml:"description" validate:"required,max=500"`
	Category    Category   `json:"category" yaml:"category" validate:"category"`
	Location    string     `json:"location" yaml:"location" validate:"required,max=200"`
	Priority    Priority   `json:"priority" yaml:"priority" validate:"priority"`
	Status      Status     `json:"status" yaml:"status" validate:"status"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Contact     Contact    `json:"contact" yaml:"contact"`
}

// String returns a short representation of the record.
func (r Record) String() string {
	return fmt.Sprintf("Record(%d %s %s)", r.ID, r.Priority, r.Category)
}

// Edge is a directed, weighted relationship between two records.
// Lower weight means a stronger relationship.
type Edge struct {
	From   ID      `json:"from"`
	To     ID      `json:"to"`
	Weight float64 `json:"weight"`
	Label  string  `json:"label"`
}

// String returns a string representation of the Edge.
func (e Edge) String() string {
	return fmt.Sprintf("Edge(%d->%d %.1f %q)", e.From, e.To, e.Weight, e.Label)
}

// Stats aggregates counts over the canonical record set and the node counts
// reported by each index.
type Stats struct {
	Generation uint64 `json:"generation"`
	Total      int    `json:"total"`

	ByStatus   map[Status]int   `json:"by_status"`
	ByPriority map[Priority]int `json:"by_priority"`

	KeyIndexNodes      int `json:"key_index_nodes"`
	BalancedIndexNodes int `json:"balanced_index_nodes"`
	HeapSize           int `json:"heap_size"`

	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
}

// Consistent reports whether every index counter matches the snapshot size.
// It is false when the snapshot carried duplicate identifiers, because the tree
// counters count insert calls rather than distinct nodes.
func (s Stats) Consistent() bool {
	return s.KeyIndexNodes == s.Total &&
		s.BalancedIndexNodes == s.Total &&
		s.HeapSize == s.Total
}
