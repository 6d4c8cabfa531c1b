package model

import (
	"fmt"
	"strings"
)

// Priority is the ordinal urgency of a record. Higher values are more urgent.
type Priority uint8

const (
	PriorityLow      Priority = 1
	PriorityMedium   Priority = 2
	PriorityHigh     Priority = 3
	PriorityCritical Priority = 4
)

// Priorities lists all priorities in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	default:
		return fmt.Sprintf("Priority(%d)", uint8(p))
	}
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

// ParsePriority parses a priority name (case-insensitive).
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Category classifies a service request.
type Category uint8

const (
	CategoryWaterAndSanitation Category = iota
	CategoryRoadsAndTransport
	CategoryElectricityAndPower
	CategoryWasteManagement
	CategoryPublicSafety
	CategoryParksAndRecreation
	CategoryHousing
	CategoryBusinessLicensing
	CategoryOther
)

var categoryNames = [...]string{
	"WaterAndSanitation",
	"RoadsAndTransport",
	"ElectricityAndPower",
	"WasteManagement",
	"PublicSafety",
	"ParksAndRecreation",
	"Housing",
	"BusinessLicensing",
	"Other",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return int(c) < len(categoryNames)
}

// ParseCategory parses a category name (case-insensitive).
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(s, name) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Status is the processing state of a service request.
type Status uint8

const (
	StatusSubmitted Status = iota
	StatusInReview
	StatusInProgress
	StatusResolved
	StatusClosed
)

// Statuses lists all statuses in workflow order.
var Statuses = []Status{StatusSubmitted, StatusInReview, StatusInProgress, StatusResolved, StatusClosed}

var statusNames = [...]string{"Submitted", "InReview", "InProgress", "Resolved", "Closed"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return int(s) < len(statusNames)
}

// ParseStatus parses a status name (case-insensitive).
func ParseStatus(s string) (Status, error) {
	for i, name := range statusNames {
		if strings.EqualFold(s, name) {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
