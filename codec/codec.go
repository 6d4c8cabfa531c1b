// Package codec centralizes record snapshot and output encoding.
//
// Snapshot files are decoded with the codec named by the caller (or Default).
// Both built-in codecs produce plain JSON, so a snapshot written by one can be
// read by the other.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Indenter is implemented by codecs that can produce human-readable output.
type Indenter interface {
	MarshalIndent(v any, prefix, indent string) ([]byte, error)
}

// ByName returns a built-in codec by its stable name.
// The empty name selects Default.
func ByName(name string) (Codec, bool) {
	switch name {
	case "":
		return Default, true
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Pretty encodes v indented with two spaces when c supports it, and compact otherwise.
func Pretty(c Codec, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	if in, ok := c.(Indenter); ok {
		return in.MarshalIndent(v, "", "  ")
	}
	return c.Marshal(v)
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
