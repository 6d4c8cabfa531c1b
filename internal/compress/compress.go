// Package compress wraps the snapshot compression formats.
//
// Snapshots are compressed as whole frames in the standard zstd and lz4 frame
// formats, so files produced by the zstd and lz4 command line tools can be read
// directly.
package compress

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None indicates no compression.
	None Type = 0
	// LZ4 indicates an LZ4 frame (fast).
	LZ4 Type = 1
	// ZSTD indicates a zstd frame (better ratio).
	ZSTD Type = 2
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType parses a compression name as used in configuration files.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("unknown compression %q", s)
	}
}

// FromName derives the compression type from a file name extension.
func FromName(name string) Type {
	switch strings.ToLower(path.Ext(name)) {
	case ".lz4":
		return LZ4
	case ".zst", ".zstd":
		return ZSTD
	default:
		return None
	}
}

// Extension returns the conventional file extension for t, including the dot.
func (t Type) Extension() string {
	switch t {
	case LZ4:
		return ".lz4"
	case ZSTD:
		return ".zst"
	default:
		return ""
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect returns the compression type indicated by the frame magic of data.
func Detect(data []byte) Type {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return ZSTD
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Compress encodes data as a single frame of type t.
func Compress(data []byte, t Type) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case ZSTD:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("compress: unsupported type %s", t)
	}
}

// Decompress decodes a frame of type t.
func Decompress(data []byte, t Type) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		return out, nil
	case LZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("compress: unsupported type %s", t)
	}
}
