package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for reading and writing named blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put writes a blob atomically, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes starting at off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// ReadAll reads the complete content of b.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	size := b.Size()
	if size == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, size)
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == size) {
		return nil, err
	}
	if int64(n) != size {
		return nil, fmt.Errorf("blobstore: short read: got %d of %d bytes", n, size)
	}
	return buf, nil
}

// Get opens name in s and returns its complete content.
func Get(ctx context.Context, s BlobStore, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	return ReadAll(ctx, b)
}
