package blobstore

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps blobs in a map. It is safe for concurrent use and is
// mostly useful in tests and for seeding an index without touching disk.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ BlobStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

// Open returns a reader over the stored bytes.
func (s *MemoryStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.blobs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	// Put always stores a fresh slice, so data is never written again.
	return memBlob{r: bytes.NewReader(data)}, nil
}

// Put stores a copy of data, replacing any previous blob.
func (s *MemoryStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cp := slices.Clone(data)
	if cp == nil {
		cp = []byte{}
	}

	s.mu.Lock()
	s.blobs[name] = cp
	s.mu.Unlock()
	return nil
}

// Delete removes the blob if present.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.blobs, name)
	s.mu.Unlock()
	return nil
}

// List returns the sorted names starting with prefix.
func (s *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	names := make([]string, 0, len(s.blobs))
	for name := range s.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	s.mu.RUnlock()

	slices.Sort(names)
	return names, nil
}

type memBlob struct {
	r *bytes.Reader
}

func (b memBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return b.r.ReadAt(p, off)
}

func (b memBlob) Size() int64 { return b.r.Size() }

func (b memBlob) Close() error { return nil }
