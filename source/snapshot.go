package source

import (
	"context"
	"fmt"

	"github.com/hupe1980/reqindex/blobstore"
	"github.com/hupe1980/reqindex/codec"
	"github.com/hupe1980/reqindex/internal/compress"
	"github.com/hupe1980/reqindex/model"
)

// DefaultSnapshotName is the blob name used when none is configured.
const DefaultSnapshotName = "records.json"

// SnapshotSource reads a JSON array of records from a single blob.
//
// The blob may be zstd or lz4 compressed. The format is taken from the
// name's extension and, for names without one, from the frame magic.
type SnapshotSource struct {
	store blobstore.BlobStore
	name  string
	codec codec.Codec
}

// SnapshotOption configures a SnapshotSource.
type SnapshotOption func(*SnapshotSource)

// WithCodec sets the codec used to decode the snapshot. The default is codec.Default.
func WithCodec(c codec.Codec) SnapshotOption {
	return func(s *SnapshotSource) {
		if c != nil {
			s.codec = c
		}
	}
}

// NewSnapshotSource creates a source that reads name from store.
func NewSnapshotSource(store blobstore.BlobStore, name string, opts ...SnapshotOption) *SnapshotSource {
	if name == "" {
		name = DefaultSnapshotName
	}
	s := &SnapshotSource{
		store: store,
		name:  name,
		codec: codec.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the blob name the source reads.
func (s *SnapshotSource) Name() string { return s.name }

// Records reads, decompresses and decodes the snapshot.
func (s *SnapshotSource) Records(ctx context.Context) ([]model.Record, error) {
	data, err := blobstore.Get(ctx, s.store, s.name)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", s.name, err)
	}

	t := compress.FromName(s.name)
	if t == compress.None {
		t = compress.Detect(data)
	}
	if t != compress.None {
		data, err = compress.Decompress(data, t)
		if err != nil {
			return nil, fmt.Errorf("decompress snapshot %q (%s): %w", s.name, t, err)
		}
	}

	var recs []model.Record
	if err := s.codec.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode snapshot %q (%s): %w", s.name, s.codec.Name(), err)
	}
	if recs == nil {
		recs = []model.Record{}
	}
	return recs, nil
}

// WriteSnapshot encodes recs with c and stores them under name, compressed
// according to the name's extension.
func WriteSnapshot(ctx context.Context, store blobstore.BlobStore, name string, recs []model.Record, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	if recs == nil {
		recs = []model.Record{}
	}

	data, err := c.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", name, err)
	}

	if t := compress.FromName(name); t != compress.None {
		data, err = compress.Compress(data, t)
		if err != nil {
			return fmt.Errorf("compress snapshot %q (%s): %w", name, t, err)
		}
	}

	return store.Put(ctx, name, data)
}
