package source

import (
	"testing"
	"time"

	"github.com/hupe1980/reqindex/blobstore"
	"github.com/hupe1980/reqindex/codec"
	"github.com/hupe1980/reqindex/internal/compress"
	"github.com/hupe1980/reqindex/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotSource_RoundTrip(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	recs := testutil.NewRNG(3).Records(25, base)
	recs = append(recs, SampleRecords(base)...)

	for _, name := range []string{"records.json", "records.json.zst", "records.json.lz4", "nested/dir/records.json.zst"} {
		for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
			t.Run(name+"/"+c.Name(), func(t *testing.T) {
				store := blobstore.NewMemoryStore()
				require.NoError(t, WriteSnapshot(t.Context(), store, name, recs, c))

				src := NewSnapshotSource(store, name, WithCodec(c))
				got, err := src.Records(t.Context())
				require.NoError(t, err)
				assert.Equal(t, recs, got)
			})
		}
	}
}

func TestSnapshotSource_DetectsCompressionWithoutExtension(t *testing.T) {
	ctx := t.Context()
	store := blobstore.NewMemoryStore()
	recs := SampleRecords(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	raw := codec.MustMarshal(nil, recs)
	packed, err := compress.Compress(raw, compress.ZSTD)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "current", packed))

	got, err := NewSnapshotSource(store, "current").Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, recs, got)
}

func TestSnapshotSource_Errors(t *testing.T) {
	ctx := t.Context()
	store := blobstore.NewMemoryStore()

	t.Run("missing", func(t *testing.T) {
		_, err := NewSnapshotSource(store, "").Records(ctx)
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("garbage", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "bad.json", []byte("{not json")))
		_, err := NewSnapshotSource(store, "bad.json").Records(ctx)
		assert.Error(t, err)
	})

	t.Run("corrupt frame", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "bad.json.zst", []byte("definitely not zstd")))
		_, err := NewSnapshotSource(store, "bad.json.zst").Records(ctx)
		assert.Error(t, err)
	})

	t.Run("empty array", func(t *testing.T) {
		require.NoError(t, WriteSnapshot(ctx, store, "empty.json", nil, nil))
		got, err := NewSnapshotSource(store, "empty.json").Records(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSnapshotSource_Name(t *testing.T) {
	assert.Equal(t, DefaultSnapshotName, NewSnapshotSource(blobstore.NewMemoryStore(), "").Name())
}
