package bst

import (
	"testing"

	"github.com/hupe1980/reqindex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id model.ID) model.Record {
	return model.Record{ID: id, Priority: model.PriorityMedium, Location: "loc"}
}

func ids(recs []model.Record) []model.ID {
	out := make([]model.ID, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestTree_InsertSearch(t *testing.T) {
	tree := New()
	for _, id := range []model.ID{50, 30, 70, 20, 40, 60, 80} {
		tree.Insert(rec(id))
	}

	t.Run("hit", func(t *testing.T) {
		r, ok := tree.Search(40)
		require.True(t, ok)
		assert.Equal(t, model.ID(40), r.ID)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := tree.Search(45)
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := New().Search(1)
		assert.False(t, ok)
		assert.Empty(t, New().AllSorted())
	})

	assert.Equal(t, []model.ID{20, 30, 40, 50, 60, 70, 80}, ids(tree.AllSorted()))
	assert.Equal(t, 3, tree.Height())
}

func TestTree_DuplicateKeepsFirst(t *testing.T) {
	tree := New()
	first := rec(5)
	first.Title = "first"
	second := rec(5)
	second.Title = "second"

	tree.Insert(first)
	tree.Insert(second)

	got, ok := tree.Search(5)
	require.True(t, ok)
	assert.Equal(t, "first", got.Title)
	assert.Len(t, tree.AllSorted(), 1)
	// Len counts insert calls, not distinct nodes.
	assert.Equal(t, 2, tree.Len())
}

func TestTree_SortedInputDegenerates(t *testing.T) {
	tree := New()
	const n = 64
	for i := 0; i < n; i++ {
		tree.Insert(rec(model.ID(i)))
	}

	assert.Equal(t, n, tree.Height())
	assert.Equal(t, n, tree.Len())

	r, ok := tree.Search(n - 1)
	require.True(t, ok)
	assert.Equal(t, model.ID(n-1), r.ID)
}
