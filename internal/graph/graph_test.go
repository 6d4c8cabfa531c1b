package graph

import (
	"math"
	"testing"

	"github.com/hupe1980/reqindex/internal/unionfind"
	"github.com/hupe1980/reqindex/model"
	"github.com/hupe1980/reqindex/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type undirected struct {
	a, b   model.ID
	weight float64
}

func build(n int, edges []undirected) *Graph {
	g := New(n)
	for i := 1; i <= n; i++ {
		g.AddVertex(model.Record{ID: model.ID(i)})
	}
	for _, e := range edges {
		g.AddEdge(e.a, e.b, e.weight, "Related")
		g.AddEdge(e.b, e.a, e.weight, "Related")
	}
	return g
}

func totalWeight(edges []model.Edge) float64 {
	var sum float64
	for _, e := range edges {
		sum += e.Weight
	}
	return sum
}

// bruteForceMST enumerates every subset of n-1 undirected edges and returns the
// minimum weight of those that span all n vertices.
func bruteForceMST(n int, edges []undirected) (float64, bool) {
	best := math.Inf(1)
	found := false
	m := len(edges)
	for mask := 0; mask < 1<<m; mask++ {
		if popcount(mask) != n-1 {
			continue
		}
		sets := unionfind.New[model.ID](n)
		for i := 1; i <= n; i++ {
			sets.MakeSet(model.ID(i))
		}
		var w float64
		acyclic := true
		for i := 0; i < m; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			if !sets.Union(edges[i].a, edges[i].b) {
				acyclic = false
				break
			}
			w += edges[i].weight
		}
		if acyclic && sets.Sets() == 1 && w < best {
			best = w
			found = true
		}
	}
	return best, found
}

func popcount(x int) int {
	c := 0
	for ; x != 0; x &= x - 1 {
		c++
	}
	return c
}

func TestGraph_AddVertexIdempotent(t *testing.T) {
	g := New(0)
	g.AddVertex(model.Record{ID: 1, Title: "first"})
	g.AddVertex(model.Record{ID: 1, Title: "second"})

	r, ok := g.Vertex(1)
	require.True(t, ok)
	assert.Equal(t, "first", r.Title)
	assert.Equal(t, 1, g.VertexCount())
}

func TestGraph_EdgesOf(t *testing.T) {
	g := build(3, []undirected{{1, 2, 4}, {1, 3, 2}})

	edges := g.EdgesOf(1)
	require.Len(t, edges, 2)
	assert.Equal(t, model.Edge{From: 1, To: 2, Weight: 4, Label: "Related"}, edges[0])
	assert.Equal(t, 4, g.EdgeCount())

	assert.Empty(t, g.EdgesOf(99))

	// callers get a copy
	edges[0].Weight = 100
	assert.Equal(t, 4.0, g.EdgesOf(1)[0].Weight)
}

func TestGraph_Related(t *testing.T) {
	g := build(5, []undirected{{1, 2, 6}, {1, 3, 2}, {1, 4, 9}, {1, 5, 2}})

	got := g.Related(1, 2)
	require.Len(t, got, 2)
	assert.Equal(t, []model.ID{3, 5}, testutil.IDs(got), "ascending weight, ties in adjacency order")

	all := g.Related(1, 5)
	assert.Equal(t, []model.ID{3, 5, 2, 4}, testutil.IDs(all))

	assert.Empty(t, g.Related(1, 0))
	assert.Empty(t, g.Related(42, 5))
}

func TestGraph_RelatedNeverExceedsLimit(t *testing.T) {
	rng := testutil.NewRNG(3)
	var edges []undirected
	for i := 2; i <= 20; i++ {
		edges = append(edges, undirected{1, model.ID(i), float64(1 + rng.Intn(9))})
	}
	g := build(20, edges)

	for _, n := range []int{1, 2, 5, 19, 50} {
		got := g.Related(1, n)
		assert.LessOrEqual(t, len(got), n)

		var prev float64
		for i, r := range got {
			w := weightOf(t, g, 1, r.ID)
			if i > 0 {
				assert.LessOrEqual(t, prev, w)
			}
			prev = w
		}
	}
}

func weightOf(t *testing.T, g *Graph, from, to model.ID) float64 {
	t.Helper()
	for _, e := range g.EdgesOf(from) {
		if e.To == to {
			return e.Weight
		}
	}
	t.Fatalf("no edge %d->%d", from, to)
	return 0
}

func TestGraph_Traversal(t *testing.T) {
	//   1 - 2 - 4
	//   |       |
	//   3       5     6 (isolated)
	g := build(6, []undirected{{1, 2, 1}, {1, 3, 1}, {2, 4, 1}, {4, 5, 1}})

	assert.Equal(t, []model.ID{1, 2, 3, 4, 5}, testutil.IDs(g.BFS(1)))
	assert.Equal(t, []model.ID{1, 2, 4, 5, 3}, testutil.IDs(g.DFS(1)))
	assert.Equal(t, []model.ID{6}, testutil.IDs(g.BFS(6)))
	assert.Equal(t, []model.ID{6}, testutil.IDs(g.DFS(6)))

	assert.Empty(t, g.BFS(99))
	assert.Empty(t, g.DFS(99))
}

func TestGraph_TraversalSkipsUnregisteredTargets(t *testing.T) {
	g := New(0)
	g.AddVertex(model.Record{ID: 1})
	g.AddVertex(model.Record{ID: 3})
	g.AddEdge(1, 2, 1, "Related") // 2 is not a vertex
	g.AddEdge(2, 3, 1, "Related")

	assert.Equal(t, []model.ID{1, 3}, testutil.IDs(g.BFS(1)))
	assert.Equal(t, []model.ID{1, 3}, testutil.IDs(g.DFS(1)))
}

func TestGraph_MinimumSpanningForest(t *testing.T) {
	t.Run("hand built", func(t *testing.T) {
		edges := []undirected{
			{1, 2, 4}, {1, 3, 1}, {2, 3, 2}, {2, 4, 5}, {3, 4, 8}, {4, 5, 3},
		}
		g := build(5, edges)

		forest := g.MinimumSpanningForest()
		require.Len(t, forest, 4)
		assert.Equal(t, 11.0, totalWeight(forest))

		for i := 1; i < len(forest); i++ {
			assert.LessOrEqual(t, forest[i-1].Weight, forest[i].Weight)
		}
	})

	t.Run("disconnected", func(t *testing.T) {
		g := build(6, []undirected{{1, 2, 3}, {2, 3, 1}, {1, 3, 2}, {4, 5, 7}})

		forest := g.MinimumSpanningForest()
		// components {1,2,3}, {4,5}, {6}: 6 - 3 edges
		require.Len(t, forest, 3)
		assert.Equal(t, 10.0, totalWeight(forest))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, New(0).MinimumSpanningForest())
		assert.Empty(t, build(3, nil).MinimumSpanningForest())
	})

	t.Run("ignores dangling edges", func(t *testing.T) {
		g := build(2, []undirected{{1, 2, 5}})
		g.AddEdge(1, 77, 1, "Related")
		forest := g.MinimumSpanningForest()
		require.Len(t, forest, 1)
		assert.Equal(t, model.ID(2), forest[0].To)
	})
}

func TestGraph_MinimumSpanningForestIsMinimal(t *testing.T) {
	rng := testutil.NewRNG(99)

	for round := 0; round < 40; round++ {
		n := 2 + rng.Intn(5) // 2..6 vertices

		// Start from a random spanning path so the graph is connected, then
		// add random extra edges. Integer weights force ties.
		perm := rng.Perm(n)
		var edges []undirected
		present := map[[2]model.ID]bool{}
		add := func(a, b model.ID) {
			if a == b {
				return
			}
			if a > b {
				a, b = b, a
			}
			if present[[2]model.ID{a, b}] {
				return
			}
			present[[2]model.ID{a, b}] = true
			edges = append(edges, undirected{a, b, float64(1 + rng.Intn(9))})
		}
		for i := 1; i < n; i++ {
			add(model.ID(perm[i-1]+1), model.ID(perm[i]+1))
		}
		for extra := rng.Intn(n * 2); extra > 0; extra-- {
			add(model.ID(rng.Intn(n)+1), model.ID(rng.Intn(n)+1))
		}

		g := build(n, edges)
		forest := g.MinimumSpanningForest()

		want, ok := bruteForceMST(n, edges)
		require.True(t, ok)
		require.Len(t, forest, n-1, "round %d", round)
		assert.InDelta(t, want, totalWeight(forest), 1e-9, "round %d", round)
	}
}
