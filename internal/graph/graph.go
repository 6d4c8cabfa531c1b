// Package graph implements a weighted relationship graph over service requests.
//
// Vertices are record IDs; each vertex owns an adjacency list of outgoing
// edges. An undirected relationship is stored as two directed edges with the
// same weight and label; the caller adds both directions.
//
// The graph is not safe for concurrent mutation. Once built, all read methods
// may be called concurrently.
package graph

import (
	"cmp"
	"slices"

	"github.com/hupe1980/reqindex/internal/unionfind"
	"github.com/hupe1980/reqindex/internal/visited"
	"github.com/hupe1980/reqindex/model"
)

// Graph is an adjacency-list graph keyed by record ID.
type Graph struct {
	records map[model.ID]model.Record
	adj     map[model.ID][]model.Edge
	order   []model.ID // sources in first-seen order
	edges   int
}

// New creates an empty graph with room for capacity vertices.
func New(capacity int) *Graph {
	return &Graph{
		records: make(map[model.ID]model.Record, capacity),
		adj:     make(map[model.ID][]model.Edge, capacity),
	}
}

// AddVertex registers r. Registering an ID twice keeps the first record.
func (g *Graph) AddVertex(r model.Record) {
	if _, ok := g.records[r.ID]; ok {
		return
	}
	g.records[r.ID] = r
	g.touch(r.ID)
}

func (g *Graph) touch(id model.ID) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = nil
		g.order = append(g.order, id)
	}
}

// AddEdge appends a directed edge to from's adjacency list.
func (g *Graph) AddEdge(from, to model.ID, weight float64, label string) {
	g.touch(from)
	g.adj[from] = append(g.adj[from], model.Edge{From: from, To: to, Weight: weight, Label: label})
	g.edges++
}

// Vertex returns the record registered under id.
func (g *Graph) Vertex(id model.ID) (model.Record, bool) {
	r, ok := g.records[id]
	return r, ok
}

// VertexCount returns the number of registered vertices.
func (g *Graph) VertexCount() int { return len(g.records) }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.edges }

// EdgesOf returns a copy of the outgoing edges of id, or nil if id is unknown.
func (g *Graph) EdgesOf(id model.ID) []model.Edge {
	return slices.Clone(g.adj[id])
}

// Edges returns every directed edge in discovery order: grouped by source
// vertex in the order the source was first seen, and in insertion order
// within a group.
func (g *Graph) Edges() []model.Edge {
	out := make([]model.Edge, 0, g.edges)
	for _, id := range g.order {
		out = append(out, g.adj[id]...)
	}
	return out
}

// Related returns up to maxResults neighbours of id ordered by ascending edge
// weight. Ties keep adjacency order. Neighbours that are not registered
// vertices are skipped.
func (g *Graph) Related(id model.ID, maxResults int) []model.Record {
	if maxResults <= 0 {
		return nil
	}

	edges := slices.Clone(g.adj[id])
	slices.SortStableFunc(edges, byWeight)

	out := make([]model.Record, 0, min(maxResults, len(edges)))
	for _, e := range edges {
		if len(out) == maxResults {
			break
		}
		if r, ok := g.records[e.To]; ok {
			out = append(out, r)
		}
	}
	return out
}

func byWeight(a, b model.Edge) int {
	return cmp.Compare(a.Weight, b.Weight)
}

// BFS returns the records reachable from start in breadth-first order,
// starting with start itself. IDs that are reachable through edges but not
// registered as vertices are traversed but not returned.
func (g *Graph) BFS(start model.ID) []model.Record {
	if _, ok := g.adj[start]; !ok {
		return nil
	}

	seen := visited.Get()
	defer visited.Put(seen)

	var out []model.Record
	queue := []model.ID{start}
	seen.Visit(start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if r, ok := g.records[cur]; ok {
			out = append(out, r)
		}
		for _, e := range g.adj[cur] {
			if seen.Visit(e.To) {
				queue = append(queue, e.To)
			}
		}
	}
	return out
}

// DFS returns the records reachable from start in depth-first pre-order,
// following edges in adjacency order.
func (g *Graph) DFS(start model.ID) []model.Record {
	if _, ok := g.adj[start]; !ok {
		return nil
	}

	seen := visited.Get()
	defer visited.Put(seen)

	var out []model.Record
	g.dfs(start, seen, &out)
	return out
}

func (g *Graph) dfs(cur model.ID, seen *visited.Set, out *[]model.Record) {
	seen.Visit(cur)
	if r, ok := g.records[cur]; ok {
		*out = append(*out, r)
	}
	for _, e := range g.adj[cur] {
		if !seen.Visited(e.To) {
			g.dfs(e.To, seen, out)
		}
	}
}

// MinimumSpanningForest runs Kruskal's algorithm over all directed edges and
// returns the chosen edges in ascending weight order. The result is a spanning
// tree per connected component; edges of equal weight are considered in
// discovery order (see Edges). Edges touching unregistered vertices are ignored.
//
// Both directions of an undirected relationship are present; once the first
// direction joins the two sets the second one is discarded.
func (g *Graph) MinimumSpanningForest() []model.Edge {
	edges := g.Edges()
	slices.SortStableFunc(edges, byWeight)

	sets := unionfind.New[model.ID](len(g.records))
	for id := range g.records {
		sets.MakeSet(id)
	}

	var forest []model.Edge
	for _, e := range edges {
		if !sets.Contains(e.From) || !sets.Contains(e.To) {
			continue
		}
		if sets.Union(e.From, e.To) {
			forest = append(forest, e)
			if len(forest) == len(g.records)-1 {
				break
			}
		}
	}
	return forest
}
