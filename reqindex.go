package reqindex

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/reqindex/internal/resource"
	"github.com/hupe1980/reqindex/model"
	"github.com/hupe1980/reqindex/source"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hupe1980/reqindex"

// TraverseMode selects the graph traversal order used by Traverse.
type TraverseMode uint8

const (
	// TraverseBFS visits records in breadth-first order.
	TraverseBFS TraverseMode = iota
	// TraverseDFS visits records in depth-first order.
	TraverseDFS
)

func (m TraverseMode) String() string {
	switch m {
	case TraverseBFS:
		return "bfs"
	case TraverseDFS:
		return "dfs"
	default:
		return fmt.Sprintf("TraverseMode(%d)", uint8(m))
	}
}

// Index keeps a key index, a balanced key index, a priority heap and a
// relationship graph over one snapshot of records.
//
// All four structures are rebuilt together from the record source and
// published atomically, so a query never observes a partially built state.
// Index is safe for concurrent use.
type Index struct {
	src    source.RecordSource
	opts   options
	logger *Logger
	ctrl   *resource.Controller
	tracer trace.Tracer

	// rebuildMu serializes rebuilds; mu guards cur.
	rebuildMu sync.Mutex
	mu        sync.RWMutex
	cur       *generation
}

// New creates an Index over src and performs the first rebuild.
func New(ctx context.Context, src source.RecordSource, optFns ...Option) (*Index, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	opts := applyOptions(optFns)

	ix := &Index{
		src:    src,
		opts:   opts,
		logger: opts.logger.WithComponent("index"),
		ctrl: resource.NewController(resource.Config{
			MaxWorkers:         int64(opts.workers),
			MinRebuildInterval: opts.minRebuildInterval,
		}),
		tracer: opts.tracerProvider.Tracer(tracerName),
		cur:    newGeneration(0),
	}

	if err := ix.Rebuild(ctx); err != nil {
		return nil, err
	}
	return ix, nil
}

func (ix *Index) current() *generation {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.cur
}

// Generation returns the number of completed rebuilds.
func (ix *Index) Generation() uint64 {
	return ix.current().id
}

// Rebuild fetches a complete snapshot from the record source and replaces
// every structure with a fresh projection of it.
//
// The snapshot is fetched and the new structures are built before anything
// visible changes. If fetching or building fails, or ctx is done before the
// swap, the previous generation stays in place and a *RebuildError is returned.
func (ix *Index) Rebuild(ctx context.Context) error {
	ix.rebuildMu.Lock()
	defer ix.rebuildMu.Unlock()

	ctx, span := ix.tracer.Start(ctx, "reqindex.Rebuild")
	defer span.End()

	start := time.Now()

	if err := ix.ctrl.WaitRebuild(ctx); err != nil {
		return ix.rebuildFailed(ctx, span, start, err)
	}

	recs, err := ix.fetch(ctx)
	if err != nil {
		return ix.rebuildFailed(ctx, span, start, err)
	}

	next, err := ix.buildTraced(ctx, recs)
	if err != nil {
		return ix.rebuildFailed(ctx, span, start, err)
	}

	ix.mu.Lock()
	if err := ctx.Err(); err != nil {
		ix.mu.Unlock()
		return ix.rebuildFailed(ctx, span, start, err)
	}
	next.id = ix.cur.id + 1
	ix.cur = next
	ix.mu.Unlock()

	duration := time.Since(start)
	edges := next.graph.EdgeCount()

	span.SetAttributes(
		attribute.Int64("reqindex.generation", int64(next.id)),
		attribute.Int("reqindex.records", len(recs)),
		attribute.Int("reqindex.edges", edges),
	)

	ix.logger.LogRebuild(ctx, next.id, len(recs), edges, duration, nil)
	ix.logger.LogDuplicates(ctx, next.id, next.duplicates)
	ix.opts.metricsCollector.RecordRebuild(len(recs), edges, duration, nil)

	return nil
}

func (ix *Index) fetch(ctx context.Context) ([]model.Record, error) {
	ctx, span := ix.tracer.Start(ctx, "reqindex.FetchRecords")
	defer span.End()

	recs, err := ix.src.Records(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	span.SetAttributes(attribute.Int("reqindex.records", len(recs)))
	return recs, nil
}

func (ix *Index) buildTraced(ctx context.Context, recs []model.Record) (*generation, error) {
	ctx, span := ix.tracer.Start(ctx, "reqindex.Build",
		trace.WithAttributes(
			attribute.Int("reqindex.records", len(recs)),
			attribute.Int("reqindex.workers", ix.ctrl.Workers()),
		),
	)
	defer span.End()

	g, err := ix.build(ctx, recs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return g, nil
}

func (ix *Index) rebuildFailed(ctx context.Context, span trace.Span, start time.Time, cause error) error {
	duration := time.Since(start)
	err := &RebuildError{Generation: ix.Generation(), Cause: cause}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	ix.logger.LogRebuild(ctx, err.Generation, 0, 0, duration, cause)
	ix.opts.metricsCollector.RecordRebuild(0, 0, duration, cause)

	return err
}

func (ix *Index) observe(op string, start time.Time, results int) {
	ix.opts.metricsCollector.RecordQuery(op, time.Since(start))
	ix.logger.LogQuery(context.Background(), op, results)
}

// GetByID returns the record with the given ID. The key index is consulted
// first and the balanced key index serves as a fallback.
func (ix *Index) GetByID(id model.ID) (model.Record, bool) {
	start := time.Now()
	g := ix.current()

	r, ok := g.keys.Search(id)
	if !ok {
		r, ok = g.balanced.Search(id)
	}

	ix.opts.metricsCollector.RecordLookup(ok, time.Since(start))
	ix.logger.LogLookup(context.Background(), id, ok)
	return r, ok
}

// AllSorted returns every distinct record in ascending ID order.
func (ix *Index) AllSorted() []model.Record {
	start := time.Now()
	out := ix.current().keys.AllSorted()
	ix.observe("all_sorted", start, len(out))
	return out
}

// AllByPriority returns every record in the snapshot in non-increasing
// priority order. The order among equal priorities is unspecified.
func (ix *Index) AllByPriority() []model.Record {
	start := time.Now()
	out := ix.current().heap.AllByPriority()
	ix.observe("all_by_priority", start, len(out))
	return out
}

// HighestPriority returns a record of the highest priority present.
// It returns an error wrapping ErrEmptyCollection when the index is empty.
func (ix *Index) HighestPriority() (model.Record, error) {
	r, err := ix.current().heap.Peek()
	if err != nil {
		return model.Record{}, fmt.Errorf("highest priority: %w", err)
	}
	return r, nil
}

// Related returns the strongest related records of id, up to the limit set
// with WithMaxRelated.
func (ix *Index) Related(id model.ID) []model.Record {
	return ix.RelatedN(id, ix.opts.maxRelated)
}

// RelatedN returns up to n related records of id in ascending weight order.
func (ix *Index) RelatedN(id model.ID, n int) []model.Record {
	start := time.Now()
	out := ix.current().graph.Related(id, n)
	ix.observe("related", start, len(out))
	return out
}

// RelationshipsOf returns the outgoing edges of id in discovery order.
func (ix *Index) RelationshipsOf(id model.ID) []model.Edge {
	start := time.Now()
	out := ix.current().graph.EdgesOf(id)
	ix.observe("relationships", start, len(out))
	return out
}

// MinimumSpanningForest returns a minimum spanning forest of the relationship
// graph as one directed edge per tree edge.
func (ix *Index) MinimumSpanningForest() []model.Edge {
	start := time.Now()
	out := ix.current().graph.MinimumSpanningForest()
	ix.observe("mst", start, len(out))
	return out
}

// Traverse returns the records reachable from id through relationships, in
// the order given by mode, starting with id itself. It returns nil if id is
// not indexed.
func (ix *Index) Traverse(id model.ID, mode TraverseMode) []model.Record {
	start := time.Now()
	g := ix.current().graph

	var out []model.Record
	switch mode {
	case TraverseDFS:
		out = g.DFS(id)
	default:
		out = g.BFS(id)
	}

	ix.observe("traverse_"+mode.String(), start, len(out))
	return out
}

// RecordsByStatus returns the distinct records with status s in ascending ID order.
func (ix *Index) RecordsByStatus(s model.Status) []model.Record {
	start := time.Now()
	g := ix.current()

	bm, ok := g.byStatus[s]
	if !ok {
		return nil
	}

	out := make([]model.Record, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		if r, ok := g.balanced.Search(model.ID(it.Next())); ok {
			out = append(out, r)
		}
	}

	ix.observe("by_status", start, len(out))
	return out
}

// Statistics returns aggregate counts over the current snapshot together
// with the node count reported by each structure.
func (ix *Index) Statistics() model.Stats {
	g := ix.current()

	st := model.Stats{
		Generation:         g.id,
		Total:              g.distinct,
		ByStatus:           make(map[model.Status]int, len(g.byStatus)),
		ByPriority:         make(map[model.Priority]int, len(g.byPriority)),
		KeyIndexNodes:      g.keys.Len(),
		BalancedIndexNodes: g.balanced.Len(),
		HeapSize:           g.heap.Len(),
		Vertices:           g.graph.VertexCount(),
		Edges:              g.graph.EdgeCount(),
	}
	for s, bm := range g.byStatus {
		st.ByStatus[s] = int(bm.GetCardinality())
	}
	for p, bm := range g.byPriority {
		st.ByPriority[p] = int(bm.GetCardinality())
	}
	return st
}
