package reqindex

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/reqindex/internal/avl"
	"github.com/hupe1980/reqindex/internal/bst"
	"github.com/hupe1980/reqindex/internal/graph"
	"github.com/hupe1980/reqindex/internal/queue"
	"github.com/hupe1980/reqindex/internal/similarity"
	"github.com/hupe1980/reqindex/model"
	"golang.org/x/sync/errgroup"
)

// rowsPerTask is the number of similarity rows a single worker computes
// before handing back its slot.
const rowsPerTask = 32

// generation is one immutable set of projections over a snapshot.
// It is never modified after it has been published.
type generation struct {
	id         uint64
	keys       *bst.Tree
	balanced   *avl.Tree
	heap       *queue.PriorityHeap
	graph      *graph.Graph
	byStatus   map[model.Status]*roaring.Bitmap
	byPriority map[model.Priority]*roaring.Bitmap
	distinct   int
	duplicates int
}

func newGeneration(capacity int) *generation {
	g := &generation{
		keys:       bst.New(),
		balanced:   avl.New(capacity),
		heap:       queue.New(capacity),
		graph:      graph.New(capacity),
		byStatus:   make(map[model.Status]*roaring.Bitmap, len(model.Statuses)),
		byPriority: make(map[model.Priority]*roaring.Bitmap, len(model.Priorities)),
	}
	for _, s := range model.Statuses {
		g.byStatus[s] = roaring.New()
	}
	for _, p := range model.Priorities {
		g.byPriority[p] = roaring.New()
	}
	return g
}

// pair is an undirected relationship between recs[i] and recs[j], i < j.
type pair struct {
	i, j   int
	weight float64
	label  string
}

// build inserts recs into fresh structures in snapshot order and computes the
// relationship edges.
func (ix *Index) build(ctx context.Context, recs []model.Record) (*generation, error) {
	g := newGeneration(len(recs))

	for _, r := range recs {
		g.keys.Insert(r)
		g.balanced.Insert(r)
		g.heap.Push(r)
		g.graph.AddVertex(r)
	}

	// Aggregates count the record that won each ID.
	for _, r := range g.balanced.AllSorted() {
		if bm, ok := g.byStatus[r.Status]; ok {
			bm.Add(uint32(r.ID))
		}
		if bm, ok := g.byPriority[r.Priority]; ok {
			bm.Add(uint32(r.ID))
		}
		g.distinct++
	}
	g.duplicates = len(recs) - g.distinct

	rows, err := ix.similarityPass(ctx, recs)
	if err != nil {
		return nil, err
	}

	// Merging in row order yields the same adjacency order as a sequential
	// i < j scan.
	for _, row := range rows {
		for _, p := range row {
			from, to := recs[p.i].ID, recs[p.j].ID
			g.graph.AddEdge(from, to, p.weight, p.label)
			g.graph.AddEdge(to, from, p.weight, p.label)
		}
	}

	return g, nil
}

// similarityPass scores every unordered pair of records. Row i holds the
// pairs (i, j) for j > i that are related.
func (ix *Index) similarityPass(ctx context.Context, recs []model.Record) ([][]pair, error) {
	rows := make([][]pair, len(recs))

	if ix.ctrl.Workers() <= 1 || len(recs) <= rowsPerTask {
		for i := range recs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rows[i] = similarRow(recs, i)
		}
		return rows, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)

	var acquireErr error
	for lo := 0; lo < len(recs); lo += rowsPerTask {
		if err := ix.ctrl.AcquireWorker(egCtx); err != nil {
			acquireErr = err
			break
		}

		hi := min(lo+rowsPerTask, len(recs))
		eg.Go(func() error {
			defer ix.ctrl.ReleaseWorker()
			for i := lo; i < hi; i++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				rows[i] = similarRow(recs, i)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if acquireErr != nil {
		return nil, acquireErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func similarRow(recs []model.Record, i int) []pair {
	a := recs[i]

	var row []pair
	for j := i + 1; j < len(recs); j++ {
		b := recs[j]
		// Records sharing an ID would produce a self-loop.
		if a.ID == b.ID {
			continue
		}
		w := similarity.Weight(a, b)
		if !similarity.Related(w) {
			continue
		}
		row = append(row, pair{i: i, j: j, weight: w, label: similarity.Label(a, b)})
	}
	return row
}
