package reqindex_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/reqindex"
	"github.com/hupe1980/reqindex/model"
	"github.com/hupe1980/reqindex/source"
)

// Example shows how two requests on the same road relate.
func Example() {
	ctx := context.Background()
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	src := source.Static([]model.Record{
		{ID: 1, Title: "Streetlight out", Category: model.CategoryPublicSafety, Location: "Main Road", Priority: model.PriorityHigh, CreatedAt: t0},
		{ID: 2, Title: "Second streetlight out", Category: model.CategoryPublicSafety, Location: "Main Road & Oak", Priority: model.PriorityHigh, CreatedAt: t0.Add(time.Hour)},
	})

	idx, err := reqindex.New(ctx, src)
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range idx.RelationshipsOf(1) {
		fmt.Println(e)
	}
	// Output: Edge(1->2 1.0 "Same Area & Category")
}

// Example_sampleData builds an index over the demonstration data set.
func Example_sampleData() {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	src := source.NewMemorySource()
	if err := src.Load(ctx, source.SampleRecords(now)...); err != nil {
		log.Fatal(err)
	}

	idx, err := reqindex.New(ctx, src, reqindex.WithMaxRelated(3))
	if err != nil {
		log.Fatal(err)
	}

	r, _ := idx.GetByID(1)
	fmt.Println(r.Title)
	for _, rel := range idx.Related(1) {
		fmt.Printf("  %d %s\n", rel.ID, rel.Title)
	}

	st := idx.Statistics()
	fmt.Println(st.Total, st.Consistent())
	// Output:
	// Broken streetlight on Main Road
	//   8 Blocked storm drain causing flooding
	//   5 Power outage in neighborhood
	//   7 Broken traffic light at busy intersection
	// 10 true
}

// Example_generation shows how callers detect that an index changed.
func Example_generation() {
	ctx := context.Background()
	src := source.NewMemorySource()

	idx, err := reqindex.New(ctx, src)
	if err != nil {
		log.Fatal(err)
	}
	gen := idx.Generation()

	_, err = src.Append(ctx, model.Record{
		Title:       "Burst pipe",
		Description: "Water running down the street",
		Category:    model.CategoryWaterAndSanitation,
		Location:    "Long Street",
		Priority:    model.PriorityCritical,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := idx.Rebuild(ctx); err != nil {
		log.Fatal(err)
	}

	fmt.Println(idx.Generation() > gen, len(idx.AllSorted()))

	_, err = reqindex.New(ctx, source.Static(nil))
	fmt.Println(err)

	empty, _ := reqindex.New(ctx, source.Static(nil))
	_, err = empty.HighestPriority()
	fmt.Println(errors.Is(err, reqindex.ErrEmptyCollection))
	// Output:
	// true 1
	// <nil>
	// true
}
