// Package reqindex provides an in-process, multi-index view over a collection
// of municipal service requests.
//
// An Index pulls a complete snapshot from a source.RecordSource and projects it
// into four independent structures:
//
//   - a plain binary search tree keyed by record ID
//   - an AVL tree keyed by record ID
//   - a max-heap ordered by priority
//   - a weighted relationship graph between similar requests
//
// # Quick Start
//
//	src := source.NewMemorySource()
//	_ = src.Load(ctx, source.SampleRecords(time.Now())...)
//
//	idx, err := reqindex.New(ctx, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, ok := idx.GetByID(1)
//	related := idx.Related(1)           // strongest relationships first
//	forest := idx.MinimumSpanningForest()
//
// # Rebuilds
//
// Every structure is a disposable projection of the snapshot. Rebuild fetches a
// new snapshot, builds fresh structures off to the side and swaps them in
// under a write lock. Generation counts completed rebuilds, so callers can
// detect that results they hold are stale:
//
//	gen := idx.Generation()
//	_ = idx.Rebuild(ctx)
//	if idx.Generation() != gen { ... }
//
// A failed rebuild returns a *RebuildError and leaves the previous generation
// in place.
//
// # Relationships
//
// Two requests are related when they share a category, share a location word,
// were created close together in time or have the same priority. The weight of
// a relationship starts at 10 and drops with each shared trait down to a
// floor of 1; lower weights mean stronger relationships. Only pairs with a
// weight below 10 become edges.
//
// # Observability
//
// Logging goes through *Logger (a log/slog wrapper), metrics through a
// MetricsCollector, and rebuilds emit OpenTelemetry spans when a tracer
// provider is configured with WithTracerProvider.
package reqindex
