// Package testutil provides testing utilities for reqindex.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and helpers for generating
// random service request records.
//
// # Random Records
//
//	rng := testutil.NewRNG(seed)
//	recs := rng.Records(100, base)           // IDs 1..100
//	recs = rng.RecordsWithIDs(ids, base)     // caller-chosen IDs
//	rng.Shuffle(recs)
package testutil
