// Package source provides the record sources an index is built from.
//
// A RecordSource hands out a complete snapshot of records on every call. The
// index never mutates what it receives.
//
// Built-in sources:
//
//   - MemorySource: an in-process store that assigns identifiers and timestamps
//   - SnapshotSource: a (optionally compressed) JSON snapshot in a blobstore.BlobStore
//   - Func: adapts a plain function
package source
