// Package blobstore abstracts where record snapshots are stored.
//
// A BlobStore maps names to immutable byte blobs. Implementations must be safe
// for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, used by tests and the demo CLI
//   - LocalStore: a directory on the local file system
//   - s3.Store: Amazon S3 (package blobstore/s3)
//   - minio.Store: MinIO and other S3-compatible servers (package blobstore/minio)
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
