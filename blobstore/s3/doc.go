// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("reqindex/"),
//	    s3.WithRegion("af-south-1"),
//	)
//
//	src := source.NewSnapshotSource(store, "records.json.zst")
//	idx, err := reqindex.New(ctx, src)
//
// # Features
//
//   - Range reads through GetObject
//   - Multipart uploads for large snapshots
//   - Automatic pagination for listing
//   - Custom endpoints for S3-compatible test servers
package s3
