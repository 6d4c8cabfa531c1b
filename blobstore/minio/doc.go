// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage server. This package uses the
// official MinIO Go client and also works against Ceph, SeaweedFS and Garage.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000", "requests",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	    minio.WithPrefix("snapshots/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	src := source.NewSnapshotSource(store, "records.json.lz4")
package minio
