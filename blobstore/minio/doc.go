// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object store. This package uses the official
// MinIO Go client and works with other S3-compatible services such as Ceph,
// SeaweedFS and Garage.
//
// # Basic Usage
//
//	store, err := minioblob.New("localhost:9000", "frames", "cif/",
//	    minioblob.WithStaticCredentials("minioadmin", "minioadmin"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := blobstore.Get(ctx, store, "foreman.rgb")
//
// Credentials default to the MINIO_ACCESS_KEY / MINIO_SECRET_KEY
// environment variables.
package minio
