// Package blobstore provides storage access for raster inputs and outputs.
//
// BlobStore reads and writes whole named blobs (image files). Implementations
// must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads through mmap
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with ranged reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// Fetch wraps Open and ReadAll with exponential backoff for remote stores.
package blobstore
