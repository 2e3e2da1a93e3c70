// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("frames/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	data, err := blobstore.Fetch(ctx, store, "foreman.rgb", blobstore.RetryPolicy{})
//
// # Features
//
//   - Range reads for partial fetches
//   - Managed (multipart when large) uploads
//   - Automatic pagination for listing
//   - Configurable prefix and custom endpoints for S3-compatible services
package s3
