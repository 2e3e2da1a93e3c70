package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hupe1980/govq/blobstore"
	"github.com/hupe1980/govq/blobstore/minio"
	"github.com/hupe1980/govq/blobstore/s3"
)

// location is a parsed blob address.
//
//	frames/f0001.raw            local file
//	s3://bucket/key             Amazon S3 (AWS_ENDPOINT_URL_S3 for compatible stores)
//	minio://host:port/bucket/key MinIO (MINIO_ACCESS_KEY, MINIO_SECRET_KEY, MINIO_SECURE)
type location struct {
	scheme   string
	endpoint string
	bucket   string
	name     string
}

func parseLocation(s string) (location, error) {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		if s == "" {
			return location{}, fmt.Errorf("empty location")
		}
		return location{scheme: "file", name: s}, nil
	}

	switch scheme {
	case "s3":
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", s)
		}
		return location{scheme: scheme, bucket: bucket, name: key}, nil
	case "minio":
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return location{}, fmt.Errorf("invalid minio location %q: want minio://host/bucket/key", s)
		}
		return location{scheme: scheme, endpoint: parts[0], bucket: parts[1], name: parts[2]}, nil
	default:
		return location{}, fmt.Errorf("unsupported location scheme %q", scheme)
	}
}

// open returns the store holding the blob together with the blob name inside
// that store.
func (l location) open(ctx context.Context) (blobstore.BlobStore, string, error) {
	switch l.scheme {
	case "s3":
		store, err := s3.New(ctx, l.bucket)
		if err != nil {
			return nil, "", err
		}
		return store, l.name, nil
	case "minio":
		store, err := minio.New(l.endpoint, l.bucket, "", minio.WithSecure(os.Getenv("MINIO_SECURE") == "true"))
		if err != nil {
			return nil, "", err
		}
		return store, l.name, nil
	default:
		return blobstore.NewLocalStore(filepath.Dir(l.name)), filepath.Base(l.name), nil
	}
}

// sibling returns a location in the same store with the file name replaced.
func (l location) sibling(name string) location {
	out := l
	if l.scheme == "file" {
		out.name = filepath.Join(filepath.Dir(l.name), name)
	} else {
		out.name = path.Join(path.Dir(l.name), name)
	}
	return out
}

// base returns the last path element of the blob name.
func (l location) base() string {
	if l.scheme == "file" {
		return filepath.Base(l.name)
	}
	return path.Base(l.name)
}

// defaultOutputName inserts ".vq" before the format suffixes of name:
// "a.raw.zst" becomes "a.vq.raw.zst".
func defaultOutputName(name string) string {
	stem, suffix := name, ""
	for _, ext := range []string{".zst", ".lz4"} {
		if strings.HasSuffix(stem, ext) {
			stem, suffix = strings.TrimSuffix(stem, ext), ext
			break
		}
	}
	ext := path.Ext(stem)
	return strings.TrimSuffix(stem, ext) + ".vq" + ext + suffix
}
