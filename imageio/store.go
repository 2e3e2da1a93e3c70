package imageio

import (
	"context"
	"fmt"

	"github.com/hupe1980/govq/blobstore"
	"github.com/hupe1980/govq/raster"
)

// Load fetches name from store and decodes it.
func Load(ctx context.Context, store blobstore.BlobStore, name string, g Geometry, retry blobstore.RetryPolicy) (*raster.Image, error) {
	data, err := blobstore.Fetch(ctx, store, name, retry)
	if err != nil {
		return nil, fmt.Errorf("imageio: load %s: %w", name, err)
	}
	return Decode(name, data, g)
}

// Save encodes img and writes it to store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, img *raster.Image) error {
	data, err := Encode(name, img)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("imageio: save %s: %w", name, err)
	}
	return nil
}
