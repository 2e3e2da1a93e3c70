// Package govq implements lossy image compression by vector quantization
// with the generalized Lloyd (LBG) algorithm.
//
// An image is cut into fixed-size pixel blocks, a small codebook of
// representative blocks is trained per channel, and the image is rebuilt by
// replacing every block with its nearest codeword.
//
// # Quick Start
//
//	img, _ := imageio.Decode("foreman.rgb", data, imageio.DefaultGeometry())
//	res, err := govq.Compress(ctx, img,
//	    govq.WithShape(block.TwoByTwo),
//	    govq.WithCodewords(64),
//	)
//	report, _ := quality.Compare(img, res.Image)
//
// # Pipeline
//
// Package block extracts vectors from a plane and writes them back; package
// vq trains codebooks (initialization, empty-cluster repair and Lloyd steps)
// and assigns indices. Color images run the same pipeline independently for
// red, green and blue, concurrently and bounded by WithWorkers.
//
// # Determinism
//
// Training has no randomness. The same image and options always give the same
// codebooks, indices and reconstruction; ChannelResult.Fingerprint makes this
// cheap to check.
//
// # Storage
//
// Inputs and outputs are read through package blobstore (local files, memory,
// S3 or MinIO) and decoded by package imageio (.raw, .rgb, .png, optionally
// zstd or lz4 compressed).
package govq
