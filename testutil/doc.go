// Package testutil provides testing utilities for govq.
//
// This package is intended for use in tests, benchmarks and examples only.
// It generates reproducible rasters.
//
// # Random Rasters
//
//	rng := testutil.NewRNG(seed)
//	gray := rng.Gray(64, 64)             // uniform samples
//	color := rng.RGB(64, 64)
//	smooth := rng.SmoothGray(64, 64, 8)  // gradient plus bounded noise
package testutil
