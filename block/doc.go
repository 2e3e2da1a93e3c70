// Package block converts raster planes to vector lists and back.
//
// A plane is tiled with non-overlapping blocks of a fixed Shape. Blocks are
// visited row by row from the top, left to right within a row, and the
// samples of each block are read row-major into one vq.Vector. Reconstruct
// replays the same order, so Extract followed by Reconstruct with the
// identity codebook reproduces the plane exactly.
package block
