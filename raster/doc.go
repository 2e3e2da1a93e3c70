// Package raster provides the in-memory image model consumed and produced by
// govq: 8-bit sample planes arranged as a single gray channel or as three
// independent red, green and blue channels.
//
// Planes are row-major; sample (x, y) lives at Pix[y*Width+x].
package raster
