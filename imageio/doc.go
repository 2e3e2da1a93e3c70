// Package imageio decodes and encodes raster images.
//
// Supported formats:
//
//   - .raw: 8-bit grayscale, width*height bytes, no header
//   - .rgb: planar 8-bit color, the red plane followed by green and blue
//   - .png: any PNG; grayscale PNGs decode to one channel, all others to RGB
//
// Headerless formats need the geometry from the caller; DefaultWidth and
// DefaultHeight give the CIF size used when none is known. A trailing .zst or
// .lz4 suffix (for example "foreman.rgb.zst") transparently compresses the
// payload with Zstandard or LZ4 frames.
package imageio
