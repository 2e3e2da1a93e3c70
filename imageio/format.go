package imageio

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	// DefaultWidth is the width assumed for headerless inputs.
	DefaultWidth = 352
	// DefaultHeight is the height assumed for headerless inputs.
	DefaultHeight = 288
)

var (
	// ErrUnknownFormat is returned for unrecognized file extensions.
	ErrUnknownFormat = errors.New("imageio: unknown format")

	// ErrSizeMismatch is returned when a headerless payload does not match the
	// requested geometry.
	ErrSizeMismatch = errors.New("imageio: payload size does not match geometry")
)

// Format is a pixel layout.
type Format int

const (
	FormatRaw Format = iota + 1
	FormatRGB
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatRGB:
		return "rgb"
	case FormatPNG:
		return "png"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Headerless reports whether the format needs an external geometry.
func (f Format) Headerless() bool {
	return f == FormatRaw || f == FormatRGB
}

// Compression is the outer framing of a payload.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// Kind is the detected format and compression of a file name.
type Kind struct {
	Format      Format
	Compression Compression
}

// DetectFormat inspects the extension of name. An optional .zst or .lz4
// suffix selects the compression; the extension before it the format.
func DetectFormat(name string) (Kind, error) {
	base := strings.ToLower(path.Base(name))
	var k Kind

	switch path.Ext(base) {
	case ".zst", ".zstd":
		k.Compression = CompressionZstd
		base = strings.TrimSuffix(base, path.Ext(base))
	case ".lz4":
		k.Compression = CompressionLZ4
		base = strings.TrimSuffix(base, path.Ext(base))
	}

	switch path.Ext(base) {
	case ".raw", ".gray", ".y":
		k.Format = FormatRaw
	case ".rgb":
		k.Format = FormatRGB
	case ".png":
		k.Format = FormatPNG
	default:
		return Kind{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return k, nil
}
