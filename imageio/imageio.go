package imageio

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/hupe1980/govq/raster"
)

// Geometry is the size of a headerless image.
type Geometry struct {
	Width  int
	Height int
}

// DefaultGeometry returns the CIF geometry.
func DefaultGeometry() Geometry {
	return Geometry{Width: DefaultWidth, Height: DefaultHeight}
}

// Decode parses data according to the extension of name. g is used only for
// headerless formats; a zero field falls back to the default.
func Decode(name string, data []byte, g Geometry) (*raster.Image, error) {
	kind, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	payload, err := decompress(data, kind.Compression)
	if err != nil {
		return nil, err
	}
	return decodeFormat(kind.Format, payload, g)
}

func decodeFormat(f Format, data []byte, g Geometry) (*raster.Image, error) {
	if !f.Headerless() {
		if f != FormatPNG {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
		}
		src, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("imageio: png: %w", err)
		}
		return raster.FromImage(src), nil
	}

	if g.Width == 0 {
		g.Width = DefaultWidth
	}
	if g.Height == 0 {
		g.Height = DefaultHeight
	}
	if f == FormatRGB {
		return DecodeRGB(data, g.Width, g.Height)
	}
	return DecodeRaw(data, g.Width, g.Height)
}

// Encode serializes img according to the extension of name.
func Encode(name string, img *raster.Image) ([]byte, error) {
	kind, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}

	var payload []byte
	switch kind.Format {
	case FormatRaw:
		if img.IsColor() {
			return nil, fmt.Errorf("imageio: %s needs a grayscale image", kind.Format)
		}
		payload = EncodeRaw(img)
	case FormatRGB:
		if !img.IsColor() {
			return nil, fmt.Errorf("imageio: %s needs a color image", kind.Format)
		}
		payload = EncodeRGB(img)
	case FormatPNG:
		var buf bytes.Buffer
		if err := png.Encode(&buf, img.ToImage()); err != nil {
			return nil, fmt.Errorf("imageio: png: %w", err)
		}
		payload = buf.Bytes()
	}
	return compress(payload, kind.Compression)
}

// DecodeRaw wraps width*height grayscale bytes. data is copied.
func DecodeRaw(data []byte, width, height int) (*raster.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", raster.ErrInvalidSize, width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d gray", ErrSizeMismatch, len(data), width, height)
	}
	pix := make([]uint8, len(data))
	copy(pix, data)
	return raster.NewGray(width, height, pix)
}

// DecodeRGB splits planar color data into three planes. data is copied.
func DecodeRGB(data []byte, width, height int) (*raster.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", raster.ErrInvalidSize, width, height)
	}
	n := width * height
	if len(data) != 3*n {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d rgb", ErrSizeMismatch, len(data), width, height)
	}
	planes := make([]uint8, 3*n)
	copy(planes, data)
	return raster.NewRGB(width, height, planes[:n:n], planes[n:2*n:2*n], planes[2*n:])
}

// EncodeRaw returns the samples of a grayscale image.
func EncodeRaw(img *raster.Image) []byte {
	out := make([]byte, len(img.Planes[0].Pix))
	copy(out, img.Planes[0].Pix)
	return out
}

// EncodeRGB returns the planes of a color image back to back.
func EncodeRGB(img *raster.Image) []byte {
	n := img.Width * img.Height
	out := make([]byte, 0, 3*n)
	for _, ch := range []raster.Channel{raster.Red, raster.Green, raster.Blue} {
		p, _ := img.Plane(ch)
		out = append(out, p.Pix...)
	}
	return out
}
