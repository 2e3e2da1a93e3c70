package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrInvalidSize is returned for non-positive dimensions or a sample
	// buffer whose length does not match width*height.
	ErrInvalidSize = errors.New("raster: invalid size")

	// ErrUnknownChannel is returned when a channel is not part of an image.
	ErrUnknownChannel = errors.New("raster: unknown channel")
)

// Channel identifies one sample plane of an image.
type Channel int

const (
	Gray Channel = iota
	Red
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Gray:
		return "gray"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Plane is a single channel of 8-bit samples.
type Plane struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the sample at (x, y).
func (p *Plane) At(x, y int) uint8 {
	return p.Pix[y*p.Width+x]
}

// Set stores v at (x, y).
func (p *Plane) Set(x, y int, v uint8) {
	p.Pix[y*p.Width+x] = v
}

// Validate checks that the plane has positive dimensions and a matching buffer.
func (p *Plane) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil plane", ErrInvalidSize)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, p.Width, p.Height)
	}
	if len(p.Pix) != p.Width*p.Height {
		return fmt.Errorf("%w: %dx%d plane has %d samples", ErrInvalidSize, p.Width, p.Height, len(p.Pix))
	}
	return nil
}

// Clone returns a deep copy of the plane.
func (p *Plane) Clone() *Plane {
	pix := make([]uint8, len(p.Pix))
	copy(pix, p.Pix)
	return &Plane{Width: p.Width, Height: p.Height, Pix: pix}
}

// Image is a raster of one (Gray) or three (Red, Green, Blue) planes sharing
// the same dimensions.
type Image struct {
	Width    int
	Height   int
	Channels []Channel
	Planes   []*Plane
}

// NewGray wraps pix as a single-channel image. pix is not copied.
func NewGray(width, height int, pix []uint8) (*Image, error) {
	img := &Image{
		Width:    width,
		Height:   height,
		Channels: []Channel{Gray},
		Planes:   []*Plane{{Width: width, Height: height, Pix: pix}},
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// NewRGB wraps three sample buffers as a color image. Buffers are not copied.
func NewRGB(width, height int, r, g, b []uint8) (*Image, error) {
	img := &Image{
		Width:    width,
		Height:   height,
		Channels: []Channel{Red, Green, Blue},
		Planes: []*Plane{
			{Width: width, Height: height, Pix: r},
			{Width: width, Height: height, Pix: g},
			{Width: width, Height: height, Pix: b},
		},
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// Validate checks the channel layout and every plane.
func (img *Image) Validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidSize)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, img.Width, img.Height)
	}
	if len(img.Channels) == 0 || len(img.Channels) != len(img.Planes) {
		return fmt.Errorf("%w: %d channels, %d planes", ErrInvalidSize, len(img.Channels), len(img.Planes))
	}
	for i, p := range img.Planes {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", img.Channels[i], err)
		}
		if p.Width != img.Width || p.Height != img.Height {
			return fmt.Errorf("%w: %s plane is %dx%d, image is %dx%d",
				ErrInvalidSize, img.Channels[i], p.Width, p.Height, img.Width, img.Height)
		}
	}
	return nil
}

// IsColor reports whether the image carries red, green and blue planes.
func (img *Image) IsColor() bool {
	return len(img.Channels) == 3
}

// Plane returns the plane for ch.
func (img *Image) Plane(ch Channel) (*Plane, error) {
	for i, c := range img.Channels {
		if c == ch {
			return img.Planes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, ch)
}

// ToImage converts to a standard library image: *image.Gray for gray
// rasters, *image.RGBA otherwise.
func (img *Image) ToImage() image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	if !img.IsColor() {
		out := image.NewGray(rect)
		copy(out.Pix, img.Planes[0].Pix)
		return out
	}

	out := image.NewRGBA(rect)
	r, g, b := img.Planes[0].Pix, img.Planes[1].Pix, img.Planes[2].Pix
	for i := range r {
		out.Pix[4*i+0] = r[i]
		out.Pix[4*i+1] = g[i]
		out.Pix[4*i+2] = b[i]
		out.Pix[4*i+3] = 0xff
	}
	return out
}

// FromImage converts a standard library image. Gray images keep a single
// channel; every other color model is split into red, green and blue.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if g, ok := src.(*image.Gray); ok {
		pix := make([]uint8, w*h)
		for y := 0; y < h; y++ {
			off := g.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[y*w:(y+1)*w], g.Pix[off:off+w])
		}
		return &Image{
			Width:    w,
			Height:   h,
			Channels: []Channel{Gray},
			Planes:   []*Plane{{Width: w, Height: h, Pix: pix}},
		}
	}

	r, g, b := NewPlane(w, h), NewPlane(w, h), NewPlane(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			r.Set(x, y, c.R)
			g.Set(x, y, c.G)
			b.Set(x, y, c.B)
		}
	}
	return &Image{
		Width:    w,
		Height:   h,
		Channels: []Channel{Red, Green, Blue},
		Planes:   []*Plane{r, g, b},
	}
}
