package block

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidShape is returned for a shape outside the supported set.
var ErrInvalidShape = errors.New("block: invalid shape")

// Shape is the geometry of one block.
type Shape int

const (
	// SideBySide is a 1 row by 2 column block (dimension 2).
	SideBySide Shape = iota + 1
	// TwoByTwo is a 2x2 block (dimension 4).
	TwoByTwo
	// FourByFour is a 4x4 block (dimension 16).
	FourByFour
)

// Shapes lists every supported shape.
var Shapes = []Shape{SideBySide, TwoByTwo, FourByFour}

// Width returns the block width in samples.
func (s Shape) Width() int {
	switch s {
	case SideBySide, TwoByTwo:
		return 2
	case FourByFour:
		return 4
	}
	return 0
}

// Height returns the block height in samples.
func (s Shape) Height() int {
	switch s {
	case SideBySide:
		return 1
	case TwoByTwo:
		return 2
	case FourByFour:
		return 4
	}
	return 0
}

// Dim returns the number of samples per block.
func (s Shape) Dim() int {
	return s.Width() * s.Height()
}

// Valid reports whether s is a supported shape.
func (s Shape) Valid() bool {
	return s >= SideBySide && s <= FourByFour
}

func (s Shape) String() string {
	switch s {
	case SideBySide:
		return "1x2"
	case TwoByTwo:
		return "2x2"
	case FourByFour:
		return "4x4"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShape, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseShape accepts "1x2", "2x2", "4x4", the aliases "side-by-side",
// "two-by-two", "four-by-four", and the numeric modes "1", "2", "3".
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1x2", "side-by-side", "sidebyside", "1":
		return SideBySide, nil
	case "2x2", "two-by-two", "twobytwo", "2":
		return TwoByTwo, nil
	case "4x4", "four-by-four", "fourbyfour", "3":
		return FourByFour, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShape, s)
}

// ShapeFromMode maps the numeric mode selector 1, 2, 3 to a shape. Any other
// value selects SideBySide.
func ShapeFromMode(mode int) Shape {
	switch mode {
	case 2:
		return TwoByTwo
	case 3:
		return FourByFour
	default:
		return SideBySide
	}
}
