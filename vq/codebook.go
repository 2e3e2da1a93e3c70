package vq

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// Codebook is an ordered, immutable list of codewords of one dimension.
// The position of a codeword is its code index.
type Codebook struct {
	dim   int
	words []Vector
}

// NewCodebook builds a codebook from words. All words must share a dimension.
func NewCodebook(words ...Vector) (Codebook, error) {
	if len(words) == 0 {
		return Codebook{}, ErrEmptyCodebook
	}
	dim := words[0].Dim()
	if dim == 0 {
		return Codebook{}, &ErrInvalidDimension{Dimension: 0}
	}
	for _, w := range words[1:] {
		if w.Dim() != dim {
			return Codebook{}, &ErrDimensionMismatch{Expected: dim, Actual: w.Dim()}
		}
	}
	cp := make([]Vector, len(words))
	copy(cp, words)
	return Codebook{dim: dim, words: cp}, nil
}

// Len returns the number of codewords.
func (c Codebook) Len() int {
	return len(c.words)
}

// Dim returns the codeword dimension.
func (c Codebook) Dim() int {
	return c.dim
}

// At returns the codeword with index i.
func (c Codebook) At(i int) Vector {
	return c.words[i]
}

// Words returns a copy of the codewords in index order.
func (c Codebook) Words() []Vector {
	out := make([]Vector, len(c.words))
	copy(out, c.words)
	return out
}

// Equal reports whether both codebooks hold the same codewords in the same order.
func (c Codebook) Equal(o Codebook) bool {
	if c.dim != o.dim || len(c.words) != len(o.words) {
		return false
	}
	for i := range c.words {
		if c.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// Fingerprint returns an xxh3 digest of the codewords in index order.
// Equal codebooks have equal fingerprints.
func (c Codebook) Fingerprint() uint64 {
	buf := make([]byte, 0, 8+4*c.dim*len(c.words))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(c.dim))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(c.words)))
	for _, w := range c.words {
		for i := 0; i < c.dim; i++ {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(w.s[i]))
		}
	}
	return xxh3.Hash(buf)
}

func (c Codebook) String() string {
	parts := make([]string, len(c.words))
	for i, w := range c.words {
		parts[i] = w.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// replace returns a copy of c with the codewords at the given indices
// swapped for the matching values.
func (c Codebook) replace(repl map[int]Vector) Codebook {
	words := make([]Vector, len(c.words))
	copy(words, c.words)
	for i, v := range repl {
		words[i] = v
	}
	return Codebook{dim: c.dim, words: words}
}

// OverflowPolicy decides what happens to seed coordinates that exceed the
// largest sample value.
type OverflowPolicy int

const (
	// OverflowUnclamped leaves seed coordinates as computed.
	OverflowUnclamped OverflowPolicy = iota
	// OverflowClamp clamps seed coordinates to PixDim-1.
	OverflowClamp
	// OverflowWrap reduces seed coordinates modulo PixDim.
	OverflowWrap
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowUnclamped:
		return "unclamped"
	case OverflowClamp:
		return "clamp"
	case OverflowWrap:
		return "wrap"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy parses the String form of a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unclamped", "none":
		return OverflowUnclamped, nil
	case "clamp":
		return OverflowClamp, nil
	case "wrap":
		return OverflowWrap, nil
	default:
		return 0, fmt.Errorf("vq: unknown overflow policy %q", s)
	}
}

func (p OverflowPolicy) apply(s int) int {
	switch p {
	case OverflowClamp:
		if s > PixDim-1 {
			return PixDim - 1
		}
	case OverflowWrap:
		return s % PixDim
	}
	return s
}

// InitCodebook seeds n codewords of dimension dim on the main diagonal:
// codeword i has every coordinate equal to i*(PixDim/n).
func InitCodebook(dim, n int, overflow OverflowPolicy) (Codebook, error) {
	if dim <= 0 || dim > MaxDim {
		return Codebook{}, &ErrInvalidDimension{Dimension: dim}
	}
	if n <= 0 {
		return Codebook{}, ErrInvalidCodewordCount
	}
	if n > PixDim {
		return Codebook{}, fmt.Errorf("%w: %d > %d", ErrTooManyCodewords, n, PixDim)
	}

	step := PixDim / n
	words := make([]Vector, n)
	pos := 0
	for i := range words {
		w := Vector{dim: dim}
		for d := 0; d < dim; d++ {
			w.s[d] = int32(overflow.apply(pos))
		}
		words[i] = w
		pos += step
	}
	return Codebook{dim: dim, words: words}, nil
}
