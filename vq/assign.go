package vq

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// ClusterMap associates every input vector with its nearest codeword.
//
// Input vectors are identified by their position in the input list. For each
// position the map stores the code index of the assigned codeword; for each
// code index it keeps a bitmap of member positions.
type ClusterMap struct {
	codebook Codebook
	assign   []int
	members  []*roaring.Bitmap
}

// Assign computes the nearest codeword of every vector under squared
// Euclidean distance. The codebook is scanned in index order and a codeword
// only replaces the running best on a strictly smaller distance, so ties go
// to the lowest index.
func Assign(vectors []Vector, cb Codebook) (*ClusterMap, error) {
	if cb.Len() == 0 {
		return nil, ErrEmptyCodebook
	}

	m := &ClusterMap{
		codebook: cb,
		assign:   make([]int, len(vectors)),
		members:  make([]*roaring.Bitmap, cb.Len()),
	}
	for j := range m.members {
		m.members[j] = roaring.New()
	}

	// Nearest codeword is a pure function of the vector value.
	memo := make(map[Vector]int)
	for pos, v := range vectors {
		if v.Dim() != cb.Dim() {
			return nil, &ErrDimensionMismatch{Expected: cb.Dim(), Actual: v.Dim()}
		}
		best, ok := memo[v]
		if !ok {
			best = nearest(v, cb)
			memo[v] = best
		}
		m.assign[pos] = best
		m.members[best].Add(uint32(pos))
	}
	return m, nil
}

func nearest(v Vector, cb Codebook) int {
	best := 0
	minDist := int64(math.MaxInt64)
	for j, w := range cb.words {
		if d := v.SquaredDistance(w); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}

// Len returns the number of assigned input vectors.
func (m *ClusterMap) Len() int {
	return len(m.assign)
}

// Codebook returns the codebook the map was computed against.
func (m *ClusterMap) Codebook() Codebook {
	return m.codebook
}

// Index returns the code index assigned to the vector at pos.
func (m *ClusterMap) Index(pos int) int {
	return m.assign[pos]
}

// Codeword returns the codeword assigned to the vector at pos.
func (m *ClusterMap) Codeword(pos int) Vector {
	return m.codebook.At(m.assign[pos])
}

// Cluster returns the positions of every input vector whose assigned
// codeword equals codeword j by value. Duplicate codewords therefore share
// one cluster. The returned bitmap is owned by the caller.
func (m *ClusterMap) Cluster(j int) *roaring.Bitmap {
	target := m.codebook.At(j)
	var parts []*roaring.Bitmap
	for i, w := range m.codebook.words {
		if w == target {
			parts = append(parts, m.members[i])
		}
	}
	if len(parts) == 1 {
		return parts[0].Clone()
	}
	return roaring.FastOr(parts...)
}

// ClusterSize returns the cardinality of Cluster(j).
func (m *ClusterMap) ClusterSize(j int) int {
	target := m.codebook.At(j)
	var n uint64
	for i, w := range m.codebook.words {
		if w == target {
			n += m.members[i].GetCardinality()
		}
	}
	return int(n)
}

// Empty returns the code indices whose clusters are empty, in index order.
func (m *ClusterMap) Empty() []int {
	var out []int
	for j := range m.codebook.words {
		if m.ClusterSize(j) == 0 {
			out = append(out, j)
		}
	}
	return out
}

// Equal reports whether both maps assign every position to the same
// codeword value.
func (m *ClusterMap) Equal(o *ClusterMap) bool {
	if m.Len() != o.Len() {
		return false
	}
	for pos := range m.assign {
		if m.Codeword(pos) != o.Codeword(pos) {
			return false
		}
	}
	return true
}
