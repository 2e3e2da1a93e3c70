package vq

import "fmt"

// Quantize returns one code index per input vector, in input order. The
// index of a vector is the position of the first codeword equal to its
// assigned codeword.
func Quantize(m *ClusterMap) []int {
	// Duplicate codewords collapse onto the first equal one.
	first := make([]int, m.codebook.Len())
	seen := make(map[Vector]int, len(first))
	for j, w := range m.codebook.words {
		if i, ok := seen[w]; ok {
			first[j] = i
			continue
		}
		seen[w] = j
		first[j] = j
	}

	out := make([]int, m.Len())
	for pos := range out {
		out[pos] = first[m.assign[pos]]
	}
	return out
}

// Indices is a convenience wrapper that quantizes the model's final cluster
// map.
func (m *Model) Indices() []int {
	return Quantize(m.Clusters)
}

// Decode maps indices back to codewords.
func Decode(indices []int, cb Codebook) ([]Vector, error) {
	out := make([]Vector, len(indices))
	for i, j := range indices {
		if j < 0 || j >= cb.Len() {
			return nil, fmt.Errorf("vq: index %d at position %d out of range [0,%d)", j, i, cb.Len())
		}
		out[i] = cb.At(j)
	}
	return out, nil
}
