package vq

import "fmt"

// ShrinkPolicy decides what a centroid update does with a codeword whose
// cluster is empty.
type ShrinkPolicy int

const (
	// ShrinkDrop removes the codeword from the next codebook and reports
	// the drop.
	ShrinkDrop ShrinkPolicy = iota
	// ShrinkRepair reruns empty-cluster repair before the update is applied.
	ShrinkRepair
	// ShrinkForbid fails training with a *ShrinkError.
	ShrinkForbid
)

func (p ShrinkPolicy) String() string {
	switch p {
	case ShrinkDrop:
		return "drop"
	case ShrinkRepair:
		return "repair"
	case ShrinkForbid:
		return "forbid"
	default:
		return fmt.Sprintf("ShrinkPolicy(%d)", int(p))
	}
}

// ParseShrinkPolicy parses the String form of a policy.
func ParseShrinkPolicy(s string) (ShrinkPolicy, error) {
	switch s {
	case "", "drop":
		return ShrinkDrop, nil
	case "repair":
		return ShrinkRepair, nil
	case "forbid":
		return ShrinkForbid, nil
	default:
		return 0, fmt.Errorf("vq: unknown shrink policy %q", s)
	}
}

// UpdateResult is the outcome of one Lloyd step.
type UpdateResult struct {
	// Codebook holds one centroid per non-empty cluster, in the order of
	// the codebook the step started from.
	Codebook Codebook

	// Distortion is the sum of squared distances between every old
	// codeword and its centroid.
	Distortion float64

	// Dropped lists the indices (in the old codebook) of codewords whose
	// clusters were empty and that have no successor in Codebook.
	Dropped []int
}

// Update performs one Lloyd step: every codeword is replaced by the
// per-coordinate mean of its cluster, using truncating integer division.
// m must have been computed for vectors.
func Update(vectors []Vector, m *ClusterMap) (UpdateResult, error) {
	if len(vectors) != m.Len() {
		return UpdateResult{}, fmt.Errorf("%w: %d vectors, cluster map of %d", ErrLengthMismatch, len(vectors), m.Len())
	}

	old := m.codebook
	dim := old.Dim()
	next := make([]Vector, 0, old.Len())
	var res UpdateResult

	for j := 0; j < old.Len(); j++ {
		cluster := m.Cluster(j)
		count := int64(cluster.GetCardinality())
		if count == 0 {
			res.Dropped = append(res.Dropped, j)
			continue
		}

		var sums [MaxDim]int64
		it := cluster.Iterator()
		for it.HasNext() {
			v := vectors[it.Next()]
			for d := 0; d < dim; d++ {
				sums[d] += int64(v.s[d])
			}
		}

		centroid := Vector{dim: dim}
		for d := 0; d < dim; d++ {
			centroid.s[d] = int32(sums[d] / count)
		}
		next = append(next, centroid)
		res.Distortion += float64(old.At(j).SquaredDistance(centroid))
	}

	res.Codebook = Codebook{dim: dim, words: next}
	return res, nil
}
