package vq

// Repair nudges every codeword whose cluster is empty and returns the
// resulting codebook together with the number of nudged codewords. A zero
// count means the codebook was already free of empty clusters and is
// returned unchanged.
//
// Nudged codewords keep their index. Cluster emptiness is judged against the
// codebook the map was computed with, so a single pass never sees its own
// replacements.
func Repair(m *ClusterMap) (Codebook, int) {
	empty := m.Empty()
	if len(empty) == 0 {
		return m.codebook, 0
	}
	repl := make(map[int]Vector, len(empty))
	for _, j := range empty {
		repl[j] = Nudge(m.codebook.At(j))
	}
	return m.codebook.replace(repl), len(empty)
}
