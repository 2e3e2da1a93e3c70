// Package vq implements codebook training and quantization with the
// Generalized Lloyd Algorithm (LBG).
//
// # Pipeline
//
// A Trainer turns an ordered list of input vectors into a converged Codebook:
//
//	trainer, _ := vq.NewTrainer(vq.DefaultConfig(16))
//	model, err := trainer.Train(ctx, vectors)
//	indices, _ := vq.Quantize(vectors, model.Clusters)
//
// Training runs three phases:
//
//  1. InitCodebook seeds N codewords on the main diagonal of the sample space.
//  2. Assign + Repair are repeated until no codeword has an empty cluster.
//  3. Update + Assign are repeated until the distortion of one Lloyd step
//     drops below Config.ConvergenceThreshold.
//
// Both fixed-point loops are bounded; exceeding a bound returns a
// *ConvergenceError carrying the last codebook.
//
// # Determinism
//
// No randomness is used. Ties in nearest-codeword search resolve to the lowest
// codeword index, so identical inputs always produce identical codebooks.
//
// # Value semantics
//
// Vector and Codebook are immutable values. Every repair and update step
// produces a new Codebook; ClusterMap is rebuilt from scratch whenever the
// codebook changes.
package vq
