// Package lattice implements a lattice interpolation layer: a lookup table
// over a d-dimensional grid of trainable vertices, evaluated for a batch of
// query points by multilinear ("hypercube") or simplex interpolation.
//
// What & Why:
//
//	A lattice with sizes [s0, s1, ..., s(d-1)] has ∏ sᵢ vertices, each holding
//	one weight per unit. A query point x ∈ ∏ [0, sᵢ-1] is answered with a convex
//	combination of the vertex weights around x:
//
//	  - Hypercube: all corners of the enclosing cell, weighted by the tensor
//	    product of per-dimension linear weights (2^d non-zeros).
//	  - Simplex:   the d+1 corners of the simplex containing x in the
//	    Kuhn/Freudenthal subdivision of the cell (sorted-coordinate differences).
//
// Vertex addressing is row-major: flat = Σ coordᵢ·strideᵢ with the last
// dimension fastest (strides[d-1] = 1).
//
// Quick example (XOR on a 2×2 lattice):
//
//	l, _ := lattice.New([]int{2, 2})
//	k := l.Kernel()                 // 4×1, shared with the caller
//	copy(k.RawData(), []float64{0, 1, 1, 0})
//	pts, _ := matrix.NewDenseFromRows([][]float64{{0.5, 0.5}, {1, 0}})
//	out, _ := l.Forward(lattice.Combined{Points: pts}) // [[0.5], [1]]
//
// Scope:
//
//	Forward pass and interpolation weights only. Weights(...) returns the dense
//	weight matrix, which is also d(output)/d(kernel); training loops, input
//	calibration and persistence live outside this package.
//
// Concurrency:
//
//	A *Lattice holds immutable configuration plus a kernel buffer that callers
//	may update between calls. Forward takes no locks and never writes the kernel,
//	so concurrent Forward calls are safe while nobody writes the kernel.
package lattice
