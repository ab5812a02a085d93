// Package matrix provides the dense numeric storage and kernels behind the
// lattice engine.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked accessors and
//     no-copy row views (RawRowView) for hot loops.
//   - Mul, a matrix product with a gonum GEMM fast path.
//   - Broadcast kernels used by interpolation: per-column clipping
//     (ClipColumns) and batched row-wise outer products (OuterRows for
//     elementwise broadcast, OuterRowsGEMM for the matrix-multiply path).
//   - Central validators and sentinel errors.
//
// Batches are always laid out as rows; per-example vectors as columns.
package matrix
