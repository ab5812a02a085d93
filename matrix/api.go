// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication — each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// Clip returns a copy of m with elements clamped into [lo, hi] (both finite).
//
//	out[i,j] = min(max(A[i,j], lo), hi).
//
// Time: O(r*c). Space: O(r*c). Deterministic.
//
// Policy: If lo > hi, bounds are swapped (normalized). NaN/Inf bounds are rejected.
func Clip(m Matrix, lo, hi float64) (*Dense, error) {
	return ewClipRange(m, lo, hi)
}

// ClipColumns returns a copy of m with column j clamped into [lo[j], hi[j]].
// Time: O(r*c). Space: O(r*c). Deterministic.
//
// Policy: len(lo) == len(hi) == Cols(m); bounds must be finite.
func ClipColumns(m Matrix, lo, hi []float64) (*Dense, error) {
	return ewClipCols(m, lo, hi)
}

// OuterRows computes the row-wise outer operation of two batches by
// elementwise broadcast: out[b, i*m+j] = op(a[b,i], c[b,j]).
// Time: O(B*n*m). Space: O(B*n*m).
//
// AI-Hints:
//   - Use OpMultiply for tensor-product weights, OpAdd for outer sums.
//   - For large accumulated widths prefer OuterRowsGEMM (multiply only).
func OuterRows(a, c Matrix, op BinaryOp) (*Dense, error) {
	return ewOuterRows(a, c, op)
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}
