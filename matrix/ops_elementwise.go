// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) to avoid
//     duplicating tight loops across higher-level ops (clipping, outer products).
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - All ew* are UNEXPORTED; public API uses these via thin wrappers in api.go.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output Dense.

package matrix

import (
	"math"
)

// BinaryOp combines two scalars; used by the broadcast outer product.
type BinaryOp func(x, y float64) float64

// OpMultiply is the outer-product combiner (interpolation weights).
func OpMultiply(x, y float64) float64 { return x * y }

// OpAdd is the outer-sum combiner (linear kernel initialization).
func OpAdd(x, y float64) float64 { return x + y }

// ewClipRange copies X clamping each entry into [lo, hi] (both finite).
// Time: O(r*c). Space: O(r*c). Deterministic flat loop on Dense fast-path.
//
// Note: Bounds must be finite; if lo > hi, they are swapped (normalized).
func ewClipRange(X Matrix, lo, hi float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("Clip", err)
	}
	if err := ValidateFinite(lo, hi); err != nil {
		return nil, matrixErrorf("Clip", err)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	r, c := X.Rows(), X.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("Clip", err)
	}

	// Dense fast-path: single pass with branchy clamp (predictable).
	if d, ok := X.(*Dense); ok {
		n := r * c
		for idx := 0; idx < n; idx++ {
			out.data[idx] = clamp(d.data[idx], lo, hi)
		}
		return out, nil
	}

	// Generic fallback via At.
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf("Clip", e)
			}
			out.data[i*c+j] = clamp(v, lo, hi)
		}
	}
	return out, nil
}

// ewClipCols copies X clamping column j into [lo[j], hi[j]].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
//
// AI-Hint: per-dimension domain clamping, e.g. lattice coordinates into [0, size-1].
func ewClipCols(X Matrix, lo, hi []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("ClipColumns", err)
	}
	r, c := X.Rows(), X.Cols()
	if len(lo) != c || len(hi) != c {
		return nil, matrixErrorf("ClipColumns", ErrDimensionMismatch)
	}
	if err := ValidateFinite(lo...); err != nil {
		return nil, matrixErrorf("ClipColumns", err)
	}
	if err := ValidateFinite(hi...); err != nil {
		return nil, matrixErrorf("ClipColumns", err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("ClipColumns", err)
	}

	if d, ok := X.(*Dense); ok {
		for i := 0; i < r; i++ {
			base := i * c
			for j := 0; j < c; j++ {
				out.data[base+j] = clamp(d.data[base+j], lo[j], hi[j])
			}
		}
		return out, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf("ClipColumns", e)
			}
			out.data[i*c+j] = clamp(v, lo[j], hi[j])
		}
	}
	return out, nil
}

// clamp keeps NaN as NaN (both comparisons are false).
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ewOuterRows computes out[b, i*m+j] = op(a[b,i], c[b,j]) by elementwise broadcast.
// Time: O(B*n*m). Space: O(B*n*m). Deterministic b→i→j loops.
//
// AI-Hint: the broadcast branch of the batched outer operation; the accumulated
// operand stays on the left so dimension order matches row-major strides.
func ewOuterRows(a, c Matrix, op BinaryOp) (*Dense, error) {
	if err := ValidateSameRows(a, c); err != nil {
		return nil, matrixErrorf("OuterRows", err)
	}
	if op == nil {
		return nil, matrixErrorf("OuterRows", ErrNilMatrix)
	}
	rows, n, m := a.Rows(), a.Cols(), c.Cols()
	out, err := NewDense(rows, n*m)
	if err != nil {
		return nil, matrixErrorf("OuterRows", err)
	}

	if da, okA := a.(*Dense); okA {
		if dc, okC := c.(*Dense); okC {
			var b, i, j, aBase, cBase, oBase int
			var av float64
			for b = 0; b < rows; b++ {
				aBase, cBase = b*n, b*m
				for i = 0; i < n; i++ {
					av = da.data[aBase+i]
					oBase = b*n*m + i*m
					for j = 0; j < m; j++ {
						out.data[oBase+j] = op(av, dc.data[cBase+j])
					}
				}
			}
			return out, nil
		}
	}

	for b := 0; b < rows; b++ {
		for i := 0; i < n; i++ {
			av, e := a.At(b, i)
			if e != nil {
				return nil, matrixErrorf("OuterRows", e)
			}
			for j := 0; j < m; j++ {
				cv, e := c.At(b, j)
				if e != nil {
					return nil, matrixErrorf("OuterRows", e)
				}
				out.data[b*n*m+i*m+j] = op(av, cv)
			}
		}
	}
	return out, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateFinite(rtol, atol); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	r, c := a.Rows(), a.Cols()

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			n := r * c
			for idx := 0; idx < n; idx++ {
				if math.Abs(da.data[idx]-db.data[idx]) > atol+rtol*math.Abs(db.data[idx]) {
					return false, nil // early-exit on first violation
				}
			}
			return true, nil
		}
	}

	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
