// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// matrix multiplication, matrix-vector products, and the matrix-multiply form
// of the batched row-wise outer product. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used by the lattice engine.
//   - Route *Dense operands to gonum's BLAS-backed GEMM; keep a deterministic
//     At/Set fallback for any other Matrix implementation.
//
// Notes:
//   - gonum wrappers are built over the SAME backing slices (mat.NewDense does
//     not copy), so the fast path allocates only the result buffer.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ZeroSum is the initial sum value for dot products and accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opOuterGEMM = "OuterRowsGEMM"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asGonum views a *Dense as a *mat.Dense over the same storage (no copy).
func asGonum(d *Dense) *mat.Dense {
	return mat.NewDense(d.r, d.c, d.data)
}

// Mul computes the matrix product C = A × B.
// MAIN DESCRIPTION:
//   - General GEMM used to contract interpolation weights (batch×V) against a
//     kernel (V×units).
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b). Allocate result Dense(aRows, bCols).
//   - Stage 2: Fast-path if both are *Dense - gonum mat.Dense.Mul writes
//     straight into the result buffer. Otherwise fallback i→j→k with At/Set.
//
// Inputs:
//   - A: left matrix with shape (r × n).
//   - B: right matrix with shape (n × c).
//
// Returns:
//   - Matrix: new Dense C with shape (r × c).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop orders in the fallback; the fast path is deterministic for a
//     fixed BLAS implementation (gonum's pure-Go one by default).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Fast-path for two Dense matrices
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			asGonum(res).Mul(asGonum(da), asGonum(db))

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	var (
		i, j, k         int
		av, bv, current float64
	)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				av, err = a.At(i, k)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, k, err))
				}
				if av == 0 {
					continue // skip zero for performance
				}
				bv, err = b.At(k, j)
				if err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", k, j, err))
				}
				current += av * bv
			}
			if err = res.Set(i, j, current); err != nil {
				return nil, matrixErrorf(opMul, fmt.Errorf("Set(%d,%d): %w", i, j, err))
			}
		}
	}

	return res, nil
}

// OuterRowsGEMM computes the row-wise outer product of two batches through
// an explicit reshape + matrix multiply:
//
//	out[b, i*m + j] = a[b,i] * c[b,j],  a: B×n, c: B×m, out: B×(n*m)
//
// MAIN DESCRIPTION:
//   - The matrix-multiply branch of the batched outer product. Each batch row is
//     reshaped to an (n×1) column and a (1×m) row and multiplied with gonum GEMM
//     directly into the (n×m) window of the output row.
//
// Implementation:
//   - Stage 1: ValidateSameRows(a, c); allocate out (B × n*m).
//   - Stage 2: *Dense fast path: per row, gonum Mul over no-copy views.
//   - Stage 3: fallback: At-based double loop (same values, same order).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (row counts differ).
//
// Complexity:
//   - Time O(B*n*m), Space O(B*n*m).
//
// Notes:
//   - Produces bitwise the same values as OuterRows(a, c, Multiply): each output
//     cell is a single product, no accumulation order is involved.
func OuterRowsGEMM(a, c Matrix) (*Dense, error) {
	if err := ValidateSameRows(a, c); err != nil {
		return nil, matrixErrorf(opOuterGEMM, err)
	}
	rows, n, m := a.Rows(), a.Cols(), c.Cols()
	out, err := NewDense(rows, n*m)
	if err != nil {
		return nil, matrixErrorf(opOuterGEMM, err)
	}

	if da, okA := a.(*Dense); okA {
		if dc, okC := c.(*Dense); okC {
			var b int
			var col, row, dst *mat.Dense
			for b = 0; b < rows; b++ {
				col = mat.NewDense(n, 1, da.data[b*n:(b+1)*n])
				row = mat.NewDense(1, m, dc.data[b*m:(b+1)*m])
				dst = mat.NewDense(n, m, out.data[b*n*m:(b+1)*n*m])
				dst.Mul(col, row)
			}

			return out, nil
		}
	}

	var b, i, j int
	var av, cv float64
	for b = 0; b < rows; b++ {
		for i = 0; i < n; i++ {
			if av, err = a.At(b, i); err != nil {
				return nil, matrixErrorf(opOuterGEMM, err)
			}
			for j = 0; j < m; j++ {
				if cv, err = c.At(b, j); err != nil {
					return nil, matrixErrorf(opOuterGEMM, err)
				}
				out.data[b*n*m+i*m+j] = av * cv
			}
		}
	}

	return out, nil
}
