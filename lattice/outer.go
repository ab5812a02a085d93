// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"

	"github.com/katalvlaran/lattice/matrix"
)

// outerOp selects how the batched outer operation combines entries.
type outerOp int

const (
	outerMultiply outerOp = iota // tensor-product weights
	outerAdd                     // outer sums (linear initializer)
)

// batchOuter combines B×n₀, B×n₁, ... into one B×∏nᵢ matrix, dimension by
// dimension, with the earlier dimension varying slowest:
//
//	out[b, i·m + j] = acc[b, i] ∘ v[b, j]
//
// MAIN DESCRIPTION:
//   - Shared by interpolation (∘ = ×) and linear initialization (∘ = +), so the
//     flattened column order always matches the row-major vertex strides.
//
// Implementation:
//   - Stage 1: start from vectors[0].
//   - Stage 2: for each next vector, use elementwise broadcast while the new
//     accumulated width stays ≤ threshold; once it would exceed the threshold,
//     multiply switches to a per-row (n×1)·(1×m) GEMM. Addition always broadcasts.
//
// Complexity:
//   - Time O(B·∏nᵢ) (the final width dominates), Space O(B·∏nᵢ).
//
// Notes:
//   - The switch only changes how values are produced, not the values.
func batchOuter(vectors []*matrix.Dense, op outerOp, threshold int) (*matrix.Dense, error) {
	if len(vectors) == 0 {
		return nil, latticeErrorf(opBatchOuter, fmt.Errorf("%w: no vectors", ErrShapeMismatch))
	}
	var fn matrix.BinaryOp
	switch op {
	case outerMultiply:
		fn = matrix.OpMultiply
	case outerAdd:
		fn = matrix.OpAdd
	default:
		return nil, latticeErrorf(opBatchOuter, configErrorf("outer_op", int(op)))
	}

	acc := vectors[0]
	var err error
	for _, v := range vectors[1:] {
		if op == outerMultiply && acc.Cols()*v.Cols() > threshold {
			acc, err = matrix.OuterRowsGEMM(acc, v)
		} else {
			acc, err = matrix.OuterRows(acc, v, fn)
		}
		if err != nil {
			return nil, latticeErrorf(opBatchOuter, err)
		}
	}

	return acc, nil
}
