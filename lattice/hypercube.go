// SPDX-License-Identifier: MIT

package lattice

import (
	"math"

	"github.com/katalvlaran/lattice/matrix"
)

// hypercubeWeights computes dense multilinear weights for a (rows × d) point
// matrix, returning rows × VertexCount().
// MAIN DESCRIPTION:
//   - Every dimension yields a rows × size matrix of 1-D hat weights; their
//     batched outer product, in dimension order, is the weight of each vertex.
//
// Implementation:
//   - Stage 1: all-binary lattices take [1-x, x] for every dimension.
//   - Stage 2: otherwise dimensions are grouped into runs of equal size and each
//     run is evaluated in one pass with 1 - min(|x-k|, 1) against the shared
//     keypoints 0..size-1.
//   - Stage 3: batchOuter(…, outerMultiply, threshold).
//
// Behavior highlights:
//   - In-domain rows are convex combinations: entries in [0,1], row sum 1.
//   - Out-of-domain rows (clipping disabled) extrapolate linearly on all-binary
//     lattices, where weights may be negative or exceed 1. Hat weights in the
//     general path saturate at 0 instead.
//
// Complexity:
//   - Time O(rows·∏sizes), Space O(rows·∏sizes).
func hypercubeWeights(points *matrix.Dense, shape *Shape, threshold int) (*matrix.Dense, error) {
	d := shape.Rank()
	if points.Cols() != d {
		return nil, latticeErrorf(opInterpolate, shapeErrorf("point width", points.Cols(), d))
	}

	perDim := make([]*matrix.Dense, 0, d)
	for start := 0; start < d; {
		size := shape.Size(start)
		end := d
		if !shape.AllBinary() {
			end = start + 1
			for end < d && shape.Size(end) == size {
				end++
			}
		}
		run, err := runWeights(points, start, end, size, shape.AllBinary())
		if err != nil {
			return nil, latticeErrorf(opInterpolate, err)
		}
		perDim = append(perDim, run...)
		start = end
	}

	w, err := batchOuter(perDim, outerMultiply, threshold)
	if err != nil {
		return nil, latticeErrorf(opInterpolate, err)
	}

	return w, nil
}

// runWeights returns the rows × size weights of columns [start, end), which
// all share the same size, filled in a single pass over the points.
// binary selects the [1-x, x] pair of the all-binary fast path.
func runWeights(points *matrix.Dense, start, end, size int, binary bool) ([]*matrix.Dense, error) {
	rows, d := points.Rows(), points.Cols()
	run := make([]*matrix.Dense, end-start)
	dst := make([][]float64, end-start)
	for i := range run {
		m, err := matrix.NewDense(rows, size)
		if err != nil {
			return nil, latticeErrorf(opRunWeights, err)
		}
		run[i], dst[i] = m, m.RawData()
	}
	src := points.RawData()

	var r, i, k int
	var x float64
	for r = 0; r < rows; r++ {
		for i = start; i < end; i++ {
			x = src[r*d+i]
			out := dst[i-start][r*size : (r+1)*size]
			if binary {
				out[0], out[1] = 1-x, x
				continue
			}
			for k = 0; k < size; k++ {
				out[k] = 1 - math.Min(math.Abs(x-float64(k)), 1)
			}
		}
	}

	return run, nil
}

// contract reduces (batch·units) × V weights against a V × units kernel into
// batch × units outputs.
//   - units == 1: one GEMM, weights · kernel.
//   - units  > 1: row b·units+u is dotted with kernel column u.
func contract(weights, kernel *matrix.Dense, batch, units int) (*matrix.Dense, error) {
	if units == 1 {
		out, err := matrix.Mul(weights, kernel)
		if err != nil {
			return nil, latticeErrorf(opContract, err)
		}
		return out.(*matrix.Dense), nil
	}

	v := kernel.Rows()
	if weights.Rows() != batch*units || weights.Cols() != v {
		return nil, latticeErrorf(opContract, shapeErrorf("weight rows", weights.Rows(), batch*units))
	}
	out, err := matrix.NewDense(batch, units)
	if err != nil {
		return nil, latticeErrorf(opContract, err)
	}
	w, k, o := weights.RawData(), kernel.RawData(), out.RawData()

	var row, u, j int
	var acc float64
	for row = 0; row < batch*units; row++ {
		u = row % units
		acc = 0
		for j = 0; j < v; j++ {
			acc += w[row*v+j] * k[j*units+u]
		}
		o[row] = acc
	}

	return out, nil
}
