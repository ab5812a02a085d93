// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lattice/matrix"
)

// SimplexWeights is the sparse result of simplex interpolation: for every
// query row exactly Rank+1 (vertex index, weight) pairs.
//   - Indices[r*(Rank+1)+k] is a flat kernel row (see Shape.FlatIndex).
//   - Weights[r*(Rank+1)+k] is its weight; for in-domain queries the weights of
//     a row are non-negative and sum to 1.
//
// Rows are ordered like the normalized query: row b·units+u is unit u of example b.
type SimplexWeights struct {
	Rows    int
	Rank    int
	Indices []int
	Weights []float64
}

// Vertex returns the k-th (index, weight) pair of row r (0 ≤ k ≤ Rank).
func (s *SimplexWeights) Vertex(r, k int) (int, float64) {
	at := r*(s.Rank+1) + k
	return s.Indices[at], s.Weights[at]
}

// Dense scatters the sparse weights into a Rows × vertexCount matrix.
// Indices within a row are strictly increasing, so no two pairs collide.
func (s *SimplexWeights) Dense(vertexCount int) (*matrix.Dense, error) {
	out, err := matrix.NewDense(s.Rows, vertexCount)
	if err != nil {
		return nil, latticeErrorf(opSimplexScat, err)
	}
	data, n := out.RawData(), s.Rank+1
	for r := 0; r < s.Rows; r++ {
		for k := 0; k < n; k++ {
			idx := s.Indices[r*n+k]
			if idx < 0 || idx >= vertexCount {
				return nil, latticeErrorf(opSimplexScat, fmt.Errorf("%w: vertex %d outside [0,%d)", ErrShapeMismatch, idx, vertexCount))
			}
			data[r*vertexCount+idx] += s.Weights[r*n+k]
		}
	}

	return out, nil
}

// simplexWeights selects the d+1 vertices of the simplex enclosing each row of
// a (rows × d) point matrix.
// MAIN DESCRIPTION:
//   - The unit cell containing a point is split into d! simplices, one per
//     ordering of the fractional coordinates. Sorting the fractions in
//     descending order identifies the simplex; walking from the lower corner
//     along the sorted dimensions visits its d+1 vertices.
//
// Implementation:
//   - Stage 1 (non-binary lattices): lower corner lcᵢ = floor(xᵢ) clamped into
//     [0, sizeᵢ-2]; corner += lcᵢ·strideᵢ; xᵢ -= lcᵢ. Binary lattices always
//     have corner 0, so the stage is skipped.
//   - Stage 2: stable descending argsort of the fractions (ties keep the lower
//     dimension first).
//   - Stage 3: weights are successive differences of [1, sorted..., 0].
//   - Stage 4: indices are the running sum corner, +stride[perm[0]], ….
//
// Complexity:
//   - Time O(rows·d·log d), Space O(rows·d).
func simplexWeights(points *matrix.Dense, shape *Shape) (*SimplexWeights, error) {
	d := shape.Rank()
	if points.Cols() != d {
		return nil, latticeErrorf(opInterpolate, shapeErrorf("point width", points.Cols(), d))
	}
	rows, n := points.Rows(), d+1
	sw := &SimplexWeights{
		Rows:    rows,
		Rank:    d,
		Indices: make([]int, rows*n),
		Weights: make([]float64, rows*n),
	}
	src := points.RawData()
	frac := make([]float64, d)
	perm := make([]int, d)
	byFrac := func(a, b int) bool { return frac[perm[a]] > frac[perm[b]] }

	var r, i, k, corner, lc int
	for r = 0; r < rows; r++ {
		copy(frac, src[r*d:(r+1)*d])
		corner = 0
		if !shape.allBinary {
			for i = 0; i < d; i++ {
				lc = lowerCorner(frac[i], shape.sizes[i])
				corner += lc * shape.strides[i]
				frac[i] -= float64(lc)
			}
		}

		for i = range perm {
			perm[i] = i
		}
		sort.SliceStable(perm, byFrac)

		idx := sw.Indices[r*n : (r+1)*n]
		w := sw.Weights[r*n : (r+1)*n]
		prev := 1.0
		idx[0] = corner
		for k = 0; k < d; k++ {
			w[k] = prev - frac[perm[k]]
			prev = frac[perm[k]]
			idx[k+1] = idx[k] + shape.strides[perm[k]]
		}
		w[d] = prev
	}

	return sw, nil
}

// lowerCorner is floor(x) clamped so that corner+1 stays a keypoint.
func lowerCorner(x float64, size int) int {
	f := math.Floor(x)
	switch {
	case f < 0 || math.IsNaN(f):
		return 0
	case f > float64(size-2):
		return size - 2
	default:
		return int(f)
	}
}

// gather computes out[b,u] = Σₖ weightₖ · kernel[indexₖ, u] for row b·units+u.
func gather(sw *SimplexWeights, kernel *matrix.Dense, batch, units int) (*matrix.Dense, error) {
	if sw.Rows != batch*units {
		return nil, latticeErrorf(opContract, shapeErrorf("simplex rows", sw.Rows, batch*units))
	}
	out, err := matrix.NewDense(batch, units)
	if err != nil {
		return nil, latticeErrorf(opContract, err)
	}
	k, o := kernel.RawData(), out.RawData()
	n := sw.Rank + 1

	var row, j, u int
	var acc float64
	for row = 0; row < sw.Rows; row++ {
		u = row % units
		acc = 0
		for j = 0; j < n; j++ {
			acc += sw.Weights[row*n+j] * k[sw.Indices[row*n+j]*units+u]
		}
		o[row] = acc
	}

	return out, nil
}
