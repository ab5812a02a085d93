// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"math"
)

// MinLatticeSize is the smallest number of keypoints per dimension.
const MinLatticeSize = 2

// Shape is the validated, immutable geometry of a lattice.
//   - sizes[i] ≥ 2 keypoints along dimension i.
//   - strides are row-major (last dimension fastest): strides[d-1] = 1,
//     strides[i] = strides[i+1]*sizes[i+1].
//   - vertexCount = ∏ sizes.
type Shape struct {
	sizes       []int
	strides     []int
	vertexCount int
	allBinary   bool
}

// NewShape validates sizes and derives strides.
// MAIN DESCRIPTION:
//   - Deep-copies sizes, so later mutation of the caller's slice has no effect.
//
// Implementation:
//   - Stage 1: reject an empty list and any size < 2.
//   - Stage 2: suffix products for strides, overflow-checked vertex count.
//
// Errors:
//   - ErrInvalidConfiguration naming the offending dimension and value.
//
// Complexity:
//   - Time O(d), Space O(d).
func NewShape(sizes []int) (*Shape, error) {
	d := len(sizes)
	if d == 0 {
		return nil, latticeErrorf(opNewShape, configErrorf("lattice_sizes", "[]"))
	}
	for i, s := range sizes {
		if s < MinLatticeSize {
			return nil, latticeErrorf(opNewShape, configErrorf(fmt.Sprintf("lattice_sizes[%d]", i), s))
		}
	}

	sh := &Shape{
		sizes:     append([]int(nil), sizes...),
		strides:   make([]int, d),
		allBinary: true,
	}
	stride := 1
	for i := d - 1; i >= 0; i-- {
		sh.strides[i] = stride
		if sh.sizes[i] != 2 {
			sh.allBinary = false
		}
		if stride > math.MaxInt/sh.sizes[i] {
			return nil, latticeErrorf(opNewShape, configErrorf("lattice_sizes", fmt.Sprintf("%v (vertex count overflows int)", sizes)))
		}
		stride *= sh.sizes[i]
	}
	sh.vertexCount = stride

	return sh, nil
}

// Uniform returns rank copies of size, the common "same keypoints everywhere" layout.
func Uniform(rank, size int) []int {
	out := make([]int, rank)
	for i := range out {
		out[i] = size
	}

	return out
}

// Rank is the input dimensionality d.
func (s *Shape) Rank() int { return len(s.sizes) }

// Sizes returns a copy of the per-dimension keypoint counts.
func (s *Shape) Sizes() []int { return append([]int(nil), s.sizes...) }

// Size returns the keypoint count of dimension i (no bounds check beyond the slice's).
func (s *Shape) Size(i int) int { return s.sizes[i] }

// Strides returns a copy of the row-major strides.
func (s *Shape) Strides() []int { return append([]int(nil), s.strides...) }

// VertexCount is ∏ sizes, the number of kernel rows.
func (s *Shape) VertexCount() int { return s.vertexCount }

// AllBinary reports whether every dimension has exactly 2 keypoints.
func (s *Shape) AllBinary() bool { return s.allBinary }

// FlatIndex maps integer vertex coordinates to the kernel row Σ coordᵢ·strideᵢ.
// Errors: ErrShapeMismatch for a wrong length or an out-of-range coordinate.
func (s *Shape) FlatIndex(coords []int) (int, error) {
	if len(coords) != len(s.sizes) {
		return 0, latticeErrorf(opFlatIndex, shapeErrorf("len(coords)", len(coords), len(s.sizes)))
	}
	flat := 0
	for i, c := range coords {
		if c < 0 || c >= s.sizes[i] {
			return 0, latticeErrorf(opFlatIndex, fmt.Errorf("%w: coords[%d]=%d outside [0,%d]", ErrShapeMismatch, i, c, s.sizes[i]-1))
		}
		flat += c * s.strides[i]
	}

	return flat, nil
}

// Coordinates is the inverse of FlatIndex.
func (s *Shape) Coordinates(flat int) ([]int, error) {
	if flat < 0 || flat >= s.vertexCount {
		return nil, latticeErrorf(opCoordinates, fmt.Errorf("%w: flat=%d outside [0,%d]", ErrShapeMismatch, flat, s.vertexCount-1))
	}
	coords := make([]int, len(s.sizes))
	for i, st := range s.strides {
		coords[i] = flat / st
		flat -= coords[i] * st
	}

	return coords, nil
}

// String renders the sizes, e.g. "Shape[3 3 2]".
func (s *Shape) String() string { return fmt.Sprintf("Shape%v", s.sizes) }
