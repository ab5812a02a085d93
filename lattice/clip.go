// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"

	"github.com/katalvlaran/lattice/matrix"
)

// ClipInputs clamps every coordinate of in into [0, size_i-1].
// MAIN DESCRIPTION:
//   - Pure: returns new storage of the same variant; in is never modified.
//   - Combined: column c belongs to dimension c mod d, which covers both the
//     batch × d and the batch × (units·d) layouts.
//   - PerDimension: Columns[i] is clamped into [0, size_i-1] as a whole.
//
// Errors:
//   - ErrNilInput, ErrShapeMismatch (Combined width not a multiple of d,
//     wrong list length).
func ClipInputs(in Input, shape *Shape) (Input, error) {
	if shape == nil {
		return nil, latticeErrorf(opClip, ErrNilInput)
	}
	d := shape.Rank()
	switch v := in.(type) {
	case Combined:
		if v.Points == nil {
			return nil, latticeErrorf(opClip, ErrNilInput)
		}
		if v.Points.Cols()%d != 0 {
			return nil, latticeErrorf(opClip, fmt.Errorf("%w: trailing dimension %d is not a multiple of rank %d", ErrShapeMismatch, v.Points.Cols(), d))
		}
		lo, hi := columnBounds(shape, v.Points.Cols())
		pts, err := matrix.ClipColumns(v.Points, lo, hi)
		if err != nil {
			return nil, latticeErrorf(opClip, err)
		}
		return Combined{Points: pts}, nil

	case PerDimension:
		if len(v.Columns) != d {
			return nil, latticeErrorf(opClip, shapeErrorf("len(columns)", len(v.Columns), d))
		}
		cols := make([]*matrix.Dense, d)
		for i, c := range v.Columns {
			if c == nil {
				return nil, latticeErrorf(opClip, fmt.Errorf("%w: columns[%d]", ErrNilInput, i))
			}
			clipped, err := matrix.Clip(c, 0, float64(shape.sizes[i]-1))
			if err != nil {
				return nil, latticeErrorf(opClip, err)
			}
			cols[i] = clipped
		}
		return PerDimension{Columns: cols}, nil

	default:
		return nil, latticeErrorf(opClip, ErrNilInput)
	}
}

// clipPoints clamps a normalized (rows × d) point matrix.
func clipPoints(points *matrix.Dense, shape *Shape) (*matrix.Dense, error) {
	lo, hi := columnBounds(shape, shape.Rank())
	out, err := matrix.ClipColumns(points, lo, hi)
	if err != nil {
		return nil, latticeErrorf(opClip, err)
	}

	return out, nil
}

// columnBounds returns per-column [0, size-1] bounds for width columns laid out
// as repeated groups of d dimensions.
func columnBounds(shape *Shape, width int) (lo, hi []float64) {
	d := shape.Rank()
	lo = make([]float64, width)
	hi = make([]float64, width)
	for c := 0; c < width; c++ {
		hi[c] = float64(shape.sizes[c%d] - 1)
	}

	return lo, hi
}
