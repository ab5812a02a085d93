// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"

	"github.com/katalvlaran/lattice/matrix"
)

// Input is a batch of query points in one of the two calling conventions.
// It is a closed union: Combined or PerDimension.
type Input interface {
	isInput()
}

// Combined carries all coordinates in one matrix.
//   - units == 1: Points is batch × d.
//   - units  > 1: Points is batch × (units·d), unit-major: columns
//     [u·d, (u+1)·d) hold the query for unit u.
type Combined struct {
	Points *matrix.Dense
}

// PerDimension carries one matrix per dimension, each batch × units.
type PerDimension struct {
	Columns []*matrix.Dense
}

func (Combined) isInput()     {}
func (PerDimension) isInput() {}

// normalize validates in and returns it as a (batch·units) × d point matrix
// plus the batch size. Combined input with a matching layout is reinterpreted
// without copying; the result must be treated as read-only.
func normalize(in Input, shape *Shape, units int) (*matrix.Dense, int, error) {
	d := shape.Rank()
	switch v := in.(type) {
	case Combined:
		if v.Points == nil {
			return nil, 0, latticeErrorf(opNormalize, ErrNilInput)
		}
		if v.Points.Cols() != units*d {
			return nil, 0, latticeErrorf(opNormalize, shapeErrorf("trailing dimension", v.Points.Cols(), units*d))
		}
		batch := v.Points.Rows()
		pts, err := matrix.NewDenseFromData(batch*units, d, v.Points.RawData())
		if err != nil {
			return nil, 0, latticeErrorf(opNormalize, err)
		}
		return pts, batch, nil

	case PerDimension:
		if len(v.Columns) != d {
			return nil, 0, latticeErrorf(opNormalize, shapeErrorf("len(columns)", len(v.Columns), d))
		}
		batch := -1
		for i, c := range v.Columns {
			if c == nil {
				return nil, 0, latticeErrorf(opNormalize, fmt.Errorf("%w: columns[%d]", ErrNilInput, i))
			}
			if c.Cols() != units {
				return nil, 0, latticeErrorf(opNormalize, shapeErrorf(fmt.Sprintf("columns[%d] trailing dimension", i), c.Cols(), units))
			}
			if batch < 0 {
				batch = c.Rows()
			} else if c.Rows() != batch {
				return nil, 0, latticeErrorf(opNormalize, shapeErrorf(fmt.Sprintf("columns[%d] rows", i), c.Rows(), batch))
			}
		}
		pts, err := matrix.NewDense(batch*units, d)
		if err != nil {
			return nil, 0, latticeErrorf(opNormalize, err)
		}
		out := pts.RawData()
		for i, c := range v.Columns {
			src := c.RawData()
			for r := range src { // r = b·units + u
				out[r*d+i] = src[r]
			}
		}
		return pts, batch, nil

	case nil:
		return nil, 0, latticeErrorf(opNormalize, ErrNilInput)

	default:
		return nil, 0, latticeErrorf(opNormalize, fmt.Errorf("%w: unknown input type %T", ErrShapeMismatch, in))
	}
}
