// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"

	"github.com/katalvlaran/lattice/matrix"
)

// Kernel returns the live VertexCount() × Units() parameter buffer.
// It is shared, not copied: a training collaborator may update it between
// Forward calls, under its own synchronization.
func (l *Lattice) Kernel() *matrix.Dense { return l.kernel }

// SetKernel replaces the kernel with k (adopted, not copied).
// Errors: ErrNilInput, ErrShapeMismatch when k is not VertexCount() × Units().
func (l *Lattice) SetKernel(k *matrix.Dense) error {
	if k == nil {
		return latticeErrorf(opSetKernel, ErrNilInput)
	}
	if k.Rows() != l.shape.VertexCount() {
		return latticeErrorf(opSetKernel, shapeErrorf("kernel rows", k.Rows(), l.shape.VertexCount()))
	}
	if k.Cols() != l.units {
		return latticeErrorf(opSetKernel, shapeErrorf("kernel cols", k.Cols(), l.units))
	}
	l.kernel = k

	return nil
}

// VertexValue reads the kernel entry of the vertex at coords for one unit.
func (l *Lattice) VertexValue(coords []int, unit int) (float64, error) {
	if unit < 0 || unit >= l.units {
		return 0, latticeErrorf(opVertexValue, fmt.Errorf("%w: unit=%d outside [0,%d)", ErrShapeMismatch, unit, l.units))
	}
	row, err := l.shape.FlatIndex(coords)
	if err != nil {
		return 0, latticeErrorf(opVertexValue, err)
	}
	v, err := l.kernel.At(row, unit)
	if err != nil {
		return 0, latticeErrorf(opVertexValue, err)
	}

	return v, nil
}
