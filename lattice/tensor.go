// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"

	"github.com/katalvlaran/lattice/matrix"
	"gorgonia.org/tensor"
)

// ForwardTensor evaluates a float64 tensor with an arbitrary leading batch
// shape and returns a tensor with the same leading shape.
//   - units == 1: input [..., d] → output [...].
//   - units  > 1: input [..., units, d] or [..., units·d] → output [..., units].
//
// A rank-1 input (a single query) yields shape [1] when units == 1.
// A leading shape with a zero extent is rejected with ErrShapeMismatch.
// Views are materialized; the input backing is never modified.
func (l *Lattice) ForwardTensor(t *tensor.Dense) (*tensor.Dense, error) {
	if t == nil {
		return nil, latticeErrorf(opTensor, ErrNilInput)
	}
	data, err := float64Backing(t)
	if err != nil {
		return nil, latticeErrorf(opTensor, err)
	}
	lead, err := l.leadingShape(t.Shape(), l.shape.Rank())
	if err != nil {
		return nil, latticeErrorf(opTensor, err)
	}
	batch := volume(lead)
	if batch == 0 {
		return nil, latticeErrorf(opTensor, fmt.Errorf("%w: empty batch %v", ErrShapeMismatch, t.Shape()))
	}
	pts, err := matrix.NewDenseFromData(batch, l.units*l.shape.Rank(), data)
	if err != nil {
		return nil, latticeErrorf(opTensor, err)
	}

	out, err := l.Forward(Combined{Points: pts})
	if err != nil {
		return nil, latticeErrorf(opTensor, err)
	}

	return l.wrapOutput(out, lead), nil
}

// ForwardTensors evaluates the list-of-tensors convention: one float64 tensor
// per dimension, each [..., 1] (units == 1) or [..., units, 1], all sharing the
// same leading shape.
func (l *Lattice) ForwardTensors(ts []*tensor.Dense) (*tensor.Dense, error) {
	d := l.shape.Rank()
	if len(ts) != d {
		return nil, latticeErrorf(opTensors, shapeErrorf("len(tensors)", len(ts), d))
	}

	cols := make([]*matrix.Dense, d)
	var lead tensor.Shape
	for i, t := range ts {
		if t == nil {
			return nil, latticeErrorf(opTensors, fmt.Errorf("%w: tensors[%d]", ErrNilInput, i))
		}
		data, err := float64Backing(t)
		if err != nil {
			return nil, latticeErrorf(opTensors, fmt.Errorf("tensors[%d]: %w", i, err))
		}
		ld, err := l.leadingShape(t.Shape(), 1)
		if err != nil {
			return nil, latticeErrorf(opTensors, fmt.Errorf("tensors[%d]: %w", i, err))
		}
		if i == 0 {
			lead = ld
		} else if !sameShape(ld, lead) {
			return nil, latticeErrorf(opTensors, fmt.Errorf("%w: tensors[%d] leading shape %v, want %v", ErrShapeMismatch, i, ld, lead))
		}
		batch := volume(ld)
		if batch == 0 {
			return nil, latticeErrorf(opTensors, fmt.Errorf("%w: empty batch %v", ErrShapeMismatch, t.Shape()))
		}
		if cols[i], err = matrix.NewDenseFromData(batch, l.units, data); err != nil {
			return nil, latticeErrorf(opTensors, err)
		}
	}

	out, err := l.Forward(PerDimension{Columns: cols})
	if err != nil {
		return nil, latticeErrorf(opTensors, err)
	}

	return l.wrapOutput(out, lead), nil
}

// leadingShape strips the trailing query axes ([width] or [units, width]) and
// returns the batch shape in front of them.
func (l *Lattice) leadingShape(s tensor.Shape, width int) (tensor.Shape, error) {
	n := len(s)
	switch {
	case n >= 1 && s[n-1] == l.units*width:
		return tensor.Shape(append([]int(nil), s[:n-1]...)), nil
	case l.units > 1 && n >= 2 && s[n-2] == l.units && s[n-1] == width:
		return tensor.Shape(append([]int(nil), s[:n-2]...)), nil
	default:
		if l.units == 1 {
			return nil, fmt.Errorf("%w: shape %v, want [..., %d]", ErrShapeMismatch, s, width)
		}
		return nil, fmt.Errorf("%w: shape %v, want [..., %d, %d] or [..., %d]", ErrShapeMismatch, s, l.units, width, l.units*width)
	}
}

// wrapOutput shapes a batch × units result as lead (+ [units] when units > 1).
func (l *Lattice) wrapOutput(out *matrix.Dense, lead tensor.Shape) *tensor.Dense {
	shape := append([]int(nil), lead...)
	if l.units > 1 {
		shape = append(shape, l.units)
	}
	if len(shape) == 0 {
		shape = []int{1}
	}

	return tensor.New(tensor.WithBacking(out.RawData()), tensor.WithShape(shape...))
}

// float64Backing returns the contiguous float64 storage of t.
func float64Backing(t *tensor.Dense) ([]float64, error) {
	if t.Dtype() != tensor.Float64 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDtype, t.Dtype())
	}
	if t.IsView() {
		m, ok := t.Materialize().(*tensor.Dense)
		if !ok {
			return nil, fmt.Errorf("%w: cannot materialize view", ErrUnsupportedDtype)
		}
		t = m
	}
	switch data := t.Data().(type) {
	case []float64:
		return data, nil
	case float64:
		return []float64{data}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedDtype, data)
	}
}

func sameShape(a, b tensor.Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// volume is ∏ s, 1 for the empty shape.
func volume(s tensor.Shape) int {
	v := 1
	for _, n := range s {
		v *= n
	}

	return v
}
