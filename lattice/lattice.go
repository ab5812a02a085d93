// SPDX-License-Identifier: MIT

package lattice

import (
	"github.com/katalvlaran/lattice/matrix"
	"github.com/sirupsen/logrus"
)

// Lattice is an interpolated lookup table over a d-dimensional grid of
// trainable vertices, evaluated for batches of query points.
//
// Geometry and configuration are immutable after New. The kernel is a plain
// read/write buffer owned jointly with the caller (see Kernel). Concurrent
// Forward calls are safe as long as nobody writes the kernel meanwhile.
type Lattice struct {
	shape          *Shape
	units          int
	interpolation  Interpolation
	clip           bool
	outMin, outMax float64
	outerThreshold int
	kernel         *matrix.Dense
}

// New validates sizes and opts, then initializes the kernel.
// MAIN DESCRIPTION:
//   - Every configuration problem is reported here, before any kernel memory
//     is touched by interpolation.
//
// Implementation:
//   - Stage 1: NewShape(sizes).
//   - Stage 2: gatherOptions + Options.validate (units, interpolation, init
//     scheme, threshold, output range, constraints).
//   - Stage 3: initializeKernel; log the resulting configuration at Debug.
//
// Errors:
//   - ErrInvalidConfiguration naming the parameter and value.
//   - ErrNotSupported for InitRandomMonotonic.
func New(sizes []int, opts ...Option) (*Lattice, error) {
	shape, err := NewShape(sizes)
	if err != nil {
		return nil, latticeErrorf(opNew, err)
	}
	o := gatherOptions(opts...)
	if err = o.validate(shape); err != nil {
		return nil, latticeErrorf(opNew, err)
	}
	kernel, err := initializeKernel(shape, o)
	if err != nil {
		return nil, latticeErrorf(opNew, err)
	}

	l := &Lattice{
		shape:          shape,
		units:          o.units,
		interpolation:  o.interpolation,
		clip:           o.clipInputs,
		outMin:         o.outputMin,
		outMax:         o.outputMax,
		outerThreshold: o.outerThreshold,
		kernel:         kernel,
	}
	log := o.logger.WithFields(logrus.Fields{
		"sizes":         shape.sizes,
		"vertices":      shape.vertexCount,
		"units":         o.units,
		"interpolation": o.interpolation.String(),
		"kernel_init":   o.kernelInit.String(),
		"clip_inputs":   o.clipInputs,
	})
	log.Debug("lattice constructed")
	if !o.clipInputs {
		log.Debug("input clipping disabled: out-of-domain queries extrapolate and weights may leave [0,1]")
	}

	return l, nil
}

// Forward evaluates in and returns batch × Units() outputs.
// MAIN DESCRIPTION:
//   - normalize → clip (if enabled) → weights (hypercube or simplex) → contract.
//   - The batch must be non-empty: matrix.Dense has no zero-row form, so an
//     empty query cannot be built and ForwardTensor rejects a zero-volume
//     leading shape.
//
// Errors:
//   - ErrNilInput, ErrShapeMismatch for a malformed query.
//
// Complexity:
//   - Hypercube: O(batch·units·∏sizes). Simplex: O(batch·units·d·log d).
func (l *Lattice) Forward(in Input) (*matrix.Dense, error) {
	pts, batch, err := l.points(in)
	if err != nil {
		return nil, latticeErrorf(opForward, err)
	}

	var out *matrix.Dense
	switch l.interpolation {
	case Simplex:
		sw, werr := simplexWeights(pts, l.shape)
		if werr != nil {
			return nil, latticeErrorf(opForward, werr)
		}
		out, err = gather(sw, l.kernel, batch, l.units)
	default:
		w, werr := hypercubeWeights(pts, l.shape, l.outerThreshold)
		if werr != nil {
			return nil, latticeErrorf(opForward, werr)
		}
		out, err = contract(w, l.kernel, batch, l.units)
	}
	if err != nil {
		return nil, latticeErrorf(opForward, err)
	}

	return out, nil
}

// Weights returns the dense (batch·units) × VertexCount() interpolation
// weights under the configured mode. Row b·units+u belongs to unit u of example
// b. This is also the derivative of each output with respect to the kernel.
func (l *Lattice) Weights(in Input) (*matrix.Dense, error) {
	pts, _, err := l.points(in)
	if err != nil {
		return nil, latticeErrorf(opWeights, err)
	}
	if l.interpolation == Simplex {
		sw, serr := simplexWeights(pts, l.shape)
		if serr != nil {
			return nil, latticeErrorf(opWeights, serr)
		}
		w, serr := sw.Dense(l.shape.vertexCount)
		if serr != nil {
			return nil, latticeErrorf(opWeights, serr)
		}
		return w, nil
	}
	w, err := hypercubeWeights(pts, l.shape, l.outerThreshold)
	if err != nil {
		return nil, latticeErrorf(opWeights, err)
	}

	return w, nil
}

// SimplexWeights returns the sparse simplex weights of in, regardless of the
// configured interpolation mode.
func (l *Lattice) SimplexWeights(in Input) (*SimplexWeights, error) {
	pts, _, err := l.points(in)
	if err != nil {
		return nil, latticeErrorf(opSimplex, err)
	}
	sw, err := simplexWeights(pts, l.shape)
	if err != nil {
		return nil, latticeErrorf(opSimplex, err)
	}

	return sw, nil
}

// Shape returns the lattice geometry.
func (l *Lattice) Shape() *Shape { return l.shape }

// Units is the number of lattices evaluated in parallel.
func (l *Lattice) Units() int { return l.units }

// Interpolation is the configured weighting scheme.
func (l *Lattice) Interpolation() Interpolation { return l.interpolation }

// ClipInputs reports whether queries are clamped into the lattice domain.
func (l *Lattice) ClipInputs() bool { return l.clip }

// OutputRange is the [min, max] range the kernel was initialized over.
func (l *Lattice) OutputRange() (lo, hi float64) { return l.outMin, l.outMax }

// points normalizes and, if enabled, clips a query.
func (l *Lattice) points(in Input) (*matrix.Dense, int, error) {
	return preparePoints(in, l.shape, l.units, l.clip)
}

// ComputeHypercubeWeights returns dense multilinear weights for in without a
// Lattice: (batch·units) × shape.VertexCount().
func ComputeHypercubeWeights(shape *Shape, in Input, units int, clip bool) (*matrix.Dense, error) {
	if shape == nil {
		return nil, latticeErrorf(opWeights, ErrNilInput)
	}
	pts, _, err := preparePoints(in, shape, units, clip)
	if err != nil {
		return nil, latticeErrorf(opWeights, err)
	}
	w, err := hypercubeWeights(pts, shape, DefaultOuterProductThreshold)
	if err != nil {
		return nil, latticeErrorf(opWeights, err)
	}

	return w, nil
}

// ComputeSimplexWeights returns sparse simplex weights for in without a Lattice.
func ComputeSimplexWeights(shape *Shape, in Input, units int, clip bool) (*SimplexWeights, error) {
	if shape == nil {
		return nil, latticeErrorf(opSimplex, ErrNilInput)
	}
	pts, _, err := preparePoints(in, shape, units, clip)
	if err != nil {
		return nil, latticeErrorf(opSimplex, err)
	}
	sw, err := simplexWeights(pts, shape)
	if err != nil {
		return nil, latticeErrorf(opSimplex, err)
	}

	return sw, nil
}

func preparePoints(in Input, shape *Shape, units int, clip bool) (*matrix.Dense, int, error) {
	if units < 1 {
		return nil, 0, configErrorf("units", units)
	}
	pts, batch, err := normalize(in, shape, units)
	if err != nil {
		return nil, 0, err
	}
	if clip {
		if pts, err = clipPoints(pts, shape); err != nil {
			return nil, 0, err
		}
	}

	return pts, batch, nil
}
