// SPDX-License-Identifier: MIT

package lattice

import (
	"github.com/katalvlaran/lattice/matrix"
)

// LinearInitializer builds a VertexCount()×units kernel whose values rise
// linearly from outputMin to outputMax across the constrained dimensions.
// MAIN DESCRIPTION:
//   - Let k be the number of dimensions carrying a monotonicity or unimodality
//     constraint (if none do, every dimension is treated as increasing) and
//     dimRange = (outputMax-outputMin)/k. Each dimension contributes a 1-D ramp:
//     increasing → linspace(0, dimRange, size), decreasing → its reverse,
//     valley → down then up, peak → up then down, unconstrained → zeros.
//   - The ramps are combined with the batched outer SUM (the same routine that
//     produces hypercube weights, with + instead of ×), shifted by outputMin and
//     copied into every unit column.
//
// Behavior highlights:
//   - Deterministic: no randomness.
//   - The vertex with all ramps at their peak holds exactly outputMax.
//
// Inputs:
//   - shape: validated lattice geometry.
//   - outputMin ≤ outputMax, both finite.
//   - monotonicities, unimodalities: nil or one entry per dimension.
//   - units ≥ 1.
//
// Errors:
//   - ErrInvalidConfiguration for a bad range, constraint length, or units.
//
// Complexity:
//   - Time O(V·units), Space O(V·units) with V = shape.VertexCount().
func LinearInitializer(shape *Shape, outputMin, outputMax float64, monotonicities []Monotonicity, unimodalities []Unimodality, units int) (*matrix.Dense, error) {
	if shape == nil {
		return nil, latticeErrorf(opInit, ErrNilInput)
	}
	if units < 1 {
		return nil, latticeErrorf(opInit, configErrorf("units", units))
	}
	if err := validateInitParams(shape, outputMin, outputMax, monotonicities, unimodalities); err != nil {
		return nil, latticeErrorf(opInit, err)
	}

	d := shape.Rank()
	mono := make([]Monotonicity, d)
	copy(mono, monotonicities)
	uni := make([]Unimodality, d)
	copy(uni, unimodalities)

	constrained := 0
	for i := 0; i < d; i++ {
		if mono[i] != MonotonicityNone || uni[i] != UnimodalityNone {
			constrained++
		}
	}
	if constrained == 0 {
		for i := range mono {
			mono[i] = MonotonicityIncreasing
		}
		constrained = d
	}
	dimRange := (outputMax - outputMin) / float64(constrained)

	ramps := make([]*matrix.Dense, d)
	var err error
	for i := 0; i < d; i++ {
		ramps[i], err = matrix.NewDenseFromData(1, shape.Size(i), ramp(shape.Size(i), dimRange, mono[i], uni[i]))
		if err != nil {
			return nil, latticeErrorf(opInit, err)
		}
	}
	// Outer sums never take the GEMM branch, the threshold is irrelevant here.
	vertices, err := batchOuter(ramps, outerAdd, DefaultOuterProductThreshold)
	if err != nil {
		return nil, latticeErrorf(opInit, err)
	}

	kernel, err := matrix.NewDense(shape.VertexCount(), units)
	if err != nil {
		return nil, latticeErrorf(opInit, err)
	}
	values := vertices.RawData()
	if err = kernel.Apply(func(v, _ int, _ float64) float64 {
		return values[v] + outputMin
	}); err != nil {
		return nil, latticeErrorf(opInit, err)
	}

	return kernel, nil
}

// initializeKernel dispatches on the configured scheme.
func initializeKernel(shape *Shape, o Options) (*matrix.Dense, error) {
	if err := o.kernelInit.check(); err != nil {
		return nil, err
	}

	return LinearInitializer(shape, o.outputMin, o.outputMax, o.monotonicities, o.unimodalities, o.units)
}

// ramp returns the 1-D initial values of one dimension.
func ramp(size int, dimRange float64, m Monotonicity, u Unimodality) []float64 {
	switch {
	case m == MonotonicityIncreasing:
		return linspace(0, dimRange, size)
	case m == MonotonicityDecreasing:
		return linspace(dimRange, 0, size)
	case u != UnimodalityNone:
		half := (size + 1) / 2
		down := linspace(dimRange, 0, half)
		up := linspace(0, dimRange, half)
		// Odd sizes share the middle keypoint.
		if u == UnimodalityValley {
			return append(down, up[size%2:]...)
		}
		return append(up, down[size%2:]...)
	default:
		return make([]float64, size)
	}
}

// linspace returns num evenly spaced values from start to stop inclusive.
// The last value is stop exactly.
func linspace(start, stop float64, num int) []float64 {
	out := make([]float64, num)
	if num == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(num-1)
	for i := 0; i < num-1; i++ {
		out[i] = start + float64(i)*step
	}
	out[num-1] = stop

	return out
}
