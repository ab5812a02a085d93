// SPDX-License-Identifier: MIT

// Package lattice: sentinel error set.
// Configuration errors surface from New/NewShape/LinearInitializer and never
// mid-computation; shape errors surface from Forward and friends.
package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration marks a bad construction parameter: a lattice size
	// below 2, an unknown interpolation or kernel-init value, units < 1, an empty
	// or reversed output range, or constraint slices of the wrong length.
	ErrInvalidConfiguration = errors.New("lattice: invalid configuration")

	// ErrNotSupported marks a declared but unimplemented feature
	// (random monotonic initialization). It never degrades to another scheme.
	ErrNotSupported = errors.New("lattice: not supported")

	// ErrShapeMismatch marks a query whose trailing width or list length does
	// not match the lattice rank (times units), or a kernel of the wrong shape.
	ErrShapeMismatch = errors.New("lattice: shape mismatch")

	// ErrNilInput marks a nil query, nil column, or nil kernel.
	ErrNilInput = errors.New("lattice: nil input")

	// ErrUnsupportedDtype marks a tensor whose element type is not float64.
	ErrUnsupportedDtype = errors.New("lattice: unsupported tensor dtype")
)

// Operation tags for error wrapping.
const (
	opNew         = "New"
	opNewShape    = "NewShape"
	opForward     = "Forward"
	opWeights     = "Weights"
	opSimplex     = "SimplexWeights"
	opClip        = "ClipInputs"
	opInit        = "LinearInitializer"
	opSetKernel   = "SetKernel"
	opVertexValue = "VertexValue"
	opTensor      = "ForwardTensor"
	opTensors     = "ForwardTensors"
	opBatchOuter  = "batchOuter"
	opFlatIndex   = "FlatIndex"
	opCoordinates = "Coordinates"
	opParseEnum   = "Parse"
	opNormalize   = "normalize"
	opInterpolate = "interpolate"
	opContract    = "contract"
	opSimplexScat = "SimplexWeights.Dense"
	opRunWeights  = "runWeights"
)

// latticeErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Use only when err != nil.
func latticeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// configErrorf names the offending parameter and its value.
func configErrorf(param string, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidConfiguration, param, value)
}

// shapeErrorf reports a got/want mismatch for a named quantity.
func shapeErrorf(what string, got, want int) error {
	return fmt.Errorf("%w: %s=%d, want %d", ErrShapeMismatch, what, got, want)
}
