// SPDX-License-Identifier: MIT

// Package lattice: functional configuration for New.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that only record values,
//   - gatherOptions (resolution) and Options.validate (fail-fast checks).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Configuration errors are returned by New, never raised mid-computation.
package lattice

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultOutputMin is the lower end of the initial kernel range.
	DefaultOutputMin = 0.0

	// DefaultOutputMax is the upper end of the initial kernel range.
	DefaultOutputMax = 1.0

	// DefaultKernelInit is the linear initializer.
	DefaultKernelInit = InitLinear

	// DefaultClipInputs clamps queries onto the lattice domain before interpolation.
	DefaultClipInputs = true

	// DefaultInterpolation is multilinear interpolation.
	DefaultInterpolation = Hypercube

	// DefaultUnits is one lattice per call.
	DefaultUnits = 1

	// DefaultOuterProductThreshold is the accumulated width (2^6) above which the
	// batched outer product switches from broadcast-multiply to GEMM.
	DefaultOuterProductThreshold = 64
)

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; New accepts `...Option` and validates the result.
type Options struct {
	outputMin, outputMax float64
	kernelInit           KernelInit
	clipInputs           bool
	interpolation        Interpolation
	units                int
	monotonicities       []Monotonicity // nil ⇒ all none
	unimodalities        []Unimodality  // nil ⇒ all none
	outerThreshold       int
	logger               logrus.FieldLogger
}

// WithOutputRange sets the [min, max] range spread by the linear initializer.
func WithOutputRange(lo, hi float64) Option {
	return func(o *Options) {
		o.outputMin, o.outputMax = lo, hi
	}
}

// WithKernelInit selects the initialization scheme.
func WithKernelInit(k KernelInit) Option {
	return func(o *Options) { o.kernelInit = k }
}

// WithClipInputs toggles clamping of queries into [0, size-1].
// With clipping off, out-of-domain queries extrapolate and weights may leave [0,1].
func WithClipInputs(clip bool) Option {
	return func(o *Options) { o.clipInputs = clip }
}

// WithInterpolation selects hypercube or simplex interpolation.
func WithInterpolation(i Interpolation) Option {
	return func(o *Options) { o.interpolation = i }
}

// WithUnits sets the number of lattices evaluated in parallel (shared geometry,
// separate kernel columns).
func WithUnits(units int) Option {
	return func(o *Options) { o.units = units }
}

// WithMonotonicities declares one Monotonicity per dimension (used by initialization).
func WithMonotonicities(m ...Monotonicity) Option {
	cp := append([]Monotonicity(nil), m...)
	return func(o *Options) { o.monotonicities = cp }
}

// WithUnimodalities declares one Unimodality per dimension (used by initialization).
func WithUnimodalities(u ...Unimodality) Option {
	cp := append([]Unimodality(nil), u...)
	return func(o *Options) { o.unimodalities = cp }
}

// WithOuterProductThreshold sets the accumulated width above which the batched
// outer product uses GEMM instead of broadcast-multiply. Values < 1 are rejected by New.
func WithOuterProductThreshold(n int) Option {
	return func(o *Options) { o.outerThreshold = n }
}

// WithLogger routes construction diagnostics to l. A nil logger restores the default
// (logrus.StandardLogger()).
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.logger = l }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		outputMin:      DefaultOutputMin,
		outputMax:      DefaultOutputMax,
		kernelInit:     DefaultKernelInit,
		clipInputs:     DefaultClipInputs,
		interpolation:  DefaultInterpolation,
		units:          DefaultUnits,
		outerThreshold: DefaultOuterProductThreshold,
		logger:         logrus.StandardLogger(),
	}
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Implementation:
//   - Stage 1: start from defaultOptions().
//   - Stage 2: apply setters in order (last-writer-wins).
//   - Stage 3: restore the default logger when a setter cleared it.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}

	return o
}

// validate enforces every construction invariant against a shape, in a fixed order:
// units → interpolation → kernel init → threshold → output range → constraints.
// The first violation wins.
func (o Options) validate(shape *Shape) error {
	if o.units < 1 {
		return configErrorf("units", o.units)
	}
	if !o.interpolation.valid() {
		return configErrorf("interpolation", o.interpolation)
	}
	if err := o.kernelInit.check(); err != nil {
		return err
	}
	if o.outerThreshold < 1 {
		return configErrorf("outer_product_threshold", o.outerThreshold)
	}

	return validateInitParams(shape, o.outputMin, o.outputMax, o.monotonicities, o.unimodalities)
}

// check reports unknown schemes as configuration errors and the declared but
// unimplemented random monotonic scheme as ErrNotSupported.
func (k KernelInit) check() error {
	switch k {
	case InitLinear:
		return nil
	case InitRandomMonotonic:
		return fmt.Errorf("%w: kernel_init=%s", ErrNotSupported, k)
	default:
		return configErrorf("kernel_init", k)
	}
}

// validateInitParams checks the output range and the per-dimension constraints.
func validateInitParams(shape *Shape, outMin, outMax float64, mono []Monotonicity, uni []Unimodality) error {
	if math.IsNaN(outMin) || math.IsInf(outMin, 0) {
		return configErrorf("output_min", outMin)
	}
	if math.IsNaN(outMax) || math.IsInf(outMax, 0) {
		return configErrorf("output_max", outMax)
	}
	if outMin > outMax {
		return configErrorf("output_range", fmt.Sprintf("[%g, %g]", outMin, outMax))
	}
	d := shape.Rank()
	if mono != nil && len(mono) != d {
		return configErrorf("len(monotonicities)", fmt.Sprintf("%d (rank %d)", len(mono), d))
	}
	if uni != nil && len(uni) != d {
		return configErrorf("len(unimodalities)", fmt.Sprintf("%d (rank %d)", len(uni), d))
	}
	for i, m := range mono {
		if !m.valid() {
			return configErrorf(fmt.Sprintf("monotonicities[%d]", i), m)
		}
	}
	for i, u := range uni {
		if !u.valid() {
			return configErrorf(fmt.Sprintf("unimodalities[%d]", i), u)
		}
		if u != UnimodalityNone && mono != nil && mono[i] != MonotonicityNone {
			return configErrorf(fmt.Sprintf("dimension %d", i), "both monotonic and unimodal")
		}
	}

	return nil
}
