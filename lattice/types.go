// SPDX-License-Identifier: MIT

// Package lattice: enum types for interpolation mode, kernel initialization
// and per-dimension shape constraints. Each enum has a String form and a
// Parse function accepting the lower-case spellings used in configs.
package lattice

import (
	"fmt"
	"strings"
)

// Interpolation selects how query points are weighted against vertices.
type Interpolation int

const (
	// Hypercube weights every corner of the enclosing cell (multilinear).
	Hypercube Interpolation = iota
	// Simplex weights the d+1 corners of the enclosing simplex.
	Simplex
)

// KernelInit selects the kernel initialization scheme.
type KernelInit int

const (
	// InitLinear spreads [outputMin, outputMax] linearly over constrained dimensions.
	InitLinear KernelInit = iota
	// InitRandomMonotonic is declared but not implemented; New fails with ErrNotSupported.
	InitRandomMonotonic
)

// Monotonicity declares how the output may vary along one dimension.
type Monotonicity int

const (
	MonotonicityNone Monotonicity = iota
	MonotonicityIncreasing
	MonotonicityDecreasing
)

// Unimodality declares a single-extremum shape along one dimension.
type Unimodality int

const (
	UnimodalityNone Unimodality = iota
	// UnimodalityValley decreases then increases.
	UnimodalityValley
	// UnimodalityPeak increases then decreases.
	UnimodalityPeak
)

var (
	interpolationNames = map[Interpolation]string{Hypercube: "hypercube", Simplex: "simplex"}
	kernelInitNames    = map[KernelInit]string{InitLinear: "linear", InitRandomMonotonic: "random_monotonic"}
	monotonicityNames  = map[Monotonicity]string{
		MonotonicityNone:       "none",
		MonotonicityIncreasing: "increasing",
		MonotonicityDecreasing: "decreasing",
	}
	unimodalityNames = map[Unimodality]string{
		UnimodalityNone:   "none",
		UnimodalityValley: "valley",
		UnimodalityPeak:   "peak",
	}
)

func (i Interpolation) String() string {
	if n, ok := interpolationNames[i]; ok {
		return n
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

func (k KernelInit) String() string {
	if n, ok := kernelInitNames[k]; ok {
		return n
	}
	return fmt.Sprintf("KernelInit(%d)", int(k))
}

func (m Monotonicity) String() string {
	if n, ok := monotonicityNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Monotonicity(%d)", int(m))
}

func (u Unimodality) String() string {
	if n, ok := unimodalityNames[u]; ok {
		return n
	}
	return fmt.Sprintf("Unimodality(%d)", int(u))
}

func (i Interpolation) valid() bool {
	_, ok := interpolationNames[i]
	return ok
}

func (k KernelInit) valid() bool {
	_, ok := kernelInitNames[k]
	return ok
}

func (m Monotonicity) valid() bool {
	_, ok := monotonicityNames[m]
	return ok
}

func (u Unimodality) valid() bool {
	_, ok := unimodalityNames[u]
	return ok
}

// ParseInterpolation accepts "hypercube" or "simplex" (case-insensitive).
func ParseInterpolation(s string) (Interpolation, error) {
	return parseEnum(interpolationNames, s, "interpolation")
}

// ParseKernelInit accepts "linear" or "random_monotonic" (case-insensitive).
func ParseKernelInit(s string) (KernelInit, error) {
	return parseEnum(kernelInitNames, s, "kernel_init")
}

// ParseMonotonicity accepts "none", "increasing" or "decreasing".
// The numeric spellings "0", "1" and "-1" are accepted as well.
func ParseMonotonicity(s string) (Monotonicity, error) {
	switch strings.TrimSpace(s) {
	case "0":
		return MonotonicityNone, nil
	case "1":
		return MonotonicityIncreasing, nil
	case "-1":
		return MonotonicityDecreasing, nil
	}

	return parseEnum(monotonicityNames, s, "monotonicity")
}

// ParseUnimodality accepts "none", "valley" or "peak".
func ParseUnimodality(s string) (Unimodality, error) {
	return parseEnum(unimodalityNames, s, "unimodality")
}

func parseEnum[E comparable](names map[E]string, s, param string) (E, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for v, n := range names {
		if n == want {
			return v, nil
		}
	}
	var zero E

	return zero, latticeErrorf(opParseEnum, configErrorf(param, fmt.Sprintf("%q", s)))
}
