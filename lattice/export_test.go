// SPDX-License-Identifier: MIT

package lattice

// Test bridge: exposes unexported kernels to lattice_test only.

import "github.com/katalvlaran/lattice/matrix"

// BatchOuterMultiplyForTest runs the multiply branch of batchOuter.
func BatchOuterMultiplyForTest(vectors []*matrix.Dense, threshold int) (*matrix.Dense, error) {
	return batchOuter(vectors, outerMultiply, threshold)
}

// BatchOuterAddForTest runs the add branch of batchOuter.
func BatchOuterAddForTest(vectors []*matrix.Dense) (*matrix.Dense, error) {
	return batchOuter(vectors, outerAdd, DefaultOuterProductThreshold)
}

// LinspaceForTest exposes linspace.
var LinspaceForTest = linspace

// RunWeightsForTest exposes runWeights.
var RunWeightsForTest = runWeights
