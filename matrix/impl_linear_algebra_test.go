// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lattice/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDenseDefaultZero(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{
		{3, 3},
		{6, 6},
	} {
		name := fmt.Sprintf("%dx%d", tc.rows, tc.cols)
		t.Run(name, func(t *testing.T) {
			m := MustDense(t, tc.rows, tc.cols)
			// immediately after creation all elements should be 0
			var i, j int // loop iterators
			for i = 0; i < tc.rows; i++ {
				for j = 0; j < tc.cols; j++ {
					if v := MustAt(t, m, i, j); v != 0.0 {
						t.Fatalf("element [%d,%d] of a new Dense(%dx%d) must be 0", i, j, tc.rows, tc.cols)
					}
				}
			}
		})
	}
}

// ---------- Mul ----------

func TestMul_Correctness(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 3, 2, []float64{7, 8, 9, 10, 11, 12})
	want := [][]float64{{58, 64}, {139, 154}}

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareExact(t, want, got)
}

// TestMul_FastPathEqualsFallback ensures the gonum path and the At/Set
// fallback agree on random operands.
func TestMul_FastPathEqualsFallback(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ r, n, c int }{{1, 4, 1}, {5, 8, 1}, {7, 16, 3}} {
		tc := tc
		t.Run(fmt.Sprintf("%dx%dx%d", tc.r, tc.n, tc.c), func(t *testing.T) {
			a := MustDense(t, tc.r, tc.n)
			b := MustDense(t, tc.n, tc.c)
			RandomFill(t, a, 11)
			RandomFill(t, b, 22)

			fast, err := matrix.Mul(a, b)
			require.NoError(t, err)
			slow, err := matrix.Mul(hide{a}, b)
			require.NoError(t, err)

			ok, err := matrix.AllClose(fast, slow, 1e-12, 1e-12)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestMul_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.Mul(nil, MustDense(t, 1, 1))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Mul(MustDense(t, 2, 3), MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// ---------- OuterRowsGEMM ----------

func TestOuterRowsGEMM_Layout(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	c := NewFilledDense(t, 2, 3, []float64{1, 10, 100, -1, 0, 1})
	want := [][]float64{
		{1, 10, 100, 2, 20, 200},
		{-3, 0, 3, -4, 0, 4},
	}

	got, err := matrix.OuterRowsGEMM(a, c)
	require.NoError(t, err)
	CompareExact(t, want, got)

	fallback, err := matrix.OuterRowsGEMM(hide{a}, c)
	require.NoError(t, err)
	CompareExact(t, want, fallback)

	_, err = matrix.OuterRowsGEMM(a, MustDense(t, 3, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestOuterRowsGEMM_MatchesBroadcast checks the two outer-product branches
// produce bitwise-identical values.
func TestOuterRowsGEMM_MatchesBroadcast(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ b, n, m int }{{1, 2, 2}, {4, 8, 3}, {9, 16, 5}} {
		tc := tc
		t.Run(fmt.Sprintf("B%d_%dx%d", tc.b, tc.n, tc.m), func(t *testing.T) {
			a := MustDense(t, tc.b, tc.n)
			c := MustDense(t, tc.b, tc.m)
			RandomFill(t, a, 3)
			RandomFill(t, c, 4)

			gemm, err := matrix.OuterRowsGEMM(a, c)
			require.NoError(t, err)
			bcast, err := matrix.OuterRows(a, c, matrix.OpMultiply)
			require.NoError(t, err)
			require.Equal(t, bcast.RawData(), gemm.RawData())
		})
	}
}
