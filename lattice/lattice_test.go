package lattice_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lattice/lattice"
	"github.com/katalvlaran/lattice/matrix"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	l, err := lattice.New([]int{3, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, l.Units())
	assert.Equal(t, lattice.Hypercube, l.Interpolation())
	assert.True(t, l.ClipInputs())
	lo, hi := l.OutputRange()
	assert.Equal(t, []float64{0, 1}, []float64{lo, hi})
	assert.Equal(t, []int{3, 2}, l.Shape().Sizes())
	assert.Equal(t, 6, l.Kernel().Rows())
	assert.Equal(t, 1, l.Kernel().Cols())
}

func TestNew_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sizes   []int
		opts    []lattice.Option
		want    error
		wantMsg string
	}{
		{"size below two", []int{2, 1}, nil, lattice.ErrInvalidConfiguration, "lattice_sizes[1]=1"},
		{"no dimensions", []int{}, nil, lattice.ErrInvalidConfiguration, "lattice_sizes"},
		{"units zero", []int{2}, []lattice.Option{lattice.WithUnits(0)}, lattice.ErrInvalidConfiguration, "units=0"},
		{"unknown interpolation", []int{2}, []lattice.Option{lattice.WithInterpolation(9)}, lattice.ErrInvalidConfiguration, "interpolation=Interpolation(9)"},
		{"unknown kernel init", []int{2}, []lattice.Option{lattice.WithKernelInit(5)}, lattice.ErrInvalidConfiguration, "kernel_init=KernelInit(5)"},
		{"random monotonic", []int{2}, []lattice.Option{lattice.WithKernelInit(lattice.InitRandomMonotonic)}, lattice.ErrNotSupported, "random_monotonic"},
		{"reversed range", []int{2}, []lattice.Option{lattice.WithOutputRange(1, 0)}, lattice.ErrInvalidConfiguration, "output_range"},
		{"nan range", []int{2}, []lattice.Option{lattice.WithOutputRange(math.NaN(), 1)}, lattice.ErrInvalidConfiguration, "output_min"},
		{"threshold", []int{2}, []lattice.Option{lattice.WithOuterProductThreshold(0)}, lattice.ErrInvalidConfiguration, "outer_product_threshold=0"},
		{"monotonicity length", []int{2, 2}, []lattice.Option{lattice.WithMonotonicities(lattice.MonotonicityIncreasing)}, lattice.ErrInvalidConfiguration, "len(monotonicities)"},
		{"bad monotonicity", []int{2}, []lattice.Option{lattice.WithMonotonicities(7)}, lattice.ErrInvalidConfiguration, "monotonicities[0]"},
		{"monotonic and unimodal", []int{3}, []lattice.Option{
			lattice.WithMonotonicities(lattice.MonotonicityIncreasing),
			lattice.WithUnimodalities(lattice.UnimodalityValley),
		}, lattice.ErrInvalidConfiguration, "dimension 0"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			l, err := lattice.New(tc.sizes, tc.opts...)
			require.Nil(t, l)
			require.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

// TestNew_RandomMonotonicIsNotLinear guards against a silent fallback.
func TestNew_RandomMonotonicIsNotLinear(t *testing.T) {
	t.Parallel()

	_, err := lattice.New([]int{2, 2}, lattice.WithKernelInit(lattice.InitRandomMonotonic))
	require.ErrorIs(t, err, lattice.ErrNotSupported)
	assert.NotErrorIs(t, err, lattice.ErrInvalidConfiguration)
}

func TestForward_ShapeErrors(t *testing.T) {
	t.Parallel()

	l, err := lattice.New([]int{2, 3})
	require.NoError(t, err)
	col := func(rows, cols int) *matrix.Dense {
		m, err := matrix.NewDense(rows, cols)
		require.NoError(t, err)
		return m
	}

	tests := []struct {
		name string
		in   lattice.Input
		want error
	}{
		{"nil input", nil, lattice.ErrNilInput},
		{"nil points", lattice.Combined{}, lattice.ErrNilInput},
		{"wrong width", lattice.Combined{Points: col(4, 3)}, lattice.ErrShapeMismatch},
		{"short list", lattice.PerDimension{Columns: []*matrix.Dense{col(4, 1)}}, lattice.ErrShapeMismatch},
		{"nil column", lattice.PerDimension{Columns: []*matrix.Dense{col(4, 1), nil}}, lattice.ErrNilInput},
		{"ragged list", lattice.PerDimension{Columns: []*matrix.Dense{col(4, 1), col(3, 1)}}, lattice.ErrShapeMismatch},
		{"wide column", lattice.PerDimension{Columns: []*matrix.Dense{col(4, 1), col(4, 2)}}, lattice.ErrShapeMismatch},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Forward(tc.in)
			assert.ErrorIs(t, err, tc.want)
			_, err = l.Weights(tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestForward_ListConvention feeds the same queries as one matrix and as d
// per-dimension columns.
func TestForward_ListConvention(t *testing.T) {
	t.Parallel()

	for _, units := range []int{1, 3} {
		for _, mode := range []lattice.Interpolation{lattice.Hypercube, lattice.Simplex} {
			sizes := []int{3, 2, 4}
			d := len(sizes)
			rng := rand.New(rand.NewSource(int64(units)))
			l, err := lattice.New(sizes, lattice.WithUnits(units), lattice.WithInterpolation(mode))
			require.NoError(t, err)
			randomKernel(l, rng)

			const batch = 6
			combined := make([][]float64, batch)
			cols := make([][][]float64, d)
			for i := range cols {
				cols[i] = make([][]float64, batch)
			}
			for b := 0; b < batch; b++ {
				combined[b] = make([]float64, units*d)
				for i := range cols {
					cols[i][b] = make([]float64, units)
				}
				for u := 0; u < units; u++ {
					for i, s := range sizes {
						x := rng.Float64()*float64(s+1) - 1 // exercises clipping too
						combined[b][u*d+i] = x
						cols[i][b][u] = x
					}
				}
			}

			pts, err := matrix.NewDenseFromRows(combined)
			require.NoError(t, err)
			perDim := make([]*matrix.Dense, d)
			for i := range cols {
				perDim[i], err = matrix.NewDenseFromRows(cols[i])
				require.NoError(t, err)
			}

			a, err := l.Forward(lattice.Combined{Points: pts})
			require.NoError(t, err)
			b, err := l.Forward(lattice.PerDimension{Columns: perDim})
			require.NoError(t, err)
			require.Equal(t, batch, a.Rows())
			require.Equal(t, units, a.Cols())
			assert.Equal(t, a.RawData(), b.RawData(), "units=%d mode=%s", units, mode)
		}
	}
}

// TestForward_UnitsIndependent checks that each unit reads only its own
// query slice and its own kernel column.
func TestForward_UnitsIndependent(t *testing.T) {
	t.Parallel()

	for _, mode := range []lattice.Interpolation{lattice.Hypercube, lattice.Simplex} {
		sizes := []int{3, 3}
		const units, batch = 2, 10
		rng := rand.New(rand.NewSource(21))

		multi, err := lattice.New(sizes, lattice.WithUnits(units), lattice.WithInterpolation(mode))
		require.NoError(t, err)
		randomKernel(multi, rng)

		singles := make([]*lattice.Lattice, units)
		queries := make([]*matrix.Dense, units)
		for u := range singles {
			singles[u], err = lattice.New(sizes, lattice.WithInterpolation(mode))
			require.NoError(t, err)
			k := singles[u].Kernel().RawData()
			for v := range k {
				k[v] = multi.Kernel().RawData()[v*units+u]
			}
			queries[u] = randomPoints(t, rng, sizes, batch)
		}

		rows := make([][]float64, batch)
		for b := range rows {
			for u := 0; u < units; u++ {
				q, err := queries[u].RawRowView(b)
				require.NoError(t, err)
				rows[b] = append(rows[b], q...)
			}
		}
		out, err := multi.Forward(pointsOf(t, rows...))
		require.NoError(t, err)

		for u, s := range singles {
			want, err := s.Forward(lattice.Combined{Points: queries[u]})
			require.NoError(t, err)
			for b := 0; b < batch; b++ {
				got, err := out.At(b, u)
				require.NoError(t, err)
				w, err := want.At(b, 0)
				require.NoError(t, err)
				assert.InDelta(t, w, got, 1e-12)
			}
		}
	}
}

func TestForward_UnitsXORAndAND(t *testing.T) {
	t.Parallel()

	l, err := lattice.New([]int{2, 2}, lattice.WithUnits(2))
	require.NoError(t, err)
	// vertex rows: [xor, and]
	copy(l.Kernel().RawData(), []float64{0, 0, 1, 0, 1, 0, 0, 1})

	out, err := l.Forward(pointsOf(t, []float64{0.5, 0.5, 1, 1}, []float64{1, 0, 0.5, 1}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 1, 0.5}, out.RawData())
}

func TestForward_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	l, err := lattice.New([]int{2, 2})
	require.NoError(t, err)
	in := pointsOf(t, []float64{-3, 9})
	_, err = l.Forward(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, 9}, in.Points.RawData())
}

func TestKernel_SharedAndReplaceable(t *testing.T) {
	t.Parallel()

	l, err := lattice.New([]int{2, 3})
	require.NoError(t, err)

	// Writes through the shared buffer are visible to the next call.
	k := l.Kernel()
	require.NoError(t, k.Set(5, 0, 42))
	assert.Equal(t, 42.0, forward1(t, l, 1, 2))
	v, err := l.VertexValue([]int{1, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	repl, err := matrix.NewDense(6, 1)
	require.NoError(t, err)
	require.NoError(t, repl.Fill(-1))
	require.NoError(t, l.SetKernel(repl))
	assert.InDelta(t, -1.0, forward1(t, l, 0.3, 1.7), 1e-12)

	bad, err := matrix.NewDense(6, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, l.SetKernel(bad), lattice.ErrShapeMismatch)
	assert.ErrorIs(t, l.SetKernel(nil), lattice.ErrNilInput)
	_, err = l.VertexValue([]int{0, 0}, 1)
	assert.ErrorIs(t, err, lattice.ErrShapeMismatch)
	_, err = l.VertexValue([]int{2, 0}, 0)
	assert.ErrorIs(t, err, lattice.ErrShapeMismatch)
}

func TestClipInputs(t *testing.T) {
	t.Parallel()

	sh := mustShape(t, 3, 2)
	in := pointsOf(t, []float64{-1, 0.5, 5, 2}, []float64{1, 3, 0.5, -2})

	out, err := lattice.ClipInputs(in, sh)
	require.NoError(t, err)
	got, ok := out.(lattice.Combined)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0.5, 2, 1, 1, 1, 0.5, 0}, got.Points.RawData())
	assert.Equal(t, -1.0, in.Points.RawData()[0], "input must stay untouched")

	c0, err := matrix.NewDenseFromRows([][]float64{{-1}, {4}})
	require.NoError(t, err)
	c1, err := matrix.NewDenseFromRows([][]float64{{0.5}, {1.5}})
	require.NoError(t, err)
	out, err = lattice.ClipInputs(lattice.PerDimension{Columns: []*matrix.Dense{c0, c1}}, sh)
	require.NoError(t, err)
	pd, ok := out.(lattice.PerDimension)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 2}, pd.Columns[0].RawData())
	assert.Equal(t, []float64{0.5, 1}, pd.Columns[1].RawData())

	_, err = lattice.ClipInputs(pointsOf(t, []float64{1, 2, 3}), sh)
	assert.ErrorIs(t, err, lattice.ErrShapeMismatch)
	_, err = lattice.ClipInputs(lattice.PerDimension{Columns: []*matrix.Dense{c0}}, sh)
	assert.ErrorIs(t, err, lattice.ErrShapeMismatch)
	_, err = lattice.ClipInputs(nil, sh)
	assert.ErrorIs(t, err, lattice.ErrNilInput)
}

func TestComputeWeights_Standalone(t *testing.T) {
	t.Parallel()

	sh := mustShape(t, 2, 3)
	in := pointsOf(t, []float64{0.25, 1.5})

	w, err := lattice.ComputeHypercubeWeights(sh, in, 1, true)
	require.NoError(t, err)
	// dim0 [0.75, 0.25] ⊗ dim1 [0, 0.5, 0.5]
	assert.InDeltaSlice(t, []float64{0, 0.375, 0.375, 0, 0.125, 0.125}, w.RawData(), 1e-12)

	l, err := lattice.New([]int{2, 3})
	require.NoError(t, err)
	viaLayer, err := l.Weights(in)
	require.NoError(t, err)
	assert.Equal(t, viaLayer.RawData(), w.RawData())

	_, err = lattice.ComputeHypercubeWeights(nil, in, 1, true)
	assert.ErrorIs(t, err, lattice.ErrNilInput)
	_, err = lattice.ComputeSimplexWeights(sh, in, 0, true)
	assert.ErrorIs(t, err, lattice.ErrInvalidConfiguration)
}

func TestNew_LogsConfiguration(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := lattice.New([]int{3, 3}, lattice.WithLogger(logger), lattice.WithUnits(2), lattice.WithClipInputs(false))
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, "lattice constructed", entries[0].Message)
	assert.Equal(t, 2, entries[0].Data["units"])
	assert.Equal(t, 9, entries[0].Data["vertices"])
	assert.Equal(t, "hypercube", entries[0].Data["interpolation"])
	assert.Contains(t, entries[1].Message, "clipping disabled")

	hook.Reset()
	_, err = lattice.New([]int{2}, lattice.WithLogger(logger))
	require.NoError(t, err)
	assert.Len(t, hook.AllEntries(), 1)

	// Failed construction logs nothing.
	hook.Reset()
	_, err = lattice.New([]int{1}, lattice.WithLogger(logger))
	require.Error(t, err)
	assert.Empty(t, hook.AllEntries())
}
