package hadamard

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tensorenc/resource"
	"github.com/hupe1980/tensorenc/tensor"
	"github.com/hupe1980/tensorenc/testutil"
)

func gaussian[T tensor.Float](t *testing.T, seed int64, rows, cols int) *tensor.Dense[T] {
	t.Helper()
	rng := testutil.NewRNG(seed)
	x, err := tensor.New(tensor.Shape{rows, cols}, testutil.GaussianMatrix[T](rng, rows, cols))
	require.NoError(t, err)
	return x
}

func TestTransform_IsRotation(t *testing.T) {
	for _, dim := range []int{2, 4, 8, 16} {
		t.Run(fmt.Sprintf("dim=%d", dim), func(t *testing.T) {
			x := gaussian[float64](t, int64(dim), 1, dim)

			y, err := Transform(x)
			require.NoError(t, err)

			before := testutil.RowNorms(x.Data(), 1, dim)
			after := testutil.RowNorms(y.Data(), 1, dim)
			assert.InDelta(t, before[0], after[0], 1e-9)
		})
	}
}

func TestTransform_Involution(t *testing.T) {
	for _, rows := range []int{1, 2, 5, 11} {
		t.Run(fmt.Sprintf("rows=%d", rows), func(t *testing.T) {
			x := gaussian[float32](t, 4711, rows, 8)

			y, err := Transform(x)
			require.NoError(t, err)
			z, err := Transform(y)
			require.NoError(t, err)

			assert.True(t, x.Shape().Equal(z.Shape()))
			assert.Less(t, testutil.MaxAbsDiff(x.Data(), z.Data()), 1e-5)
		})
	}
}

func TestTransform_MatchesReference(t *testing.T) {
	for _, dim := range []int{1, 2, 4, 8, 16, 64} {
		t.Run(fmt.Sprintf("dim=%d", dim), func(t *testing.T) {
			x := gaussian[float64](t, 99, 3, dim)

			y, err := Transform(x)
			require.NoError(t, err)

			want := testutil.ReferenceHadamard(x.Data(), 3, dim)
			assert.Less(t, testutil.MaxAbsDiff(y.Data(), want), 1e-9)
		})
	}
}

func TestTransform_Float32Tolerance(t *testing.T) {
	x := gaussian[float32](t, 5, 4, 256)

	y, err := Transform(x)
	require.NoError(t, err)

	want := testutil.ReferenceHadamard(x.Data(), 4, 256)
	assert.Less(t, testutil.MaxAbsDiff(y.Data(), want), 1e-4)
}

func TestTransform_DoesNotModifyInput(t *testing.T) {
	x := gaussian[float64](t, 1, 2, 4)
	orig := x.Clone()

	_, err := Transform(x)
	require.NoError(t, err)
	assert.Equal(t, orig.Data(), x.Data())
}

func TestTransform_DimensionOne(t *testing.T) {
	x, err := tensor.New(tensor.Shape{3, 1}, []float32{1.5, -2, 7})
	require.NoError(t, err)

	y, err := Transform(x)
	require.NoError(t, err)
	assert.Equal(t, x.Data(), y.Data())
}

func TestTransform_KnownValues(t *testing.T) {
	x, err := tensor.New(tensor.Shape{1, 4}, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	y, err := Transform(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5, -1, -2, 0}, y.Data(), 1e-12)
}

func TestTransform_IllegalRank(t *testing.T) {
	shapes := []tensor.Shape{{1}, {1, 4, 4}, {1, 1, 1, 4}}
	for _, s := range shapes {
		t.Run(s.String(), func(t *testing.T) {
			x, err := tensor.Zeros[float32](s)
			require.NoError(t, err)

			_, err = Transform(x)
			require.ErrorIs(t, err, tensor.ErrShape)

			var se *tensor.ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 2, se.WantRank)
			assert.Contains(t, err.Error(), "number of dimensions of x must be 2")
		})
	}
}

func TestTransform_NilInput(t *testing.T) {
	_, err := Transform[float64](nil)
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestTransform_NotPowerOfTwo(t *testing.T) {
	shapes := []tensor.Shape{{1, 3}, {1, 7}, {1, 9}, {4, 3}}
	for _, s := range shapes {
		t.Run(s.String(), func(t *testing.T) {
			x, err := tensor.Zeros[float64](s)
			require.NoError(t, err)

			_, err = Transform(x)
			require.ErrorIs(t, err, tensor.ErrDimension)
			assert.Contains(t, err.Error(),
				fmt.Sprintf("the dimension of x must be a power of two, provided dimension is %d", s[1]))

			_, err = NewPlan[float64](s[1])
			assert.ErrorIs(t, err, tensor.ErrDimension)
		})
	}
}

func TestTransform_RankCheckedFirst(t *testing.T) {
	x, err := tensor.Zeros[float32](tensor.Shape{3})
	require.NoError(t, err)

	_, err = Transform(x)
	assert.ErrorIs(t, err, tensor.ErrShape)
	assert.NotErrorIs(t, err, tensor.ErrDimension)
}

func TestTransform_RuntimeShapes(t *testing.T) {
	// Column counts only known when the tensor arrives.
	for k := 1; k <= 3; k++ {
		cols := int(math.Pow(3, float64(k)))
		x, err := tensor.Zeros[float32](tensor.Shape{3, cols})
		require.NoError(t, err)

		_, err = Transform(x)
		assert.ErrorIs(t, err, tensor.ErrDimension, "cols=%d", cols)
	}
}

func TestTransform_PreservesShape(t *testing.T) {
	shapes := []tensor.Shape{{1, 1}, {4, 1}, {2, 2}, {1, 8}, {1, 4}, {0, 4}}
	for _, s := range shapes {
		t.Run(s.String(), func(t *testing.T) {
			x, err := tensor.Zeros[float32](s)
			require.NoError(t, err)

			y, err := Transform(x)
			require.NoError(t, err)
			assert.True(t, s.Equal(y.Shape()))
		})
	}
}

func TestPlan(t *testing.T) {
	p, err := NewPlan[float32](16)
	require.NoError(t, err)
	assert.Equal(t, 16, p.Cols())
	assert.Equal(t, 4, p.Stages())

	x := gaussian[float32](t, 3, 2, 16)
	y, err := p.Apply(x)
	require.NoError(t, err)

	z, err := Transform(x)
	require.NoError(t, err)
	assert.Equal(t, z.Data(), y.Data())
}

func TestPlan_ColumnMismatch(t *testing.T) {
	p, err := NewPlan[float64](8)
	require.NoError(t, err)

	x := gaussian[float64](t, 3, 2, 4)
	_, err = p.Apply(x)
	assert.ErrorIs(t, err, tensor.ErrDimension)

	x, err = tensor.Zeros[float64](tensor.Shape{2, 6})
	require.NoError(t, err)
	_, err = p.Apply(x)
	var de *tensor.DimensionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 6, de.Dim)

	assert.ErrorIs(t, p.ApplyInPlace(make([]float64, 4)), tensor.ErrDimension)
}

func TestNewPlan_Invalid(t *testing.T) {
	for _, cols := range []int{0, -4, 3, 12} {
		_, err := NewPlan[float32](cols)
		assert.ErrorIs(t, err, tensor.ErrDimension, "cols=%d", cols)
	}
}

func TestTransformRows(t *testing.T) {
	x := gaussian[float64](t, 8, 3, 8)
	want, err := Transform(x)
	require.NoError(t, err)

	y := x.Clone()
	rows := [][]float64{y.Row(0), y.Row(1), y.Row(2)}
	require.NoError(t, TransformRows(rows))
	assert.InDeltaSlice(t, want.Data(), y.Data(), 1e-12)

	require.NoError(t, TransformRows[float64](nil))
	assert.ErrorIs(t, TransformRows([][]float64{make([]float64, 4), make([]float64, 2)}), tensor.ErrDimension)
	assert.ErrorIs(t, TransformRows([][]float64{make([]float64, 5)}), tensor.ErrDimension)
}

func TestTransformInPlace(t *testing.T) {
	row := []float32{1, 1}
	require.NoError(t, TransformInPlace(row))
	assert.InDelta(t, math.Sqrt2, row[0], 1e-6)
	assert.InDelta(t, 0, row[1], 1e-6)

	assert.ErrorIs(t, TransformInPlace(make([]float32, 6)), tensor.ErrDimension)
}

func TestKernels_Agree(t *testing.T) {
	rng := testutil.NewRNG(17)
	for _, n := range []int{4, 8, 32, 1024} {
		a := make([]float64, n)
		testutil.FillGaussian(rng, a)
		b := append([]float64(nil), a...)

		butterflyRecursive(a)
		butterflyUnrolled(b)
		assert.InDeltaSlice(t, a, b, 1e-9, "n=%d", n)
	}
}

func TestTransformParallel(t *testing.T) {
	x := gaussian[float32](t, 21, 100, 32)
	want, err := Transform(x)
	require.NoError(t, err)

	t.Run("nil controller", func(t *testing.T) {
		got, err := TransformParallel(context.Background(), x, nil)
		require.NoError(t, err)
		assert.Equal(t, want.Data(), got.Data())
	})

	t.Run("limited controller", func(t *testing.T) {
		ctrl := resource.NewController(resource.Config{MaxWorkers: 2, MemoryLimitBytes: 1 << 20})
		got, err := TransformParallel(context.Background(), x, ctrl)
		require.NoError(t, err)
		assert.Equal(t, want.Data(), got.Data())
		assert.Zero(t, ctrl.MemoryUsage())
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := TransformParallel(ctx, x, resource.NewController(resource.Config{MaxWorkers: 1}))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("larger than memory limit", func(t *testing.T) {
		big, err := tensor.Zeros[float64](tensor.Shape{4, 64})
		require.NoError(t, err)
		ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 1024})

		_, err = TransformParallel(context.Background(), big, ctrl)
		assert.ErrorIs(t, err, resource.ErrMemoryLimit)
		assert.Zero(t, ctrl.MemoryUsage())
	})

	t.Run("invalid", func(t *testing.T) {
		bad, err := tensor.Zeros[float32](tensor.Shape{2, 3})
		require.NoError(t, err)
		_, err = TransformParallel(context.Background(), bad, nil)
		assert.ErrorIs(t, err, tensor.ErrDimension)
	})
}
