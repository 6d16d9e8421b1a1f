package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillUniform(t *testing.T) {
	rng := NewRNG(4711)

	v := make([]float32, 256)
	FillUniform(rng, v)

	for _, x := range v {
		assert.GreaterOrEqual(t, x, float32(0))
		assert.LessOrEqual(t, x, float32(1))
	}
}

func TestFillGaussian(t *testing.T) {
	rng := NewRNG(4711)

	v := GaussianMatrix[float64](rng, 100, 100)
	require.Len(t, v, 10000)

	var mean float64
	for _, x := range v {
		mean += x
	}
	mean /= float64(len(v))
	assert.InDelta(t, 0, mean, 0.05)
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	a := make([]float64, 16)
	FillUniform(rng, a)

	rng.Reset()
	b := make([]float64, 16)
	FillUniform(rng, b)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestFillBelow(t *testing.T) {
	rng := NewRNG(7)
	v := make([]uint64, 512)
	rng.FillBelow(v, 64)
	for _, x := range v {
		assert.Less(t, x, uint64(64))
	}
}

func TestHadamardMatrix(t *testing.T) {
	h := HadamardMatrix(4)
	r, c := h.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)

	want := [][]float64{
		{1, 1, 1, 1},
		{1, -1, 1, -1},
		{1, 1, -1, -1},
		{1, -1, -1, 1},
	}
	for i := range want {
		for j := range want[i] {
			assert.Equal(t, want[i][j], h.At(i, j), "H[%d][%d]", i, j)
		}
	}
}

func TestReferenceHadamard(t *testing.T) {
	got := ReferenceHadamard([]float64{1, 0, 0, 0}, 1, 4)
	for _, v := range got {
		assert.InDelta(t, 0.5, v, 1e-12)
	}

	got = ReferenceHadamard([]float32{1, 1}, 1, 2)
	assert.InDelta(t, math.Sqrt2, got[0], 1e-6)
	assert.InDelta(t, 0, got[1], 1e-6)
}

func TestRowNorms(t *testing.T) {
	norms := RowNorms([]float64{3, 4, 0, 0, 1, 0}, 3, 2)
	assert.InDeltaSlice(t, []float64{5, 0, 1}, norms, 1e-12)
}

func TestMaxAbsDiff(t *testing.T) {
	assert.InDelta(t, 0.5, MaxAbsDiff([]float32{1, 2, 3}, []float64{1, 2.5, 3}), 1e-9)
	assert.Zero(t, MaxAbsDiff([]float64{}, []float64{}))
}
