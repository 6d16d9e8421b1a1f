package testutil

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Float is the set of element types the helpers fill.
type Float interface {
	~float32 | ~float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int64 returns a pseudo-random int64, including negative values.
func (r *RNG) Int64() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(r.rand.Uint64())
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over drawing values in a loop).
func FillUniform[T Float](r *RNG, dst []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = T(r.rand.Float64())
	}
}

// FillGaussian fills dst with values from a standard normal distribution.
func FillGaussian[T Float](r *RNG, dst []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = T(r.rand.NormFloat64())
	}
}

// FillBelow fills dst with values in [0, limit).
func (r *RNG) FillBelow(dst []uint64, limit uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Uint64() % limit
	}
}

// GaussianMatrix returns rows×cols standard normal values in row-major order.
func GaussianMatrix[T Float](r *RNG, rows, cols int) []T {
	data := make([]T, rows*cols)
	FillGaussian(r, data)
	return data
}

// HadamardMatrix returns the Sylvester-ordered Hadamard matrix of order n,
// built as H(2n) = [[H, H], [H, -H]]. n must be a power of two.
func HadamardMatrix(n int) *mat.Dense {
	h := mat.NewDense(1, 1, []float64{1})
	for size := 1; size < n; size <<= 1 {
		next := mat.NewDense(size<<1, size<<1, nil)
		for i := range size {
			for j := range size {
				v := h.At(i, j)
				next.Set(i, j, v)
				next.Set(i, j+size, v)
				next.Set(i+size, j, v)
				next.Set(i+size, j+size, -v)
			}
		}
		h = next
	}
	return h
}

// ReferenceHadamard computes x · H / sqrt(cols) with a dense matrix product.
// data holds rows×cols values in row-major order.
func ReferenceHadamard[T Float](data []T, rows, cols int) []float64 {
	x := mat.NewDense(rows, cols, toFloat64(data))
	var y mat.Dense
	y.Mul(x, HadamardMatrix(cols))
	y.Scale(1/math.Sqrt(float64(cols)), &y)
	return y.RawMatrix().Data
}

// RowNorms returns the Euclidean norm of every row.
func RowNorms[T Float](data []T, rows, cols int) []float64 {
	all := toFloat64(data)
	norms := make([]float64, rows)
	for i := range rows {
		norms[i] = floats.Norm(all[i*cols:(i+1)*cols], 2)
	}
	return norms
}

// MaxAbsDiff returns the largest absolute element-wise difference.
// The slices must have equal length.
func MaxAbsDiff[A, B Float](a []A, b []B) float64 {
	var d float64
	for i := range a {
		d = max(d, math.Abs(float64(a[i])-float64(b[i])))
	}
	return d
}

func toFloat64[T Float](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}
