package hadamard

import (
	"github.com/hupe1980/tensorenc/internal/cpu"
	"github.com/hupe1980/tensorenc/tensor"
)

// butterfly applies the unnormalized transform to row in place.
// len(row) must be a power of two.
func butterfly[T tensor.Float](row []T, k cpu.Kernel) {
	if k == cpu.Unrolled && len(row) >= 4 {
		butterflyUnrolled(row)
		return
	}
	butterflyRecursive(row)
}

// butterflyRecursive transforms both halves, then combines them with
// sum/difference pairs.
func butterflyRecursive[T tensor.Float](row []T) {
	n := len(row)
	if n < 2 {
		return
	}

	half := n / 2
	butterflyRecursive(row[:half])
	butterflyRecursive(row[half:])

	for i := 0; i < half; i++ {
		a, b := row[i], row[i+half]
		row[i], row[i+half] = a+b, a-b
	}
}

// butterflyUnrolled runs the first two stages as one radix-4 pass, then the
// remaining stages bottom-up. len(row) must be at least 4.
func butterflyUnrolled[T tensor.Float](row []T) {
	n := len(row)
	for i := 0; i < n; i += 4 {
		s0 := row[i] + row[i+1]
		s1 := row[i] - row[i+1]
		s2 := row[i+2] + row[i+3]
		s3 := row[i+2] - row[i+3]

		row[i] = s0 + s2
		row[i+1] = s1 + s3
		row[i+2] = s0 - s2
		row[i+3] = s1 - s3
	}

	for h := 4; h < n; h <<= 1 {
		for i := 0; i < n; i += h << 1 {
			lo := row[i : i+h : i+h]
			hi := row[i+h : i+2*h : i+2*h]
			for j := range lo {
				a, b := lo[j], hi[j]
				lo[j], hi[j] = a+b, a-b
			}
		}
	}
}

func scale[T tensor.Float](row []T, s T) {
	for i := range row {
		row[i] *= s
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func log2(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}
