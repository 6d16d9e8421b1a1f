package random

import (
	"math"

	"github.com/hupe1980/tensorenc/tensor"
)

// Seed drives the CMWC family.
type Seed int64

const (
	cmwcMultiplier = 3636507990
	cmwcLogBase    = 32
	cmwcBaseMask   = 1<<cmwcLogBase - 1

	mantissaBits  = 53
	mantissaMask  = 1<<mantissaBits - 1
	mantissaScale = 1.0 / (1 << mantissaBits)

	// maxLanes caps the number of interleaved CMWC lanes.
	maxLanes = 1000
)

// Generate returns count pseudo-random floats in [0, 1) from a
// complementary-multiply-with-carry generator.
//
// The output depends only on (count, seed). Internally ceil(sqrt(count)/10)
// lanes, at most 1000, run in lock step; each lane is seeded from the previous
// one with v = v^7 + v^6 + 1. Lanes accumulate 32 bits per step and emit one
// 53-bit mantissa each once enough bits are buffered. Emitted rows are
// concatenated and truncated to count, so the lane layout is part of the
// sequence: Generate(n, s) is not in general a prefix of Generate(m, s).
func Generate(count int, seed Seed) ([]float64, error) {
	if count <= 0 {
		return nil, &tensor.CountError{Count: count}
	}

	lanes := laneCount(count)
	iters := count/lanes + 1

	q := laneSeeds(int64(seed), lanes)
	c := make([]int64, lanes)
	copy(c, q)
	f := make([]int64, lanes)

	out := make([]float64, 0, iters*lanes)
	bits := 0
	for emitted := 0; emitted < iters; {
		for j := range q {
			t := cmwcMultiplier*q[j] + c[j]
			c[j] = cmwcBaseMask - t>>cmwcLogBase
			q[j] = t & cmwcBaseMask
			f[j] = f[j]<<cmwcLogBase | q[j]
		}
		bits += cmwcLogBase

		if bits >= mantissaBits {
			for j := range f {
				out = append(out, float64(f[j]&mantissaMask)*mantissaScale)
				f[j] += f[j] >> mantissaBits
			}
			bits -= mantissaBits
			emitted++
		}
	}
	return out[:count:count], nil
}

func laneCount(count int) int {
	lanes := int(math.Ceil(math.Sqrt(float64(count)) / 10))
	return max(1, min(lanes, maxLanes))
}

// laneSeeds expands one seed into per-lane seeds with the PRBS7 polynomial.
// Arithmetic wraps at 64 bits.
func laneSeeds(seed int64, lanes int) []int64 {
	out := make([]int64, lanes)
	v := seed
	for i := range out {
		v3 := v * v * v
		v6 := v3 * v3
		v = v6*v + v6 + 1
		out[i] = v
	}
	return out
}
