package random

import (
	"math"

	"github.com/hupe1980/tensorenc/tensor"
)

// signThreshold splits the uniform stream: values below it map to -1.
const signThreshold = 0.5

// belowOne is the largest float32 smaller than 1.
var belowOne = math.Nextafter32(1, 0)

// SignsCMWC returns count values, each exactly -1 or +1, derived from the
// CMWC stream of seed.
func SignsCMWC[T tensor.Number](count int, seed Seed) ([]T, error) {
	u, err := Generate(count, seed)
	if err != nil {
		return nil, err
	}
	return toSigns[T](u), nil
}

// FloatsCMWC returns count floats in [0, 1) from the CMWC stream of seed,
// converted to T.
func FloatsCMWC[T tensor.Float](count int, seed Seed) ([]T, error) {
	u, err := Generate(count, seed)
	if err != nil {
		return nil, err
	}
	return toFloats[T](u), nil
}

func toSigns[T tensor.Number](u []float64) []T {
	out := make([]T, len(u))
	for i, v := range u {
		if v < signThreshold {
			out[i] = -1
		} else {
			out[i] = 1
		}
	}
	return out
}

// toFloats converts the stream to T. Rounding to float32 can carry values
// just below 1 up to 1, so those are clamped.
func toFloats[T tensor.Float](u []float64) []T {
	out := make([]T, len(u))
	for i, v := range u {
		f := T(v)
		if f >= 1 {
			f = T(belowOne)
		}
		out[i] = f
	}
	return out
}
