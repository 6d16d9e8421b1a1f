package random

import (
	"math/rand/v2"

	"github.com/hupe1980/tensorenc/tensor"
)

// SeedPair drives the pair-seeded family. Both components take part in
// seeding; changing either changes the stream.
type SeedPair [2]int64

// pairSalt decorrelates the two PCG seed words when both components are equal.
const pairSalt = 0xDA942042E4DD58B5

// Signs returns count values, each exactly -1 or +1, from the stream of seed.
func Signs[T tensor.Number](count int, seed SeedPair) ([]T, error) {
	u, err := uniformPair(count, seed)
	if err != nil {
		return nil, err
	}
	return toSigns[T](u), nil
}

// Floats returns count floats in [0, 1) from the stream of seed, converted to T.
func Floats[T tensor.Float](count int, seed SeedPair) ([]T, error) {
	u, err := uniformPair(count, seed)
	if err != nil {
		return nil, err
	}
	return toFloats[T](u), nil
}

func uniformPair(count int, seed SeedPair) ([]float64, error) {
	if count <= 0 {
		return nil, &tensor.CountError{Count: count}
	}

	r := rand.New(newPairSource(seed))
	out := make([]float64, count)
	for i := range out {
		out[i] = r.Float64()
	}
	return out, nil
}

func newPairSource(seed SeedPair) *rand.PCG {
	hi := splitmix64(uint64(seed[0]))
	lo := splitmix64(uint64(seed[1]) ^ pairSalt)
	return rand.NewPCG(hi, lo)
}

// splitmix64 is the finalizer of the SplitMix64 generator, used to spread
// small seeds over the full 64-bit state.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
