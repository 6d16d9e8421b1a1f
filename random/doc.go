// Package random derives reproducible random signs and floats from explicit seeds.
//
// Nothing in this package keeps state between calls: every function is a pure
// function of its count and seed, so two peers that share a seed regenerate the
// same sequence without exchanging it.
//
// Two families are provided:
//
//   - The CMWC family (Generate, SignsCMWC, FloatsCMWC) is driven by a single
//     64-bit Seed and uses a complementary-multiply-with-carry generator that
//     is fully specified here, so its output is bit-for-bit stable across
//     platforms and Go releases.
//   - The pair-seeded family (Signs, Floats) takes a SeedPair and draws from a
//     PCG stream (math/rand/v2).
//
// Signs are always exactly -1 or +1; floats always lie in [0, 1).
//
//	signs, _ := random.SignsCMWC[float32](1024, random.Seed(42))
//	floats, _ := random.Floats[float64](16, random.SeedPair{7, 11})
//
// The *As variants accept a tensor.DType for callers that only learn the
// element type at run time.
package random
