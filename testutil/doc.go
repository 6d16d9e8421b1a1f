// Package testutil provides testing utilities for tensorenc.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source for building input tensors and
// dense reference implementations to check the fast kernels against.
//
// # Random Inputs
//
//	rng := testutil.NewRNG(seed)
//	row := make([]float32, 128)
//	rng.FillUniform(row)      // uniform [0, 1)
//	rng.FillGaussian(row)     // standard normal
//
// # Reference Transform
//
//	want := testutil.ReferenceHadamard(rows)  // rows · H / sqrt(n)
package testutil
