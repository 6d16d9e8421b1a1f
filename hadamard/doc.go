// Package hadamard implements the normalized Fast Walsh–Hadamard Transform.
//
// The transform rotates every row of a rank-2 tensor by H/sqrt(n), where H is
// the Sylvester-ordered Hadamard matrix of order n and n is the column count.
// It uses only additions and subtractions, runs in O(n log n) per row, preserves
// the Euclidean norm of each row and is its own inverse:
//
//	y, _ := hadamard.Transform(x)  // rotate
//	z, _ := hadamard.Transform(y)  // z == x up to rounding
//
// The column count must be a power of two. It is checked in two tiers that
// report the same error: NewPlan validates a column count known up front, and
// Plan.Apply / Transform validate the tensor they receive.
//
//	plan, err := hadamard.NewPlan[float32](256)   // static check
//	y, err := plan.Apply(x)                        // run-time check
//
// Plans are immutable and may be shared between goroutines.
package hadamard
