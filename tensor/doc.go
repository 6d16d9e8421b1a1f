// Package tensor defines the small value types shared by the codec packages.
//
// A tensor here is nothing more than a flat, row-major buffer plus a run-time
// shape. The package carries no arithmetic of its own; it exists so that
// bitpack, random and hadamard agree on shapes, dtypes and error categories.
//
// # Error Categories
//
// Every failure reported by the codec packages wraps one of the sentinels
// declared in this package, so callers can branch with errors.Is:
//
//	_, err := hadamard.Transform(x)
//	if errors.Is(err, tensor.ErrDimension) {
//	    // column count is not a power of two
//	}
//
// The typed errors (ShapeError, DimensionError, CountError, DTypeError,
// BitRangeError) carry the offending values and can be extracted with
// errors.As.
package tensor
