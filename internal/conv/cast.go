package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a value does not fit the destination type.
var ErrOverflow = errors.New("integer overflow")

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (negative)", ErrOverflow, v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint32 (too large)", ErrOverflow, v)
	}
	return uint32(v), nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d cannot be converted to int (too large)", ErrOverflow, v)
	}
	return int(v), nil
}

// MulInt returns a*b for non-negative a and b, failing instead of wrapping.
func MulInt(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: %d * %d has a negative operand", ErrOverflow, a, b)
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, fmt.Errorf("%w: %d * %d exceeds int", ErrOverflow, a, b)
	}
	return a * b, nil
}
