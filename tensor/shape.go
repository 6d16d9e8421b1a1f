package tensor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/tensorenc/internal/conv"
)

// Shape is the run-time dimension list of a tensor, outermost first.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// NumElements returns the product of all dimensions (1 for a scalar shape).
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate checks that no dimension is negative and that the element count
// fits in an int.
func (s Shape) Validate() error {
	n := 1
	for i, d := range s {
		if d < 0 {
			return fmt.Errorf("%w: dimension %d is negative (%d)", ErrShape, i, d)
		}
		var err error
		if n, err = conv.MulInt(n, d); err != nil {
			return fmt.Errorf("%w: shape %s has too many elements: %v", ErrShape, s, err)
		}
	}
	return nil
}

// Equal reports whether both shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool { return slices.Equal(s, other) }

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape { return slices.Clone(s) }

// String renders the shape as "(2, 8)".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	if len(s) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
