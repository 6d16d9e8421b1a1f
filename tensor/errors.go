package tensor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShape is returned when an input has the wrong rank or a malformed shape.
	ErrShape = errors.New("invalid shape")

	// ErrDimension is returned when a dimension violates a size constraint,
	// e.g. a Hadamard column count that is not a power of two.
	ErrDimension = errors.New("invalid dimension")

	// ErrSeed is returned when a seed is not a 64-bit integer of the expected arity.
	ErrSeed = errors.New("invalid seed")

	// ErrCount is returned when a requested element count is not positive.
	ErrCount = errors.New("invalid count")

	// ErrDType is returned when an operation does not support the requested dtype.
	ErrDType = errors.New("unsupported dtype")

	// ErrBitRange is returned for an invalid (original, target) bit range.
	ErrBitRange = errors.New("invalid bit range")

	// ErrValueRange is returned when a value does not fit its declared bit range.
	ErrValueRange = errors.New("value out of range")
)

// ShapeError indicates an input of the wrong rank.
type ShapeError struct {
	Op       string
	WantRank int
	Shape    Shape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: number of dimensions of x must be %d, got shape %s", e.Op, e.WantRank, e.Shape)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// DimensionError indicates a dimension that is not a power of two.
type DimensionError struct {
	Op  string
	Dim int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: the dimension of x must be a power of two, provided dimension is %d", e.Op, e.Dim)
}

func (e *DimensionError) Unwrap() error { return ErrDimension }

// CountError indicates a non-positive element count.
type CountError struct {
	Count int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("count must be positive, got %d", e.Count)
}

func (e *CountError) Unwrap() error { return ErrCount }

// DTypeError indicates a dtype outside the set an operation supports.
type DTypeError struct {
	Op        string
	DType     DType
	Supported []DType
}

func (e *DTypeError) Error() string {
	names := make([]string, len(e.Supported))
	for i, d := range e.Supported {
		names[i] = d.String()
	}
	return fmt.Sprintf("%s: unsupported dtype %s, supported types are %s", e.Op, e.DType, joinNames(names))
}

func (e *DTypeError) Unwrap() error { return ErrDType }

// BitRangeError indicates an invalid (original, target) pair for a word width.
type BitRangeError struct {
	Original int
	Target   int
	WordBits int
}

func (e *BitRangeError) Error() string {
	if e.WordBits > 0 {
		return fmt.Sprintf("bit range %d/%d requires 1 <= original < target <= %d", e.Original, e.Target, e.WordBits-1)
	}
	return fmt.Sprintf("bit range %d/%d requires 1 <= original < target", e.Original, e.Target)
}

func (e *BitRangeError) Unwrap() error { return ErrBitRange }

// joinNames renders "a", "a and b", "a, b and c".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "none"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
