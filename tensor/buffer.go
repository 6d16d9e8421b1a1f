package tensor

import "fmt"

// Buffer is a 1-D numeric slice whose dtype is only known at run time.
// It is used by the dtype-dispatched entry points.
type Buffer struct {
	dtype DType
	data  any
}

// NewBuffer wraps a typed slice.
func NewBuffer[T Number](data []T) Buffer {
	return Buffer{dtype: DTypeFor[T](), data: data}
}

// DType returns the element dtype of the buffer.
func (b Buffer) DType() DType { return b.dtype }

// Len returns the number of elements.
func (b Buffer) Len() int {
	switch v := b.data.(type) {
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	default:
		return 0
	}
}

// Float64s returns the elements widened to float64.
func (b Buffer) Float64s() []float64 {
	switch v := b.data.(type) {
	case []int32:
		return widen(v)
	case []int64:
		return widen(v)
	case []float32:
		return widen(v)
	case []float64:
		return widen(v)
	default:
		return nil
	}
}

// As returns the underlying slice if the buffer holds elements of type T.
func As[T Number](b Buffer) ([]T, error) {
	if v, ok := b.data.([]T); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: buffer holds %s, requested %s", ErrDType, b.dtype, DTypeFor[T]())
}

func widen[T Number](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
