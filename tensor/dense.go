package tensor

import (
	"fmt"
	"slices"
)

// Dense is a row-major tensor with a shape known only at run time.
// The zero value has no shape and rank 0.
type Dense[T Number] struct {
	shape Shape
	data  []T
}

// New wraps data in a Dense of the given shape. The data slice is not copied.
func New[T Number](shape Shape, data []T) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if n := shape.NumElements(); n != len(data) {
		return nil, fmt.Errorf("%w: shape %s holds %d elements, got %d", ErrShape, shape, n, len(data))
	}
	return &Dense[T]{shape: shape.Clone(), data: data}, nil
}

// Zeros allocates a zero-filled Dense of the given shape.
func Zeros[T Number](shape Shape) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Dense[T]{shape: shape.Clone(), data: make([]T, shape.NumElements())}, nil
}

// FromRows copies equally sized rows into a rank-2 Dense.
func FromRows[T Number](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 {
		return &Dense[T]{shape: Shape{0, 0}}, nil
	}
	cols := len(rows[0])
	data := make([]T, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShape, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return &Dense[T]{shape: Shape{len(rows), cols}, data: data}, nil
}

// Shape returns a copy of the tensor's shape.
func (d *Dense[T]) Shape() Shape { return d.shape.Clone() }

// Rank returns the number of dimensions.
func (d *Dense[T]) Rank() int { return len(d.shape) }

// Data returns the backing slice in row-major order.
func (d *Dense[T]) Data() []T { return d.data }

// DType returns the element dtype.
func (d *Dense[T]) DType() DType { return DTypeFor[T]() }

// Rows returns the size of the outermost dimension of a rank-2 tensor.
func (d *Dense[T]) Rows() int {
	if len(d.shape) != 2 {
		return 0
	}
	return d.shape[0]
}

// Cols returns the size of the innermost dimension of a rank-2 tensor.
func (d *Dense[T]) Cols() int {
	if len(d.shape) != 2 {
		return 0
	}
	return d.shape[1]
}

// Row returns row i of a rank-2 tensor as a sub-slice of the backing data.
func (d *Dense[T]) Row(i int) []T {
	cols := d.Cols()
	return d.data[i*cols : (i+1)*cols : (i+1)*cols]
}

// At returns the element at (i, j) of a rank-2 tensor.
func (d *Dense[T]) At(i, j int) T { return d.data[i*d.Cols()+j] }

// Clone returns a deep copy.
func (d *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{shape: d.shape.Clone(), data: slices.Clone(d.data)}
}

// SizeInBytes returns the memory footprint of the element data.
func (d *Dense[T]) SizeInBytes() int64 {
	return int64(len(d.data)) * int64(DTypeFor[T]().Size())
}
