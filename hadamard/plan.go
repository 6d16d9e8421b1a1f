package hadamard

import (
	"fmt"
	"math"

	"github.com/hupe1980/tensorenc/internal/cpu"
	"github.com/hupe1980/tensorenc/tensor"
)

// Plan is a validated transform for a fixed column count.
type Plan[T tensor.Float] struct {
	cols   int
	log2   int
	scale  T
	kernel cpu.Kernel
}

// NewPlan validates cols and precomputes the normalization for it.
// cols must be a positive power of two.
func NewPlan[T tensor.Float](cols int) (*Plan[T], error) {
	if !isPowerOfTwo(cols) {
		return nil, &tensor.DimensionError{Op: "hadamard", Dim: cols}
	}
	return &Plan[T]{
		cols:   cols,
		log2:   log2(cols),
		scale:  T(1 / math.Sqrt(float64(cols))),
		kernel: cpu.Active(),
	}, nil
}

// Cols returns the column count the plan was built for.
func (p *Plan[T]) Cols() int { return p.cols }

// Stages returns the number of butterfly stages, log2(Cols).
func (p *Plan[T]) Stages() int { return p.log2 }

// Apply transforms every row of x and returns the result as a new tensor.
func (p *Plan[T]) Apply(x *tensor.Dense[T]) (*tensor.Dense[T], error) {
	if err := p.check(x); err != nil {
		return nil, err
	}
	out := x.Clone()
	p.rows(out, 0, out.Rows())
	return out, nil
}

// ApplyInPlace transforms a single row in place.
func (p *Plan[T]) ApplyInPlace(row []T) error {
	if len(row) != p.cols {
		return fmt.Errorf("%w: row has %d columns, plan expects %d", tensor.ErrDimension, len(row), p.cols)
	}
	p.row(row)
	return nil
}

func (p *Plan[T]) check(x *tensor.Dense[T]) error {
	if err := checkRank(x); err != nil {
		return err
	}
	if cols := x.Cols(); cols != p.cols {
		if !isPowerOfTwo(cols) {
			return &tensor.DimensionError{Op: "hadamard", Dim: cols}
		}
		return fmt.Errorf("%w: tensor has %d columns, plan expects %d", tensor.ErrDimension, cols, p.cols)
	}
	return nil
}

// rows transforms rows [from, to) of x in place.
func (p *Plan[T]) rows(x *tensor.Dense[T], from, to int) {
	for i := from; i < to; i++ {
		p.row(x.Row(i))
	}
}

func (p *Plan[T]) row(r []T) {
	if p.cols == 1 {
		return
	}
	butterfly(r, p.kernel)
	scale(r, p.scale)
}

func checkRank[T tensor.Number](x *tensor.Dense[T]) error {
	if x == nil {
		return &tensor.ShapeError{Op: "hadamard", WantRank: 2}
	}
	if x.Rank() != 2 {
		return &tensor.ShapeError{Op: "hadamard", WantRank: 2, Shape: x.Shape()}
	}
	return nil
}
