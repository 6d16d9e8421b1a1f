package hadamard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tensorenc/resource"
	"github.com/hupe1980/tensorenc/tensor"
)

// minRowsPerTask keeps parallel tasks from becoming too small to amortize
// scheduling.
const minRowsPerTask = 16

// Transform applies the normalized Walsh–Hadamard transform to every row of x.
//
// x must have rank 2 and a power-of-two column count; the rank is checked
// first. The result is a new tensor of the same shape; x is not modified.
// A column count of 1 is the identity.
func Transform[T tensor.Float](x *tensor.Dense[T]) (*tensor.Dense[T], error) {
	if err := checkRank(x); err != nil {
		return nil, err
	}
	p, err := NewPlan[T](x.Cols())
	if err != nil {
		return nil, err
	}
	return p.Apply(x)
}

// TransformRows transforms each row of a row slice in place. All rows must
// have the same power-of-two length.
func TransformRows[T tensor.Float](rows [][]T) error {
	if len(rows) == 0 {
		return nil
	}
	p, err := NewPlan[T](len(rows[0]))
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := p.ApplyInPlace(r); err != nil {
			return err
		}
	}
	return nil
}

// TransformInPlace transforms a single power-of-two length vector in place.
func TransformInPlace[T tensor.Float](row []T) error {
	p, err := NewPlan[T](len(row))
	if err != nil {
		return err
	}
	p.row(row)
	return nil
}

// TransformParallel is Transform with rows spread over worker goroutines.
//
// ctrl bounds the number of concurrent workers and accounts the output buffer
// against its memory limit while the transform runs; a nil ctrl uses
// GOMAXPROCS workers. The result is identical to Transform.
func TransformParallel[T tensor.Float](ctx context.Context, x *tensor.Dense[T], ctrl *resource.Controller) (*tensor.Dense[T], error) {
	if err := checkRank(x); err != nil {
		return nil, err
	}
	p, err := NewPlan[T](x.Cols())
	if err != nil {
		return nil, err
	}

	bytes := x.SizeInBytes()
	if err := ctrl.AcquireMemory(ctx, bytes); err != nil {
		return nil, err
	}
	defer ctrl.ReleaseMemory(bytes)

	out := x.Clone()
	rows := out.Rows()
	chunk := max(minRowsPerTask, (rows+ctrl.Workers()-1)/ctrl.Workers())

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < rows; start += chunk {
		if err := ctrl.AcquireWorker(gctx); err != nil {
			_ = g.Wait()
			return nil, err
		}

		end := min(start+chunk, rows)
		g.Go(func() error {
			defer ctrl.ReleaseWorker()
			if err := gctx.Err(); err != nil {
				return err
			}
			p.rows(out, start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
