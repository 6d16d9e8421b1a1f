package random

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tensorenc/tensor"
)

// SignMask returns the positions of the negative entries of signs as a
// compressed bitmap. It is the compact form of a sign vector.
func SignMask[T tensor.Number](signs []T) (*roaring.Bitmap, error) {
	if uint64(len(signs)) > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: %d signs exceed the bitmap index space", tensor.ErrValueRange, len(signs))
	}
	m := roaring.New()
	for i, s := range signs {
		if s < 0 {
			m.Add(uint32(i))
		}
	}
	m.RunOptimize()
	return m, nil
}

// SignsFromMask expands a mask produced by SignMask back into count signs.
func SignsFromMask[T tensor.Number](mask *roaring.Bitmap, count int) ([]T, error) {
	if err := checkMask(mask, count); err != nil {
		return nil, err
	}
	out := make([]T, count)
	for i := range out {
		out[i] = 1
	}
	it := mask.Iterator()
	for it.HasNext() {
		out[it.Next()] = -1
	}
	return out, nil
}

// ApplyMask negates x at every position set in mask.
func ApplyMask[T tensor.Number](x []T, mask *roaring.Bitmap) error {
	if err := checkMask(mask, len(x)); err != nil {
		return err
	}
	it := mask.Iterator()
	for it.HasNext() {
		i := it.Next()
		x[i] = -x[i]
	}
	return nil
}

func checkMask(mask *roaring.Bitmap, count int) error {
	if count < 0 {
		return &tensor.CountError{Count: count}
	}
	if mask.IsEmpty() {
		return nil
	}
	if last := mask.Maximum(); uint64(last) >= uint64(count) {
		return fmt.Errorf("%w: mask position %d outside %d values", tensor.ErrValueRange, last, count)
	}
	return nil
}
