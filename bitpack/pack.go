package bitpack

import (
	"fmt"

	"github.com/hupe1980/tensorenc/tensor"
)

// Packed is the result of Pack: the packed words plus what is needed to
// reverse it.
type Packed[W Word] struct {
	Words []W
	Range BitRange
	// Count is the number of values that were packed.
	Count int
}

// Shape returns the shape of the packed buffer, (word_count, 1).
func (p Packed[W]) Shape() tensor.Shape {
	return tensor.Shape{len(p.Words), 1}
}

// Unpack recovers the packed values.
func (p Packed[W]) Unpack() ([]W, error) {
	return Unpack(p.Words, p.Range, tensor.Shape{p.Count})
}

// Pack packs values into Target-bit words.
//
// Value i starts at bit (i*Original mod Target) of word floor(i*Original/Target);
// bits that overflow the word continue in the low bits of the next one. Every
// value must lie in [0, 2^Original). The unused high bits of the final word
// are zero.
func Pack[W Word](values []W, r BitRange) (Packed[W], error) {
	if err := ValidFor[W](r); err != nil {
		return Packed[W]{}, err
	}

	valueMask := r.valueMask()
	for i, v := range values {
		if v < 0 || uint64(v) > valueMask {
			return Packed[W]{}, fmt.Errorf("%w: value %d at index %d does not fit in %d bits",
				tensor.ErrValueRange, v, i, r.Original)
		}
	}

	words := make([]uint64, r.WordCount(len(values)))
	packInto(words, values, r)

	out := make([]W, len(words))
	for i, w := range words {
		out[i] = W(w)
	}
	return Packed[W]{Words: out, Range: r, Count: len(values)}, nil
}

// packInto writes the bit stream of values into words, which must be zeroed
// and sized by WordCount.
func packInto[W Word](words []uint64, values []W, r BitRange) {
	var (
		ob       = uint64(r.Original)
		tb       = uint64(r.Target)
		wordMask = r.wordMask()
	)
	for i, v := range values {
		u := uint64(v)
		pos := uint64(i) * ob
		idx, off := pos/tb, pos%tb

		words[idx] |= (u << off) & wordMask
		if off+ob > tb {
			// Straddles a word boundary: the high part lands in the next word.
			words[idx+1] |= u >> (tb - off)
		}
	}
}
