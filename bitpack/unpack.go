package bitpack

import (
	"fmt"

	"github.com/hupe1980/tensorenc/tensor"
)

// Unpack extracts shape.NumElements() values of Original bits from words.
//
// Values are read at the offsets Pack writes them to. A value split across a
// word boundary is reassembled from both words. Positions past the end of
// words decode as 0, so a shape larger than what was packed yields trailing
// zeros instead of an error.
func Unpack[W Word](words []W, r BitRange, shape tensor.Shape) ([]W, error) {
	if err := ValidFor[W](r); err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	wordMask := r.wordMask()
	raw := make([]uint64, len(words))
	for i, w := range words {
		if w < 0 || uint64(w) > wordMask {
			return nil, fmt.Errorf("%w: word %d at index %d exceeds %d bits",
				tensor.ErrValueRange, w, i, r.Target)
		}
		raw[i] = uint64(w)
	}

	n := shape.NumElements()
	out := make([]W, n)
	for i := range out {
		out[i] = W(extract(raw, i, r))
	}
	return out, nil
}

// extract reads value i from the word stream; missing words read as zero.
func extract(words []uint64, i int, r BitRange) uint64 {
	var (
		ob  = uint64(r.Original)
		tb  = uint64(r.Target)
		pos = uint64(i) * ob
		idx = pos / tb
		off = pos % tb
	)
	if idx >= uint64(len(words)) {
		return 0
	}

	v := words[idx] >> off
	if off+ob > tb && idx+1 < uint64(len(words)) {
		v |= words[idx+1] << (tb - off)
	}
	return v & r.valueMask()
}
