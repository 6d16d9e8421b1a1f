package bitpack

import (
	"unsafe"

	"github.com/hupe1980/tensorenc/tensor"
)

// DefaultTarget is the word capacity used by the reference configuration.
const DefaultTarget = 28

// maxTarget is the widest capacity any supported word type can hold
// without touching its sign bit.
const maxTarget = 63

// Word is the set of integer types packed words may use.
type Word interface {
	~int32 | ~int64 | ~uint32 | ~uint64
}

// BitRange describes how values are packed: each value needs Original bits
// and each word carries Target bits.
type BitRange struct {
	Original uint
	Target   uint
}

// NewBitRange validates and returns a BitRange.
// It requires 1 <= original < target <= 63; the word type may narrow the
// upper bound further, which Pack and Unpack check.
func NewBitRange(original, target int) (BitRange, error) {
	if original < 1 || original >= target || target > maxTarget {
		return BitRange{}, &tensor.BitRangeError{Original: original, Target: target}
	}
	return BitRange{Original: uint(original), Target: uint(target)}, nil
}

// MustBitRange is like NewBitRange but panics on an invalid range.
func MustBitRange(original, target int) BitRange {
	r, err := NewBitRange(original, target)
	if err != nil {
		panic(err)
	}
	return r
}

// ValidFor checks the range against the width of word type W.
func ValidFor[W Word](r BitRange) error {
	bits := wordBits[W]()
	if r.Original < 1 || r.Original >= r.Target || r.Target > bits-1 {
		return &tensor.BitRangeError{Original: int(r.Original), Target: int(r.Target), WordBits: int(bits)}
	}
	return nil
}

// ValuesPerWord returns how many whole values fit in one word.
func (r BitRange) ValuesPerWord() int {
	if r.Original == 0 {
		return 0
	}
	return int(r.Target / r.Original)
}

// WordCount returns the number of words needed for n values:
// ceil(n*Original/Target).
func (r BitRange) WordCount(n int) int {
	if n <= 0 || r.Target == 0 {
		return 0
	}
	bits := uint64(n) * uint64(r.Original)
	return int((bits + uint64(r.Target) - 1) / uint64(r.Target))
}

// Capacity returns the maximum number of values n words can hold.
func (r BitRange) Capacity(words int) int {
	if words <= 0 || r.Original == 0 {
		return 0
	}
	return int(uint64(words) * uint64(r.Target) / uint64(r.Original))
}

func (r BitRange) valueMask() uint64 { return 1<<r.Original - 1 }

func (r BitRange) wordMask() uint64 { return 1<<r.Target - 1 }

func wordBits[W Word]() uint {
	var w W
	return uint(unsafe.Sizeof(w)) * 8
}
