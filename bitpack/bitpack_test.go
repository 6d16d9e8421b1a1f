package bitpack

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tensorenc/tensor"
	"github.com/hupe1980/tensorenc/testutil"
)

var smallCases = []struct {
	original int
	packed   []int64
}{
	{1, []int64{1 + 4 + 8}},
	{2, []int64{1 + 16 + 64}},
	{3, []int64{1 + 64 + 512}},
	{4, []int64{1 + 256 + 4096}},
	{8, []int64{16842753, 0}},
}

func TestPack_Small(t *testing.T) {
	for _, tc := range smallCases {
		t.Run(fmt.Sprintf("int32/%d", tc.original), func(t *testing.T) {
			r := MustBitRange(tc.original, DefaultTarget)
			p, err := Pack([]int32{1, 0, 1, 1, 0}, r)
			require.NoError(t, err)
			assert.Equal(t, toWords[int32](tc.packed), p.Words)
			assert.Equal(t, tensor.Shape{len(tc.packed), 1}, p.Shape())
			assert.Equal(t, 5, p.Count)
		})
		t.Run(fmt.Sprintf("int64/%d", tc.original), func(t *testing.T) {
			r := MustBitRange(tc.original, DefaultTarget)
			p, err := Pack([]int64{1, 0, 1, 1, 0}, r)
			require.NoError(t, err)
			assert.Equal(t, tc.packed, p.Words)
		})
	}
}

func TestUnpack_Small(t *testing.T) {
	for _, tc := range smallCases {
		t.Run(fmt.Sprintf("int32/%d", tc.original), func(t *testing.T) {
			r := MustBitRange(tc.original, DefaultTarget)
			got, err := Unpack(toWords[int32](tc.packed), r, tensor.Shape{5})
			require.NoError(t, err)
			assert.Equal(t, []int32{1, 0, 1, 1, 0}, got)
		})
		t.Run(fmt.Sprintf("uint64/%d", tc.original), func(t *testing.T) {
			r := MustBitRange(tc.original, DefaultTarget)
			got, err := Unpack(toWords[uint64](tc.packed), r, tensor.Shape{5})
			require.NoError(t, err)
			assert.Equal(t, []uint64{1, 0, 1, 1, 0}, got)
		})
	}
}

func TestUnpack_DifferentOutputs(t *testing.T) {
	packed := []int32{1 + 1<<3}

	tests := []struct {
		original int
		count    int
		want     []int32
	}{
		{1, 4, []int32{1, 0, 0, 1}},
		{1, 5, []int32{1, 0, 0, 1, 0}},
		{2, 2, []int32{1, 2}},
		{2, 3, []int32{1, 2, 0}},
		{3, 2, []int32{1, 1}},
		{3, 3, []int32{1, 1, 0}},
		{4, 1, []int32{9}},
		{4, 2, []int32{9, 0}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.original, tt.count), func(t *testing.T) {
			got, err := Unpack(packed, MustBitRange(tt.original, DefaultTarget), tensor.Shape{tt.count})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnpack_ZeroExtension(t *testing.T) {
	r := MustBitRange(7, DefaultTarget)
	values := []int32{117, 86, 42, 69, 9}

	p, err := Pack(values, r)
	require.NoError(t, err)

	// Whole words missing past the packed data also decode as zero.
	got, err := Unpack(p.Words, r, tensor.Shape{12})
	require.NoError(t, err)
	assert.Equal(t, append(append([]int32{}, values...), 0, 0, 0, 0, 0, 0, 0), got)

	got, err = Unpack([]int32{}, r, tensor.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 0, 0}, got)
}

func TestPack_SpecialCases(t *testing.T) {
	tests := []struct {
		original int
		values   []int32
		packed   []int32
	}{
		{
			original: 6,
			values:   []int32{50, 19, 51, 59, 10, 53, 36, 44, 31, 44, 31, 10, 31, 56, 49, 48, 35},
			packed:   []int32{183448818, 33236180, 236923387, 146481},
		},
		{
			original: 7,
			values:   []int32{117, 86, 42, 69, 9, 70, 66, 8, 112, 116},
			packed:   []int32{145402741, 17867529, 14960},
		},
		{
			original: 8,
			values:   []int32{38, 147, 1, 201, 205, 36, 155, 78, 163, 98},
			packed:   []int32{151098150, 162680028, 6464334},
		},
		{
			original: 12,
			values:   []int32{2805, 3264, 2344, 3472, 2962, 768, 2867, 3703, 2883, 2406},
			packed:   []int32{147589877, 153981074, 187904011, 112475767, 150},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_28", tt.original), func(t *testing.T) {
			r := MustBitRange(tt.original, DefaultTarget)

			p, err := Pack(tt.values, r)
			require.NoError(t, err)
			assert.Equal(t, tt.packed, p.Words)

			got, err := Unpack(tt.packed, r, tensor.Shape{len(tt.values)})
			require.NoError(t, err)
			assert.Equal(t, tt.values, got)
		})
	}
}

func TestPack_BoundaryConditions(t *testing.T) {
	pattern := []int{0, 0, 0, 1, 1, 1, 0, 0, 1, 1, 0, 1}

	for _, original := range []int{1, 2, 6, 7, 8, 12} {
		r := MustBitRange(original, DefaultTarget)
		maxV := int64(1)<<original - 1

		input := make([]int64, 0, len(pattern)*20)
		for i := 0; i < 20; i++ {
			for _, p := range pattern {
				input = append(input, int64(p)*maxV)
			}
		}

		for _, length := range []int{1, 6, 7, 8, 20 * 6, 20 * 7, 20 * 8, 20 * 12} {
			t.Run(fmt.Sprintf("%d_28/len=%d", original, length), func(t *testing.T) {
				values := input[:length]

				p, err := Pack(values, r)
				require.NoError(t, err)
				assert.Len(t, p.Words, r.WordCount(length))

				got, err := Unpack(p.Words, r, tensor.Shape{length})
				require.NoError(t, err)
				assert.Equal(t, values, got)
			})
		}
	}
}

func TestPack_RandomRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(42)

	for _, original := range []int{1, 2, 6, 7, 8, 12} {
		r := MustBitRange(original, DefaultTarget)
		for iter := 0; iter < 20; iter++ {
			n := 1 + rng.Intn(49)
			values := make([]int32, n)
			for i := range values {
				values[i] = int32(rng.Intn(1 << original))
			}

			p, err := Pack(values, r)
			require.NoError(t, err)

			got, err := p.Unpack()
			require.NoError(t, err)
			require.Equal(t, values, got, "round trip failed for input %v", values)
		}
	}
}

func TestPack_WideWords(t *testing.T) {
	// 20-bit values in 63-bit words straddle a boundary every third word.
	r := MustBitRange(20, 63)
	values := make([]uint64, 100)
	testutil.NewRNG(7).FillBelow(values, 1<<20)

	p, err := Pack(values, r)
	require.NoError(t, err)
	assert.Len(t, p.Words, r.WordCount(len(values)))
	for _, w := range p.Words {
		assert.Less(t, w, uint64(1)<<63)
	}

	got, err := Unpack(p.Words, r, tensor.Shape{len(values)})
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestPack_FinalWordHighBitsZero(t *testing.T) {
	r := MustBitRange(5, DefaultTarget)
	values := []int32{31, 31, 31, 31, 31, 31, 31}

	p, err := Pack(values, r)
	require.NoError(t, err)
	require.Len(t, p.Words, 2)

	// 35 bits: 28 in the first word, 7 in the second.
	assert.Equal(t, int32(1<<28-1), p.Words[0])
	assert.Equal(t, int32(1<<7-1), p.Words[1])
}

func TestPack_Empty(t *testing.T) {
	p, err := Pack([]int32{}, MustBitRange(3, DefaultTarget))
	require.NoError(t, err)
	assert.Empty(t, p.Words)
	assert.Equal(t, tensor.Shape{0, 1}, p.Shape())
}

func TestPack_InvalidValues(t *testing.T) {
	r := MustBitRange(4, DefaultTarget)

	_, err := Pack([]int32{1, 16}, r)
	assert.ErrorIs(t, err, tensor.ErrValueRange)

	_, err = Pack([]int64{-1}, r)
	assert.ErrorIs(t, err, tensor.ErrValueRange)
}

func TestUnpack_ShapeOverflow(t *testing.T) {
	r := MustBitRange(8, DefaultTarget)

	_, err := Unpack([]int32{1}, r, tensor.Shape{math.MaxInt, 2})
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestUnpack_InvalidWords(t *testing.T) {
	r := MustBitRange(4, DefaultTarget)

	_, err := Unpack([]int32{1 << 28}, r, tensor.Shape{1})
	assert.ErrorIs(t, err, tensor.ErrValueRange)

	_, err = Unpack([]int32{-5}, r, tensor.Shape{1})
	assert.ErrorIs(t, err, tensor.ErrValueRange)

	_, err = Unpack([]int32{1}, r, tensor.Shape{-1})
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestBitRange_Validation(t *testing.T) {
	tests := []struct {
		original, target int
		ok               bool
	}{
		{1, 28, true},
		{27, 28, true},
		{28, 28, false},
		{0, 28, false},
		{29, 28, false},
		{8, 63, true},
		{8, 64, false},
	}

	for _, tt := range tests {
		_, err := NewBitRange(tt.original, tt.target)
		if tt.ok {
			assert.NoError(t, err, "%d/%d", tt.original, tt.target)
		} else {
			assert.ErrorIs(t, err, tensor.ErrBitRange, "%d/%d", tt.original, tt.target)
		}
	}
}

func TestBitRange_WordWidth(t *testing.T) {
	r := MustBitRange(8, 40)

	_, err := Pack([]int32{1}, r)
	var bre *tensor.BitRangeError
	require.ErrorAs(t, err, &bre)
	assert.Equal(t, 32, bre.WordBits)

	_, err = Pack([]uint32{1}, MustBitRange(8, 32))
	assert.ErrorIs(t, err, tensor.ErrBitRange)

	_, err = Pack([]int64{1}, r)
	assert.NoError(t, err)

	assert.NoError(t, ValidFor[int32](MustBitRange(8, 31)))
}

func TestBitRange_Helpers(t *testing.T) {
	r := MustBitRange(6, DefaultTarget)

	assert.Equal(t, 4, r.ValuesPerWord())
	assert.Equal(t, 0, r.WordCount(0))
	assert.Equal(t, 1, r.WordCount(4))
	assert.Equal(t, 2, r.WordCount(5))
	assert.Equal(t, 4, r.WordCount(17))
	assert.Equal(t, 18, r.Capacity(4))
	assert.Panics(t, func() { MustBitRange(3, 2) })
}

func toWords[W Word](in []int64) []W {
	out := make([]W, len(in))
	for i, v := range in {
		out[i] = W(v)
	}
	return out
}
