package frame

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/fxamacker/cbor/v2"

	"github.com/hupe1980/tensorenc/bitpack"
	"github.com/hupe1980/tensorenc/internal/conv"
	"github.com/hupe1980/tensorenc/tensor"
)

const (
	magic = "TENC"

	// Version is the frame layout version written by this package.
	Version = 1

	prefixSize    = 8
	maxHeaderSize = 1 << 12
)

// Kind identifies what a frame body holds.
type Kind uint8

const (
	// KindPacked is a bitpack.Packed word buffer.
	KindPacked Kind = 1
	// KindSignMask is a roaring bitmap of negative sign positions.
	KindSignMask Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindPacked:
		return "packed"
	case KindSignMask:
		return "signmask"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Header describes a frame body.
type Header struct {
	Version     uint8        `cbor:"1,keyasint"`
	Kind        Kind         `cbor:"2,keyasint"`
	DType       tensor.DType `cbor:"3,keyasint,omitempty"`
	Original    uint         `cbor:"4,keyasint,omitempty"`
	Target      uint         `cbor:"5,keyasint,omitempty"`
	Count       int          `cbor:"6,keyasint"`
	Words       int          `cbor:"7,keyasint,omitempty"`
	Size        int          `cbor:"8,keyasint"`
	Compression Compression  `cbor:"9,keyasint,omitempty"`
}

var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{MaxNestedLevels: 4}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// EncodePacked encodes p as a frame with its words block-compressed by c.
func EncodePacked[W bitpack.Word](p bitpack.Packed[W], c Compression) ([]byte, error) {
	if err := bitpack.ValidFor[W](p.Range); err != nil {
		return nil, err
	}
	if p.Count < 0 {
		return nil, &tensor.CountError{Count: p.Count}
	}
	if want := p.Range.WordCount(p.Count); len(p.Words) != want {
		return nil, fmt.Errorf("%w: %d values need %d words, got %d", tensor.ErrShape, p.Count, want, len(p.Words))
	}

	dtype := tensor.DTypeFor[W]()
	body := make([]byte, len(p.Words)*dtype.Size())
	putWords(body, p.Words)

	return encode(Header{
		Version:     Version,
		Kind:        KindPacked,
		DType:       dtype,
		Original:    p.Range.Original,
		Target:      p.Range.Target,
		Count:       p.Count,
		Words:       len(p.Words),
		Size:        len(body),
		Compression: c,
	}, body)
}

// DecodePacked decodes a frame written by EncodePacked. The frame's word
// dtype must match W.
func DecodePacked[W bitpack.Word](b []byte) (bitpack.Packed[W], error) {
	h, body, err := decode(b)
	if err != nil {
		return bitpack.Packed[W]{}, err
	}
	if h.Kind != KindPacked {
		return bitpack.Packed[W]{}, fmt.Errorf("%w: expected %s frame, got %s", ErrCorrupt, KindPacked, h.Kind)
	}
	if want := tensor.DTypeFor[W](); h.DType != want {
		return bitpack.Packed[W]{}, &tensor.DTypeError{Op: "frame", DType: h.DType, Supported: []tensor.DType{want}}
	}

	r := bitpack.BitRange{Original: h.Original, Target: h.Target}
	if err := bitpack.ValidFor[W](r); err != nil {
		return bitpack.Packed[W]{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if h.Count < 0 || h.Words != r.WordCount(h.Count) {
		return bitpack.Packed[W]{}, fmt.Errorf("%w: %d words cannot hold exactly %d values", ErrCorrupt, h.Words, h.Count)
	}
	size, err := conv.MulInt(h.Words, h.DType.Size())
	if err != nil || size != len(body) {
		return bitpack.Packed[W]{}, fmt.Errorf("%w: body is %d bytes, %d words need %d", ErrCorrupt, len(body), h.Words, size)
	}

	words := make([]W, h.Words)
	getWords(words, body)
	limit := uint64(1)<<r.Target - 1
	for i, w := range words {
		if w < 0 || uint64(w) > limit {
			return bitpack.Packed[W]{}, fmt.Errorf("%w: word %d exceeds %d bits", ErrCorrupt, i, r.Target)
		}
	}
	return bitpack.Packed[W]{Words: words, Range: r, Count: h.Count}, nil
}

// EncodeSignMask encodes a sign mask covering count values.
func EncodeSignMask(mask *roaring.Bitmap, count int, c Compression) ([]byte, error) {
	if err := checkMask(mask, count); err != nil {
		return nil, err
	}
	body, err := mask.ToBytes()
	if err != nil {
		return nil, err
	}
	return encode(Header{
		Version:     Version,
		Kind:        KindSignMask,
		Count:       count,
		Size:        len(body),
		Compression: c,
	}, body)
}

// DecodeSignMask decodes a frame written by EncodeSignMask and returns the
// mask and the number of values it covers.
func DecodeSignMask(b []byte) (*roaring.Bitmap, int, error) {
	h, body, err := decode(b)
	if err != nil {
		return nil, 0, err
	}
	if h.Kind != KindSignMask {
		return nil, 0, fmt.Errorf("%w: expected %s frame, got %s", ErrCorrupt, KindSignMask, h.Kind)
	}

	mask := roaring.New()
	if err := mask.UnmarshalBinary(body); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := checkMask(mask, h.Count); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return mask, h.Count, nil
}

// ReadHeader returns the header of the frame in b without decoding its body.
func ReadHeader(b []byte) (Header, error) {
	h, _, err := splitFrame(b)
	return h, err
}

func checkMask(mask *roaring.Bitmap, count int) error {
	if mask == nil {
		return fmt.Errorf("%w: nil sign mask", tensor.ErrShape)
	}
	if count < 0 {
		return &tensor.CountError{Count: count}
	}
	if !mask.IsEmpty() && uint64(mask.Maximum()) >= uint64(count) {
		return fmt.Errorf("%w: mask position %d outside %d values", tensor.ErrValueRange, mask.Maximum(), count)
	}
	return nil
}

func encode(h Header, body []byte) ([]byte, error) {
	if !h.Compression.valid() {
		return nil, fmt.Errorf("frame: unknown compression %s", h.Compression)
	}
	hb, err := encMode.Marshal(h)
	if err != nil {
		return nil, err
	}
	block, err := compressBlock(body, h.Compression)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(prefixSize + len(hb) + len(block))
	buf.WriteString(magic)
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(hb))))
	buf.Write(hb)
	buf.Write(block)
	return buf.Bytes(), nil
}

func decode(b []byte) (Header, []byte, error) {
	h, block, err := splitFrame(b)
	if err != nil {
		return Header{}, nil, err
	}
	body, err := decompressBlock(block, h.Compression, h.Size)
	if err != nil {
		return Header{}, nil, err
	}
	return h, body, nil
}

// splitFrame parses the prefix and header and returns the remaining block.
func splitFrame(b []byte) (Header, []byte, error) {
	hlen, err := parsePrefix(b)
	if err != nil {
		return Header{}, nil, err
	}
	if len(b) < prefixSize+hlen {
		return Header{}, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	h, err := parseHeader(b[prefixSize : prefixSize+hlen])
	if err != nil {
		return Header{}, nil, err
	}
	return h, b[prefixSize+hlen:], nil
}

func parsePrefix(b []byte) (int, error) {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return 0, ErrBadMagic
	}
	if len(b) < prefixSize {
		return 0, fmt.Errorf("%w: truncated prefix", ErrCorrupt)
	}
	hlen := binary.LittleEndian.Uint32(b[len(magic):])
	if hlen == 0 || hlen > maxHeaderSize {
		return 0, fmt.Errorf("%w: header length %d", ErrCorrupt, hlen)
	}
	return int(hlen), nil
}

func parseHeader(b []byte) (Header, error) {
	var h Header
	if err := decMode.Unmarshal(b, &h); err != nil {
		return Header{}, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.Version)
	}
	if !h.Compression.valid() {
		return Header{}, fmt.Errorf("%w: unknown compression %s", ErrCorrupt, h.Compression)
	}
	if h.Size < 0 {
		return Header{}, fmt.Errorf("%w: negative body size %d", ErrCorrupt, h.Size)
	}
	return h, nil
}

func putWords[W bitpack.Word](dst []byte, words []W) {
	switch tensor.DTypeFor[W]().Size() {
	case 4:
		for i, w := range words {
			binary.LittleEndian.PutUint32(dst[i*4:], uint32(w))
		}
	default:
		for i, w := range words {
			binary.LittleEndian.PutUint64(dst[i*8:], uint64(w))
		}
	}
}

func getWords[W bitpack.Word](dst []W, src []byte) {
	switch tensor.DTypeFor[W]().Size() {
	case 4:
		for i := range dst {
			dst[i] = W(binary.LittleEndian.Uint32(src[i*4:]))
		}
	default:
		for i := range dst {
			dst[i] = W(binary.LittleEndian.Uint64(src[i*8:]))
		}
	}
}
