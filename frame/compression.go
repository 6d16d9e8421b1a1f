package frame

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/tensorenc/internal/conv"
)

// Compression defines the block compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the block raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
	// CompressionSnappy uses Snappy block compression.
	CompressionSnappy Compression = 3
)

// String returns the lower-case name of the algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses a name as produced by String.
func ParseCompression(s string) (Compression, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return CompressionNone, true
	case "lz4":
		return CompressionLZ4, true
	case "zstd":
		return CompressionZSTD, true
	case "snappy":
		return CompressionSnappy, true
	default:
		return CompressionNone, false
	}
}

func (c Compression) valid() bool { return c <= CompressionSnappy }

// ZSTD encoder/decoder pools
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

const blockHeaderSize = 8

// compressBlock returns data behind a block header, compressed with c when
// that saves more than 10%.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	size, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, err
	}

	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed = compressZSTD(data)
	case CompressionSnappy:
		compressed = snappy.Encode(nil, data)
	default:
		return nil, fmt.Errorf("frame: unknown compression %s", c)
	}
	if err != nil {
		return nil, err
	}

	// Incompressible or not worth it: store raw.
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], size)
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], size)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)
	return enc.EncodeAll(data, nil)
}

// blockLen returns the total length of the block at the start of data.
func blockLen(data []byte) (int, error) {
	if len(data) < blockHeaderSize {
		return 0, fmt.Errorf("%w: block too small for header", ErrCorrupt)
	}
	size := binary.LittleEndian.Uint32(data[0:])
	stored := binary.LittleEndian.Uint32(data[4:])
	if stored == 0 {
		stored = size
	}
	return blockHeaderSize + int(stored), nil
}

// decompressBlock returns the payload of the block in data, which must span
// all of data and decode to want bytes.
func decompressBlock(data []byte, c Compression, want int) ([]byte, error) {
	n, err := blockLen(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: block is %d bytes, frame holds %d", ErrCorrupt, n, len(data))
	}

	size := binary.LittleEndian.Uint32(data[0:])
	stored := binary.LittleEndian.Uint32(data[4:])
	if uint64(size) != uint64(want) {
		return nil, fmt.Errorf("%w: block holds %d bytes, header expects %d", ErrCorrupt, size, want)
	}
	payload := data[blockHeaderSize:]
	if stored == 0 {
		return payload, nil
	}

	var out []byte
	switch c {
	case CompressionLZ4:
		out = make([]byte, size)
		var m int
		m, err = lz4.UncompressBlock(payload, out)
		out = out[:max(m, 0)]
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		out, err = dec.DecodeAll(payload, make([]byte, 0, size))
	case CompressionSnappy:
		var m int
		m, err = snappy.DecodedLen(payload)
		if err == nil && uint32(m) != size {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		if err == nil {
			out, err = snappy.Decode(make([]byte, size), payload)
		}
	default:
		return nil, fmt.Errorf("%w: compressed block with compression %s", ErrCorrupt, c)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if uint32(len(out)) != size {
		return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
	}
	return out, nil
}
