package frame

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tensorenc/bitpack"
	"github.com/hupe1980/tensorenc/resource"
)

// Writer writes frames to an underlying writer, throttled by a controller's
// IO limit.
type Writer struct {
	w           io.Writer
	compression Compression
	frames      int
	written     int64
}

// NewWriter creates a frame writer. A nil ctrl writes without throttling.
// ctx bounds the time spent waiting on the IO limit.
func NewWriter(ctx context.Context, w io.Writer, ctrl *resource.Controller, c Compression) *Writer {
	return &Writer{
		w:           resource.NewRateLimitedWriter(ctx, w, ctrl),
		compression: c,
	}
}

// WritePacked encodes p and writes it as one frame.
func WritePacked[W bitpack.Word](fw *Writer, p bitpack.Packed[W]) error {
	b, err := EncodePacked(p, fw.compression)
	if err != nil {
		return err
	}
	return fw.write(b)
}

// WriteSignMask encodes mask and writes it as one frame.
func (fw *Writer) WriteSignMask(mask *roaring.Bitmap, count int) error {
	b, err := EncodeSignMask(mask, count, fw.compression)
	if err != nil {
		return err
	}
	return fw.write(b)
}

// Frames returns the number of frames written.
func (fw *Writer) Frames() int { return fw.frames }

// BytesWritten returns the total bytes written.
func (fw *Writer) BytesWritten() int64 { return fw.written }

func (fw *Writer) write(b []byte) error {
	n, err := fw.w.Write(b)
	fw.written += int64(n)
	if err != nil {
		return err
	}
	fw.frames++
	return nil
}

// Reader splits a stream written by Writer back into frames.
type Reader struct {
	r io.Reader
}

// NewReader creates a frame reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next returns the bytes of the next frame, ready for DecodePacked or
// DecodeSignMask. It returns io.EOF at a clean end of stream.
func (fr *Reader) Next() ([]byte, error) {
	var buf bytes.Buffer

	if _, err := io.CopyN(&buf, fr.r, prefixSize); err != nil {
		if err == io.EOF && buf.Len() == 0 {
			return nil, io.EOF
		}
		return nil, truncated(err)
	}
	hlen, err := parsePrefix(buf.Bytes())
	if err != nil {
		return nil, err
	}

	if _, err := io.CopyN(&buf, fr.r, int64(hlen)+blockHeaderSize); err != nil {
		return nil, truncated(err)
	}
	h, block, err := splitFrame(buf.Bytes())
	if err != nil {
		return nil, err
	}

	size := binary.LittleEndian.Uint32(block[0:])
	stored := binary.LittleEndian.Uint32(block[4:])
	if uint64(size) != uint64(h.Size) || stored > size {
		return nil, fmt.Errorf("%w: block sizes %d/%d disagree with header size %d", ErrCorrupt, size, stored, h.Size)
	}
	if stored == 0 {
		stored = size
	}

	if _, err := io.CopyN(&buf, fr.r, int64(stored)); err != nil {
		return nil, truncated(err)
	}
	return buf.Bytes(), nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: truncated frame", ErrCorrupt)
	}
	return err
}
