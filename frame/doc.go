// Package frame gives packed buffers and sign masks a self-describing byte
// form.
//
// A frame is laid out as
//
//	"TENC" | header length (uint32 LE) | CBOR header | block
//
// where the block is
//
//	uncompressed size (uint32 LE) | stored size (uint32 LE) | payload
//
// A stored size of 0 means the payload is kept raw. Compression is only kept
// when it saves more than 10% of the block.
//
//	b, err := frame.EncodePacked(packed, frame.CompressionZSTD)
//	p, err := frame.DecodePacked[int32](b)
//
// Frames carry bytes only; where they are written is up to the caller.
package frame
