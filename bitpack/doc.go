// Package bitpack packs small non-negative integers into fixed-width words.
//
// Values of Original bits are laid out back to back, least significant bit
// first, in words that hold Target bits each. A value that does not fit in the
// remaining capacity of a word continues in the low bits of the next word, so a
// value is split across at most two words:
//
//	r, _ := bitpack.NewBitRange(6, 28)
//	p, _ := bitpack.Pack([]int32{50, 19, 51, 59, 10}, r)
//	// p.Words == []int32{183448818, 0}   (30 bits need two 28-bit words)
//
//	values, _ := bitpack.Unpack(p.Words, r, tensor.Shape{5})
//
// Target must stay below the sign bit of the word type, which keeps the logic
// identical for int32, int64, uint32 and uint64 words.
//
// # Zero Extension
//
// Unpack decodes exactly as many values as the requested shape holds. Positions
// past the end of the packed words decode as 0, mirroring the zero padding Pack
// writes into the final word.
package bitpack
