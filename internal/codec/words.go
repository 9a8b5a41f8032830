package codec

import "encoding/binary"

// WordArray is a byte sequence packed into big-endian 32-bit words.
// SigBytes is the number of significant bytes; the final word may carry
// zero padding beyond it.
type WordArray struct {
	Words    []uint32
	SigBytes int
}

// WordsFromBytes packs b four bytes per word, zero-padding the final word.
func WordsFromBytes(b []byte) WordArray {
	words := make([]uint32, (len(b)+3)/4)
	for i := range words {
		var w [4]byte
		copy(w[:], b[i*4:])
		words[i] = binary.BigEndian.Uint32(w[:])
	}
	return WordArray{Words: words, SigBytes: len(b)}
}

// BytesFromWords unpacks every word and drops the trailing zero bytes of the
// final word: an all-zero word drops 4, xx000000 drops 3, xxxx0000 drops 2,
// xxxxxx00 drops 1. SigBytes is not consulted.
func BytesFromWords(wa WordArray) []byte {
	out := make([]byte, len(wa.Words)*4)
	for i, w := range wa.Words {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	if len(wa.Words) == 0 {
		return out
	}
	return out[:len(out)-trailingZeroBytes(wa.Words[len(wa.Words)-1])]
}

// trailingZeroBytes counts the padding inferred from the final word. Only
// the exact patterns produced by zero padding are recognized, so a word
// such as 00xx0000 drops nothing.
func trailingZeroBytes(w uint32) int {
	b0, b1, b2, b3 := byte(w>>24), byte(w>>16), byte(w>>8), byte(w)
	switch {
	case w == 0:
		return 4
	case b0 != 0 && b1 == 0 && b2 == 0 && b3 == 0:
		return 3
	case b0 != 0 && b1 != 0 && b2 == 0 && b3 == 0:
		return 2
	case b0 != 0 && b1 != 0 && b2 != 0 && b3 == 0:
		return 1
	default:
		return 0
	}
}

// Bytes unpacks the words and truncates to SigBytes.
func (wa WordArray) Bytes() []byte {
	out := make([]byte, len(wa.Words)*4)
	for i, w := range wa.Words {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	if wa.SigBytes < len(out) {
		out = out[:wa.SigBytes]
	}
	return out
}
