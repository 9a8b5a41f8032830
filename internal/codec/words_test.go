package codec

import (
	"bytes"
	"testing"
)

func TestWordsFromBytesPacksBigEndian(t *testing.T) {
	wa := WordsFromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	if wa.SigBytes != 5 {
		t.Errorf("SigBytes = %d, want 5", wa.SigBytes)
	}
	want := []uint32{0x01020304, 0x05000000}
	if len(wa.Words) != len(want) {
		t.Fatalf("got %d words, want %d", len(wa.Words), len(want))
	}
	for i := range want {
		if wa.Words[i] != want[i] {
			t.Errorf("word %d = %#08x, want %#08x", i, wa.Words[i], want[i])
		}
	}
}

func TestBytesFromWordsDropsInferredPadding(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"one byte", []byte{0xaa}},
		{"two bytes", []byte{0xaa, 0xbb}},
		{"three bytes", []byte{0xaa, 0xbb, 0xcc}},
		{"full word", []byte{0xaa, 0xbb, 0xcc, 0xdd}},
		{"five bytes", []byte{0x01, 0x02, 0x03, 0x04, 0x05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BytesFromWords(WordsFromBytes(tt.input))
			if !bytes.Equal(got, tt.input) {
				t.Errorf("BytesFromWords(WordsFromBytes(%x)) = %x", tt.input, got)
			}
		})
	}
}

func TestBytesFromWordsFinalWordPatterns(t *testing.T) {
	tests := []struct {
		name  string
		last  uint32
		wantN int
	}{
		{"all zero drops four", 0x00000000, 0},
		{"one significant byte drops three", 0xaa000000, 1},
		{"two significant bytes drop two", 0xaabb0000, 2},
		{"three significant bytes drop one", 0xaabbcc00, 3},
		{"no trailing zero drops nothing", 0xaabbccdd, 4},
		{"leading zero is not padding", 0x00aa0000, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wa := WordArray{Words: []uint32{0x11111111, tt.last}, SigBytes: 8}
			got := BytesFromWords(wa)
			if len(got) != 4+tt.wantN {
				t.Errorf("len = %d, want %d", len(got), 4+tt.wantN)
			}
		})
	}
}

func TestBytesFromWordsLosesGenuineTrailingZeros(t *testing.T) {
	// The inference cannot tell a real zero byte from padding.
	input := []byte{0xaa, 0xbb, 0xcc, 0x00}
	got := BytesFromWords(WordsFromBytes(input))
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	exact := WordsFromBytes(input).Bytes()
	if !bytes.Equal(exact, input) {
		t.Errorf("Bytes() = %x, want %x", exact, input)
	}
}
