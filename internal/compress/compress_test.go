package compress

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	cerrors "github.com/PolarWolf314/cpz/internal/errors"
)

func TestCompressRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := make([]byte, 64*1024)
	rng.Read(random)

	inputs := map[string][]byte{
		"empty":      {},
		"one byte":   {0x01},
		"repetitive": bytes.Repeat([]byte("Hello Hello Hello Hellofdfdf ellofdfdf, "), 500),
		"random":     random,
	}

	for _, codec := range []Codec{Zstd, LZ4} {
		for name, data := range inputs {
			t.Run(string(codec)+"/"+name, func(t *testing.T) {
				compressed, err := Compress(data, codec)
				if err != nil {
					t.Fatalf("Compress: %v", err)
				}

				out, err := Decompress(compressed)
				if err != nil {
					t.Fatalf("Decompress: %v", err)
				}
				if !bytes.Equal(out, data) {
					t.Errorf("round trip mismatch: got %d bytes, want %d", len(out), len(data))
				}
			})
		}
	}
}

func TestCompressShrinksRepetitiveInput(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 4096)

	for _, codec := range []Codec{Zstd, LZ4} {
		compressed, err := Compress(data, codec)
		if err != nil {
			t.Fatalf("Compress(%s): %v", codec, err)
		}
		if len(compressed) >= len(data)/10 {
			t.Errorf("%s compressed %d bytes to %d", codec, len(data), len(compressed))
		}
	}
}

func TestDetect(t *testing.T) {
	z, err := Compress([]byte("zstd payload"), Zstd)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if got, err := Detect(z); err != nil || got != Zstd {
		t.Errorf("Detect(zstd) = %q, %v", got, err)
	}

	l, err := Compress([]byte("lz4 payload"), LZ4)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if got, err := Detect(l); err != nil || got != LZ4 {
		t.Errorf("Detect(lz4) = %q, %v", got, err)
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte{0x28, 0xb5}},
		{"unknown magic", []byte("not a compressed stream")},
		{"truncated zstd", []byte{0x28, 0xb5, 0x2f, 0xfd, 0x00, 0x58}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.data)
			if !errors.Is(err, cerrors.ErrDecompression) {
				t.Errorf("Decompress error = %v, want ErrDecompression", err)
			}
		})
	}
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		in      string
		want    Codec
		wantErr bool
	}{
		{"", Zstd, false},
		{"zstd", Zstd, false},
		{" LZ4 ", LZ4, false},
		{"gzip", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCodec(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCodec(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCodec(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if tt.wantErr && !errors.Is(err, cerrors.ErrUnknownCodec) {
			t.Errorf("ParseCodec(%q) error = %v, want ErrUnknownCodec", tt.in, err)
		}
	}
}
