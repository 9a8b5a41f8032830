package container

import (
	"bytes"
	"errors"
	"testing"

	"github.com/PolarWolf314/cpz/internal/codec"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/PolarWolf314/cpz/internal/streamcipher"
)

func testParams(ciphertext []byte) streamcipher.CipherParams {
	key := bytes.Repeat([]byte{0x11}, 32)
	iv := bytes.Repeat([]byte{0x22}, 16)
	salt := bytes.Repeat([]byte{0x33}, 8)
	return streamcipher.CipherParams{
		Ciphertext: codec.WordsFromBytes(ciphertext),
		Key:        codec.WordsFromBytes(key),
		IV:         codec.WordsFromBytes(iv),
		Salt:       codec.WordsFromBytes(salt),
	}
}

func TestFrameLayout(t *testing.T) {
	ciphertext := []byte{0xde, 0xad, 0xbe, 0xef, 0x00}
	buf, err := Frame(300, testParams(ciphertext))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	if len(buf) != HeaderSize+len(ciphertext) {
		t.Fatalf("len = %d, want %d", len(buf), HeaderSize+len(ciphertext))
	}

	wantOriginal := make([]byte, 16)
	wantOriginal[0], wantOriginal[1] = 0x2c, 0x01
	if !bytes.Equal(buf[0:16], wantOriginal) {
		t.Errorf("original length slot = %x, want %x", buf[0:16], wantOriginal)
	}

	wantCipher := make([]byte, 16)
	wantCipher[0] = 5
	if !bytes.Equal(buf[16:32], wantCipher) {
		t.Errorf("cipher length slot = %x, want %x", buf[16:32], wantCipher)
	}

	if !bytes.Equal(buf[32:64], bytes.Repeat([]byte{0x11}, 32)) {
		t.Errorf("key slot = %x", buf[32:64])
	}
	if !bytes.Equal(buf[64:80], bytes.Repeat([]byte{0x22}, 16)) {
		t.Errorf("iv slot = %x", buf[64:80])
	}
	if !bytes.Equal(buf[80:88], bytes.Repeat([]byte{0x33}, 8)) {
		t.Errorf("salt slot = %x", buf[80:88])
	}

	// The ciphertext keeps its genuine trailing zero byte.
	if !bytes.Equal(buf[88:], ciphertext) {
		t.Errorf("ciphertext = %x, want %x", buf[88:], ciphertext)
	}
}

func TestFrameUnframeRoundTrip(t *testing.T) {
	ciphertext := []byte("opaque ciphertext bytes")
	buf, err := Frame(1<<20, testParams(ciphertext))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	params, originalLength, cipherLength, err := Unframe(buf)
	if err != nil {
		t.Fatalf("Unframe: %v", err)
	}
	if originalLength != 1<<20 {
		t.Errorf("originalLength = %d, want %d", originalLength, 1<<20)
	}
	if cipherLength != len(ciphertext) {
		t.Errorf("cipherLength = %d, want %d", cipherLength, len(ciphertext))
	}
	if !bytes.Equal(params.Ciphertext.Bytes(), ciphertext) {
		t.Error("ciphertext mismatch")
	}
	if !bytes.Equal(params.Key.Bytes(), bytes.Repeat([]byte{0x11}, 32)) {
		t.Error("key mismatch")
	}
}

func TestFrameKeyWithTrailingZeroBytes(t *testing.T) {
	key := bytes.Repeat([]byte{0x44}, 32)
	key[31], key[30] = 0, 0
	params := testParams([]byte{1})
	params.Key = codec.WordsFromBytes(key)

	buf, err := Frame(1, params)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	got, _, _, err := Unframe(buf)
	if err != nil {
		t.Fatalf("Unframe: %v", err)
	}
	if !bytes.Equal(got.Key.Bytes(), key) {
		t.Errorf("slot padding did not restore trimmed key bytes: %x", got.Key.Bytes())
	}
}

func TestFrameRejectsOversizedField(t *testing.T) {
	params := testParams(nil)
	params.Salt = codec.WordsFromBytes(bytes.Repeat([]byte{0x55}, 12))

	if _, err := Frame(0, params); err == nil {
		t.Fatal("expected error for 12-byte salt")
	}
}

func TestUnframeMalformed(t *testing.T) {
	valid, err := Frame(10, testParams([]byte("0123456789")))
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	overflow := make([]byte, HeaderSize)
	copy(overflow[16:32], bytes.Repeat([]byte{0xff}, 16))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"shorter than header", make([]byte, HeaderSize-1)},
		{"truncated body", valid[:len(valid)-1]},
		{"extra trailing bytes", append(append([]byte{}, valid...), 0x00)},
		{"cipher length overflows", overflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Unframe(tt.data)
			if !errors.Is(err, cerrors.ErrMalformedContainer) {
				t.Errorf("Unframe error = %v, want ErrMalformedContainer", err)
			}
		})
	}
}

func TestUnframeHeaderOnly(t *testing.T) {
	buf := make([]byte, HeaderSize)
	_, originalLength, cipherLength, err := Unframe(buf)
	if err != nil {
		t.Fatalf("Unframe: %v", err)
	}
	if originalLength != 0 || cipherLength != 0 {
		t.Errorf("lengths = %d, %d, want 0, 0", originalLength, cipherLength)
	}
}

func TestHeaderMarshalRoundTrip(t *testing.T) {
	h := Header{OriginalLength: 65536, CipherLength: 42}
	h.Key[0] = 0xaa
	h.IV[15] = 0xbb
	h.Salt[7] = 0xcc

	buf, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(buf) != HeaderSize {
		t.Fatalf("len = %d, want %d", len(buf), HeaderSize)
	}

	var got Header
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got != h {
		t.Errorf("got %+v, want %+v", got, h)
	}
}
