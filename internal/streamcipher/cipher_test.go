package streamcipher

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/PolarWolf314/cpz/internal/codec"
)

// fixedReader returns the same byte sequence on every read.
type fixedReader struct{ b []byte }

func (r fixedReader) Read(p []byte) (int, error) {
	n := copy(p, r.b)
	return n, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestDeriveKeyIVMatchesOpenSSL(t *testing.T) {
	// openssl enc -aes-256-cbc -pass pass:password -S 0102030405060708 -md md5 -P
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	key, iv := DeriveKeyIV([]byte("password"), salt, KeySize, IVSize)

	wantKey := "e7b0971e52ca5cc8d0539fb3412f6316f7ba2e6ee293d9f3457b99436b51ce02"
	wantIV := "8d450e2ed75a84a923d4eac9fe49226b"
	if got := hex.EncodeToString(key); got != wantKey {
		t.Errorf("key = %s, want %s", got, wantKey)
	}
	if got := hex.EncodeToString(iv); got != wantIV {
		t.Errorf("iv = %s, want %s", got, wantIV)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"one byte", []byte{0x42}},
		{"trailing zero", []byte{0xaa, 0xbb, 0xcc, 0x00}},
		{"text", []byte("the quick brown fox jumps over the lazy dog")},
		{"large", bytes.Repeat([]byte{0x00, 0x01, 0x02}, 10000)},
	}

	var c Cipher
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := c.Encrypt(codec.WordsFromBytes(tt.plaintext), "secret")
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			if params.Ciphertext.SigBytes != len(tt.plaintext) {
				t.Errorf("ciphertext SigBytes = %d, want %d", params.Ciphertext.SigBytes, len(tt.plaintext))
			}

			out, err := c.Decrypt(params, "secret")
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if !bytes.Equal(out.Bytes(), tt.plaintext) {
				t.Errorf("round trip mismatch")
			}
		})
	}
}

func TestEncryptStoresDerivedMaterial(t *testing.T) {
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	c := Cipher{Rand: fixedReader{salt}}

	params, err := c.Encrypt(codec.WordsFromBytes([]byte("data")), "password")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	key, iv := DeriveKeyIV([]byte("password"), salt, KeySize, IVSize)
	if !bytes.Equal(params.Key.Bytes(), key) {
		t.Error("stored key does not match derived key")
	}
	if !bytes.Equal(params.IV.Bytes(), iv) {
		t.Error("stored iv does not match derived iv")
	}
	if !bytes.Equal(params.Salt.Bytes(), salt) {
		t.Error("stored salt does not match generated salt")
	}
}

func TestDecryptIgnoresPassword(t *testing.T) {
	var c Cipher
	params, err := c.Encrypt(codec.WordsFromBytes([]byte("stored key wins")), "right")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	out, err := c.Decrypt(params, "wrong")
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(out.Bytes()) != "stored key wins" {
		t.Errorf("Decrypt with another password = %q", out.Bytes())
	}
}

func TestEncryptIsSaltDependent(t *testing.T) {
	plaintext := codec.WordsFromBytes([]byte("same input"))

	a, err := Cipher{Rand: fixedReader{[]byte{1, 1, 1, 1, 1, 1, 1, 1}}}.Encrypt(plaintext, "pw")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	b, err := Cipher{Rand: fixedReader{[]byte{2, 2, 2, 2, 2, 2, 2, 2}}}.Encrypt(plaintext, "pw")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if bytes.Equal(a.Ciphertext.Bytes(), b.Ciphertext.Bytes()) {
		t.Error("different salts produced identical ciphertext")
	}
}

func TestEncryptPropagatesRandomFailure(t *testing.T) {
	_, err := Cipher{Rand: failingReader{}}.Encrypt(codec.WordsFromBytes([]byte("x")), "pw")
	if err == nil {
		t.Fatal("expected error when salt generation fails")
	}
}

func TestDecryptRejectsShortKeyMaterial(t *testing.T) {
	params := CipherParams{
		Key:  codec.WordsFromBytes(make([]byte, 16)),
		IV:   codec.WordsFromBytes(make([]byte, IVSize)),
		Salt: codec.WordsFromBytes(make([]byte, SaltSize)),
	}
	if _, err := (Cipher{}).Decrypt(params, ""); err == nil {
		t.Fatal("expected error for 16-byte key")
	}
}
