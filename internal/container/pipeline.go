package container

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/cpz/internal/codec"
	"github.com/PolarWolf314/cpz/internal/compress"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/PolarWolf314/cpz/internal/streamcipher"
)

// Extension is the file suffix of a container.
const Extension = ".cpz"

// Codec runs the compress-then-encrypt pipeline. The zero value compresses
// with zstd and draws salts from crypto/rand.
type Codec struct {
	Compression compress.Codec
	Cipher      streamcipher.Cipher
}

// Output is a produced buffer together with its suggested file name.
type Output struct {
	Name string
	Data []byte
}

// EncryptFile encrypts plaintext with the zero-value Codec.
func EncryptFile(plaintext []byte, password string) ([]byte, error) {
	return Codec{}.EncryptFile(plaintext, password)
}

// DecryptFile decrypts a container with the zero-value Codec.
func DecryptFile(data []byte, password string) ([]byte, error) {
	return Codec{}.DecryptFile(data, password)
}

// EncryptFile compresses plaintext, encrypts the compressed bytes and frames
// the result, recording len(plaintext) as the original length.
func (c Codec) EncryptFile(plaintext []byte, password string) ([]byte, error) {
	compressed, err := compress.Compress(plaintext, c.Compression)
	if err != nil {
		return nil, err
	}

	params, err := c.Cipher.Encrypt(codec.WordsFromBytes(compressed), password)
	if err != nil {
		return nil, fmt.Errorf("encrypting payload: %w", err)
	}

	return Frame(len(plaintext), params)
}

// DecryptFile unframes data, decrypts it with the key material stored in the
// header, decompresses and truncates to the original length. The password
// is not needed to recover the key material.
func (c Codec) DecryptFile(data []byte, password string) ([]byte, error) {
	params, originalLength, _, err := Unframe(data)
	if err != nil {
		return nil, err
	}

	compressed, err := c.Cipher.Decrypt(params, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrMalformedContainer, err)
	}

	plaintext, err := compress.Decompress(compressed.Bytes())
	if err != nil {
		return nil, err
	}

	if len(plaintext) < originalLength {
		return nil, fmt.Errorf("%w: payload has %d bytes, header records %d",
			cerrors.ErrDecompression, len(plaintext), originalLength)
	}
	return plaintext[:originalLength], nil
}

// EncryptNamed encrypts data and names the output name + ".cpz".
func (c Codec) EncryptNamed(name string, data []byte, password string) (Output, error) {
	out, err := c.EncryptFile(data, password)
	if err != nil {
		return Output{}, err
	}
	return Output{Name: name + Extension, Data: out}, nil
}

// DecryptNamed decrypts data and names the output with ".cpz" stripped.
// A name without the extension is rejected before data is inspected, with
// no output and ErrWrongExtension.
func (c Codec) DecryptNamed(name string, data []byte, password string) (*Output, error) {
	if !HasExtension(name) {
		return nil, cerrors.ErrWrongExtension
	}

	out, err := c.DecryptFile(data, password)
	if err != nil {
		return nil, err
	}
	return &Output{Name: StripExtension(name), Data: out}, nil
}

// HasExtension reports whether name ends in ".cpz".
func HasExtension(name string) bool {
	return strings.HasSuffix(name, Extension)
}

// StripExtension removes a trailing ".cpz" from name.
func StripExtension(name string) string {
	return strings.TrimSuffix(name, Extension)
}
