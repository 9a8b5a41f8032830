package streamcipher

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/PolarWolf314/cpz/internal/codec"
	"golang.org/x/crypto/chacha20"
)

const (
	KeySize  = chacha20.KeySize
	IVSize   = 16
	SaltSize = 8
)

// CipherParams is the material produced by Encrypt. Key, IV and Salt are
// what a container stores in its header.
type CipherParams struct {
	Ciphertext codec.WordArray
	Key        codec.WordArray
	IV         codec.WordArray
	Salt       codec.WordArray
}

// Cipher encrypts word arrays. The zero value reads salts from crypto/rand.
type Cipher struct {
	Rand io.Reader
}

// Encrypt derives key material from password and a fresh salt and encrypts
// plaintext. Only the first plaintext.SigBytes bytes are significant.
func (c Cipher) Encrypt(plaintext codec.WordArray, password string) (CipherParams, error) {
	r := c.Rand
	if r == nil {
		r = rand.Reader
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(r, salt); err != nil {
		return CipherParams{}, fmt.Errorf("generating salt: %w", err)
	}

	key, iv := DeriveKeyIV([]byte(password), salt, KeySize, IVSize)

	ciphertext, err := xorKeyStream(plaintext.Bytes(), key, iv, salt)
	if err != nil {
		return CipherParams{}, err
	}

	return CipherParams{
		Ciphertext: codec.WordsFromBytes(ciphertext),
		Key:        codec.WordsFromBytes(key),
		IV:         codec.WordsFromBytes(iv),
		Salt:       codec.WordsFromBytes(salt),
	}, nil
}

// Decrypt reverses Encrypt using the key, IV and salt carried in params.
// The password is accepted for symmetry with Encrypt and is not used.
func (c Cipher) Decrypt(params CipherParams, password string) (codec.WordArray, error) {
	key := params.Key.Bytes()
	iv := params.IV.Bytes()
	salt := params.Salt.Bytes()

	if len(key) != KeySize {
		return codec.WordArray{}, fmt.Errorf("key is %d bytes, want %d", len(key), KeySize)
	}
	if len(iv) != IVSize {
		return codec.WordArray{}, fmt.Errorf("iv is %d bytes, want %d", len(iv), IVSize)
	}
	if len(salt) != SaltSize {
		return codec.WordArray{}, fmt.Errorf("salt is %d bytes, want %d", len(salt), SaltSize)
	}

	plaintext, err := xorKeyStream(params.Ciphertext.Bytes(), key, iv, salt)
	if err != nil {
		return codec.WordArray{}, err
	}
	return codec.WordsFromBytes(plaintext), nil
}

// xorKeyStream runs XChaCha20 with nonce iv || salt (24 bytes).
func xorKeyStream(in, key, iv, salt []byte) ([]byte, error) {
	nonce := make([]byte, 0, chacha20.NonceSizeX)
	nonce = append(nonce, iv...)
	nonce = append(nonce, salt...)

	s, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("initializing stream cipher: %w", err)
	}

	out := make([]byte, len(in))
	s.XORKeyStream(out, in)
	return out, nil
}
