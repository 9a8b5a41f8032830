package exchange

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// Version identifies the sealed-box scheme.
const Version = "x25519-xsalsa20-poly1305"

// EncryptRequest is the input of Encrypt.
type EncryptRequest struct {
	PublicKey string `json:"publicKey"`
	Data      string `json:"data"`
	Version   string `json:"version"`
}

// EncryptedData is a sealed secret. Binary fields are standard base64.
type EncryptedData struct {
	Version        string `json:"version"`
	Nonce          string `json:"nonce"`
	EphemPublicKey string `json:"ephemPublicKey"`
	Ciphertext     string `json:"ciphertext"`
}

// Encrypt seals req.Data for the holder of the private key matching
// req.PublicKey (base64 X25519). rnd supplies the ephemeral key and nonce;
// nil means crypto/rand.
func Encrypt(req EncryptRequest, rnd io.Reader) (EncryptedData, error) {
	if req.Version != Version {
		return EncryptedData{}, fmt.Errorf("%w: %q", cerrors.ErrUnsupportedVersion, req.Version)
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	recipient, err := ParsePublicKey(req.PublicKey)
	if err != nil {
		return EncryptedData{}, err
	}

	ephemPub, ephemPriv, err := box.GenerateKey(rnd)
	if err != nil {
		return EncryptedData{}, fmt.Errorf("generating ephemeral key: %w", err)
	}

	var nonce [24]byte
	if _, err := io.ReadFull(rnd, nonce[:]); err != nil {
		return EncryptedData{}, fmt.Errorf("generating nonce: %w", err)
	}

	sealed := box.Seal(nil, []byte(req.Data), &nonce, recipient, ephemPriv)

	return EncryptedData{
		Version:        Version,
		Nonce:          base64.StdEncoding.EncodeToString(nonce[:]),
		EphemPublicKey: base64.StdEncoding.EncodeToString(ephemPub[:]),
		Ciphertext:     base64.StdEncoding.EncodeToString(sealed),
	}, nil
}

// Open decrypts a sealed secret with the recipient's X25519 private key.
func Open(data EncryptedData, privateKey *[32]byte) ([]byte, error) {
	if data.Version != Version {
		return nil, fmt.Errorf("%w: %q", cerrors.ErrUnsupportedVersion, data.Version)
	}

	nonce, err := decodeFixed(data.Nonce, 24)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", cerrors.ErrInvalidSealedSecret, err)
	}
	ephemPub, err := decodeFixed(data.EphemPublicKey, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: ephemeral public key: %v", cerrors.ErrInvalidSealedSecret, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(data.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", cerrors.ErrInvalidSealedSecret, err)
	}

	var n [24]byte
	var pub [32]byte
	copy(n[:], nonce)
	copy(pub[:], ephemPub)

	plaintext, ok := box.Open(nil, ciphertext, &n, &pub, privateKey)
	if !ok {
		return nil, fmt.Errorf("%w: box authentication failed", cerrors.ErrInvalidSealedSecret)
	}
	return plaintext, nil
}

// ParsePublicKey decodes a base64 X25519 public key.
func ParsePublicKey(s string) (*[32]byte, error) {
	raw, err := decodeFixed(s, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrInvalidPublicKey, err)
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}

// PublicKey returns the base64 encryption public key for an X25519 private key.
func PublicKey(privateKey *[32]byte) (string, error) {
	pub, err := curve25519.X25519(privateKey[:], curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("deriving public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pub), nil
}

// Marshal serializes a sealed secret to its JSON text.
func (d EncryptedData) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

func decodeFixed(s string, size int) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(raw) != size {
		return nil, fmt.Errorf("got %d bytes, want %d", len(raw), size)
	}
	return raw, nil
}
