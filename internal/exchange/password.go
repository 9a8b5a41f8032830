package exchange

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/PolarWolf314/cpz/internal/codec"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
)

// PasswordCharset is the alphabet of generated passwords.
const PasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultPasswordLength is the length of generated passwords.
const DefaultPasswordLength = 128

// Decrypter is the part of a wallet provider that unsealing needs.
type Decrypter interface {
	Decrypt(ctx context.Context, sealedHex, account string) (string, error)
}

// SealPassword seals password for recipientPublicKey and returns the
// 0x-prefixed hex of the sealed JSON.
func SealPassword(password, recipientPublicKey string) (string, error) {
	return sealPassword(password, recipientPublicKey, nil)
}

func sealPassword(password, recipientPublicKey string, rnd io.Reader) (string, error) {
	data, err := Encrypt(EncryptRequest{
		PublicKey: recipientPublicKey,
		Data:      password,
		Version:   Version,
	}, rnd)
	if err != nil {
		return "", err
	}
	return EncodeSealed(data)
}

// EncodeSealed serializes a sealed secret to JSON and returns "0x" followed
// by the lowercase hex of the JSON bytes.
func EncodeSealed(data EncryptedData) (string, error) {
	raw, err := data.Marshal()
	if err != nil {
		return "", fmt.Errorf("encoding sealed secret: %w", err)
	}
	return "0x" + hex.EncodeToString(raw), nil
}

// DecodeSealed parses the hex form produced by EncodeSealed. Upper case
// digits and an odd digit count are accepted.
func DecodeSealed(sealedHex string) (EncryptedData, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(sealedHex), "0x"), "0X")
	if len(h)%2 != 0 {
		h = "0" + h
	}

	raw, err := hex.DecodeString(h)
	if err != nil {
		return EncryptedData{}, fmt.Errorf("%w: %v", cerrors.ErrInvalidSealedSecret, err)
	}

	var data EncryptedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return EncryptedData{}, fmt.Errorf("%w: %v", cerrors.ErrInvalidSealedSecret, err)
	}
	return data, nil
}

// Compact packs a sealed hex string into the compact text form.
func Compact(sealedHex string) (string, error) {
	return codec.HexToString(sealedHex)
}

// Expand turns the compact text form back into hex.
func Expand(compact string) (string, error) {
	h, err := codec.StringToHex(compact)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cerrors.ErrInvalidSealedSecret, err)
	}
	return h, nil
}

// IsHex reports whether s is in the 0x-prefixed hex form.
func IsHex(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// UnsealPassword asks the provider to decrypt a sealed password for
// account. sealed may be in hex or compact form. Any provider failure is
// reported as ErrUnsealFailed.
func UnsealPassword(ctx context.Context, provider Decrypter, sealed, account string) (string, error) {
	sealedHex := strings.TrimSpace(sealed)
	if !IsHex(sealedHex) {
		h, err := Expand(sealed)
		if err != nil {
			return "", fmt.Errorf("%w: %v", cerrors.ErrUnsealFailed, err)
		}
		sealedHex = h
	}

	password, err := provider.Decrypt(ctx, sealedHex, account)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cerrors.ErrUnsealFailed, err)
	}
	return password, nil
}

// GeneratePassword returns a random password of length characters drawn
// from PasswordCharset.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("password length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(PasswordCharset)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		b.WriteByte(PasswordCharset[n.Int64()])
	}
	return b.String(), nil
}
