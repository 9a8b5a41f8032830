package exchange

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"golang.org/x/crypto/nacl/box"
)

// mockWallet holds one account's private key and decrypts like a wallet
// provider would.
type mockWallet struct {
	account    string
	privateKey *[32]byte
	calls      []string
}

func newMockWallet(t *testing.T, account string) (*mockWallet, string) {
	t.Helper()
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return &mockWallet{account: account, privateKey: priv}, base64.StdEncoding.EncodeToString(pub[:])
}

func (m *mockWallet) Decrypt(_ context.Context, sealedHex, account string) (string, error) {
	m.calls = append(m.calls, sealedHex)
	if account != m.account {
		return "", errors.New("unknown account")
	}
	data, err := DecodeSealed(sealedHex)
	if err != nil {
		return "", err
	}
	plaintext, err := Open(data, m.privateKey)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

type rejectingWallet struct{}

func (rejectingWallet) Decrypt(context.Context, string, string) (string, error) {
	return "", errors.New("User denied message decryption.")
}

func TestSealUnsealRoundTrip(t *testing.T) {
	wallet, pub := newMockWallet(t, "0xabc")

	passwords := []string{
		"",
		"p",
		"111fdfasdfsdfasdfasdfasdfas",
		strings.Repeat("Z9", 64),
		"unicode pässwörd 🔑",
	}

	for _, pw := range passwords {
		sealed, err := SealPassword(pw, pub)
		if err != nil {
			t.Fatalf("SealPassword(%q): %v", pw, err)
		}
		if !strings.HasPrefix(sealed, "0x") {
			t.Errorf("sealed secret %q lacks 0x prefix", sealed)
		}

		got, err := UnsealPassword(context.Background(), wallet, sealed, "0xabc")
		if err != nil {
			t.Fatalf("UnsealPassword: %v", err)
		}
		if got != pw {
			t.Errorf("UnsealPassword = %q, want %q", got, pw)
		}
	}
}

func TestUnsealCompactForm(t *testing.T) {
	wallet, pub := newMockWallet(t, "alice")

	sealed, err := SealPassword("compact transport", pub)
	if err != nil {
		t.Fatalf("SealPassword: %v", err)
	}
	compact, err := Compact(sealed)
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}
	if IsHex(compact) {
		t.Fatalf("compact form %q still looks like hex", compact)
	}

	got, err := UnsealPassword(context.Background(), wallet, compact, "alice")
	if err != nil {
		t.Fatalf("UnsealPassword: %v", err)
	}
	if got != "compact transport" {
		t.Errorf("UnsealPassword = %q", got)
	}
	if !IsHex(wallet.calls[0]) {
		t.Errorf("provider received %q, want hex", wallet.calls[0])
	}
}

func TestUnsealFailures(t *testing.T) {
	wallet, pub := newMockWallet(t, "alice")
	_, otherPub := newMockWallet(t, "bob")

	sealedForAlice, err := SealPassword("secret", pub)
	if err != nil {
		t.Fatalf("SealPassword: %v", err)
	}
	sealedForBob, err := SealPassword("secret", otherPub)
	if err != nil {
		t.Fatalf("SealPassword: %v", err)
	}

	tests := []struct {
		name     string
		provider Decrypter
		sealed   string
		account  string
	}{
		{"wrong account", wallet, sealedForAlice, "mallory"},
		{"user declines", rejectingWallet{}, sealedForAlice, "alice"},
		{"sealed for another key", wallet, sealedForBob, "alice"},
		{"malformed payload", wallet, "0xnothex", "alice"},
		{"compact form not utf-8", wallet, "\xff\xfe", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnsealPassword(context.Background(), tt.provider, tt.sealed, tt.account)
			if !errors.Is(err, cerrors.ErrUnsealFailed) {
				t.Errorf("error = %v, want ErrUnsealFailed", err)
			}
		})
	}
}

func TestExpandRejectsInvalidText(t *testing.T) {
	if _, err := Expand("\xff\xfe"); !errors.Is(err, cerrors.ErrInvalidSealedSecret) {
		t.Errorf("Expand(invalid UTF-8) error = %v, want ErrInvalidSealedSecret", err)
	}
}

func TestDecodeSealedFormat(t *testing.T) {
	_, pub := newMockWallet(t, "alice")

	sealed, err := SealPassword("pw", pub)
	if err != nil {
		t.Fatalf("SealPassword: %v", err)
	}
	if sealed != strings.ToLower(sealed) {
		t.Errorf("sealed hex should be lowercase: %q", sealed)
	}

	data, err := DecodeSealed(strings.ToUpper(sealed[2:]))
	if err != nil {
		t.Fatalf("DecodeSealed(upper, no prefix): %v", err)
	}
	if data.Version != Version {
		t.Errorf("Version = %q, want %q", data.Version, Version)
	}

	raw, err := data.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(raw), `{"version":"x25519-xsalsa20-poly1305","nonce":"`) {
		t.Errorf("unexpected JSON layout: %s", raw)
	}
}

func TestEncryptRejectsBadInput(t *testing.T) {
	_, pub := newMockWallet(t, "alice")

	if _, err := Encrypt(EncryptRequest{PublicKey: pub, Data: "x", Version: "x25519-chacha"}, nil); !errors.Is(err, cerrors.ErrUnsupportedVersion) {
		t.Errorf("unsupported version error = %v", err)
	}
	if _, err := Encrypt(EncryptRequest{PublicKey: "not base64!", Data: "x", Version: Version}, nil); !errors.Is(err, cerrors.ErrInvalidPublicKey) {
		t.Errorf("bad key error = %v", err)
	}
	short := base64.StdEncoding.EncodeToString([]byte("short"))
	if _, err := SealPassword("x", short); !errors.Is(err, cerrors.ErrInvalidPublicKey) {
		t.Errorf("short key error = %v", err)
	}
}

func TestPublicKeyMatchesBoxKey(t *testing.T) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	got, err := PublicKey(priv)
	if err != nil {
		t.Fatalf("PublicKey: %v", err)
	}
	if got != base64.StdEncoding.EncodeToString(pub[:]) {
		t.Errorf("PublicKey = %s, want %s", got, base64.StdEncoding.EncodeToString(pub[:]))
	}
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(DefaultPasswordLength)
	if err != nil {
		t.Fatalf("GeneratePassword: %v", err)
	}
	if len(pw) != DefaultPasswordLength {
		t.Errorf("len = %d, want %d", len(pw), DefaultPasswordLength)
	}
	for _, r := range pw {
		if !strings.ContainsRune(PasswordCharset, r) {
			t.Fatalf("character %q outside charset", r)
		}
	}

	other, err := GeneratePassword(DefaultPasswordLength)
	if err != nil {
		t.Fatalf("GeneratePassword: %v", err)
	}
	if pw == other {
		t.Error("two generated passwords are identical")
	}

	if _, err := GeneratePassword(0); err == nil {
		t.Error("expected error for zero length")
	}
}
