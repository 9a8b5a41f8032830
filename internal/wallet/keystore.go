package wallet

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PolarWolf314/cpz/internal/configs"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/PolarWolf314/cpz/internal/exchange"
	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/box"
)

const indexFile = "accounts.toml"

var accountNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// AccountInfo is the index entry for one account.
type AccountInfo struct {
	UUID      string    `toml:"uuid"`
	CreatedAt time.Time `toml:"created_at"`
}

type accountIndex struct {
	Accounts map[string]AccountInfo `toml:"accounts"`
}

// Keystore is a Provider backed by key files in Dir.
type Keystore struct {
	Dir string

	// DefaultAccount is created by RequestAccounts when no account exists.
	DefaultAccount string
}

// NewKeystore returns a keystore rooted at dir.
func NewKeystore(dir, defaultAccount string) *Keystore {
	return &Keystore{Dir: dir, DefaultAccount: defaultAccount}
}

// IsValidAccountName reports whether name can be used as an account name.
func IsValidAccountName(name string) bool {
	return accountNameRegex.MatchString(name)
}

func (k *Keystore) Accounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := k.loadIndex()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(idx.Accounts))
	for name := range idx.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (k *Keystore) RequestAccounts(ctx context.Context) ([]string, error) {
	accounts, err := k.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 || k.DefaultAccount == "" {
		return accounts, nil
	}

	if _, err := k.Create(ctx, k.DefaultAccount); err != nil {
		return nil, fmt.Errorf("creating default account: %w", err)
	}
	return k.Accounts(ctx)
}

func (k *Keystore) EncryptionPublicKey(ctx context.Context, account string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	priv, err := k.privateKey(account)
	if err != nil {
		return "", err
	}
	return exchange.PublicKey(priv)
}

func (k *Keystore) Decrypt(ctx context.Context, sealedHex, account string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	priv, err := k.privateKey(account)
	if err != nil {
		return "", err
	}

	data, err := exchange.DecodeSealed(sealedHex)
	if err != nil {
		return "", err
	}

	plaintext, err := exchange.Open(data, priv)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Create generates a key pair for a new account.
func (k *Keystore) Create(ctx context.Context, name string) (AccountInfo, error) {
	if err := ctx.Err(); err != nil {
		return AccountInfo{}, err
	}
	if !IsValidAccountName(name) {
		return AccountInfo{}, fmt.Errorf("%w: %q", cerrors.ErrInvalidAccountName, name)
	}

	idx, err := k.loadIndex()
	if err != nil {
		return AccountInfo{}, err
	}
	if _, exists := idx.Accounts[name]; exists {
		return AccountInfo{}, fmt.Errorf("%w: %s", cerrors.ErrAccountExists, name)
	}

	_, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return AccountInfo{}, fmt.Errorf("generating key pair: %w", err)
	}

	if err := os.MkdirAll(k.Dir, 0700); err != nil {
		return AccountInfo{}, fmt.Errorf("creating keystore directory: %w", err)
	}
	keyPath := k.KeyPath(name)
	if err := writeNewKey(keyPath, priv); err != nil {
		return AccountInfo{}, err
	}

	info := AccountInfo{UUID: uuid.New().String(), CreatedAt: time.Now().UTC()}
	idx.Accounts[name] = info
	if err := configs.SaveTOML(filepath.Join(k.Dir, indexFile), idx); err != nil {
		os.Remove(keyPath)
		return AccountInfo{}, fmt.Errorf("saving account index: %w", err)
	}
	return info, nil
}

// writeNewKey writes a private key to a file that must not exist yet. A key
// file left without an index entry still belongs to someone.
func writeNewKey(path string, priv *[32]byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return fmt.Errorf("%w: key file %s already exists", cerrors.ErrAccountExists, path)
	}
	if err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	if _, err := f.WriteString(hex.EncodeToString(priv[:]) + "\n"); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing private key: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("writing private key: %w", err)
	}
	return nil
}

// Info returns the index entry of an account.
func (k *Keystore) Info(name string) (AccountInfo, error) {
	idx, err := k.loadIndex()
	if err != nil {
		return AccountInfo{}, err
	}
	info, ok := idx.Accounts[name]
	if !ok {
		return AccountInfo{}, fmt.Errorf("%w: %s", cerrors.ErrAccountNotFound, name)
	}
	return info, nil
}

func (k *Keystore) loadIndex() (*accountIndex, error) {
	idx := &accountIndex{Accounts: make(map[string]AccountInfo)}

	path := filepath.Join(k.Dir, indexFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return idx, nil
	}

	if err := configs.LoadTOML(path, idx); err != nil {
		return nil, fmt.Errorf("loading account index: %w", err)
	}
	if idx.Accounts == nil {
		idx.Accounts = make(map[string]AccountInfo)
	}
	return idx, nil
}

func (k *Keystore) privateKey(account string) (*[32]byte, error) {
	if !IsValidAccountName(account) {
		return nil, fmt.Errorf("%w: %q", cerrors.ErrInvalidAccountName, account)
	}

	data, err := os.ReadFile(k.KeyPath(account))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", cerrors.ErrAccountNotFound, account)
	}
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(string(data)), "0x"))
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("private key for %s is not 32 hex-encoded bytes", account)
	}

	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}

// KeyPath returns the private key file of an account.
func (k *Keystore) KeyPath(account string) string {
	return filepath.Join(k.Dir, account+".key")
}
