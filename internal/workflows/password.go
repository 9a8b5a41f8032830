package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/cpz/internal/audit"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/PolarWolf314/cpz/internal/exchange"
	"github.com/PolarWolf314/cpz/internal/wallet"
)

// GeneratePasswordOptions configures password generation.
type GeneratePasswordOptions struct {
	// Length defaults to exchange.DefaultPasswordLength.
	Length int
}

// GeneratePassword returns a random alphanumeric password.
func GeneratePassword(ctx context.Context, opts GeneratePasswordOptions) (string, error) {
	length := opts.Length
	if length == 0 {
		length = exchange.DefaultPasswordLength
	}
	return exchange.GeneratePassword(length)
}

// SealOptions configures the seal workflow.
type SealOptions struct {
	// Password to seal. Required.
	Password string

	// RecipientPublicKey is the base64 X25519 key of the recipient account.
	RecipientPublicKey string

	// Compact returns the compact text form instead of hex.
	Compact bool
}

// SealResult contains a sealed password.
type SealResult struct {
	Sealed  string
	Compact bool
}

// SealPassword seals a password to a recipient's encryption public key.
//
// Returns ErrPasswordRequired for an empty password and ErrInvalidPublicKey
// for a key that is not 32 base64 bytes.
func SealPassword(ctx context.Context, opts SealOptions) (*SealResult, error) {
	if opts.Password == "" {
		return nil, cerrors.ErrPasswordRequired
	}

	sealed, err := exchange.SealPassword(opts.Password, strings.TrimSpace(opts.RecipientPublicKey))
	if err != nil {
		return nil, err
	}

	if opts.Compact {
		if sealed, err = exchange.Compact(sealed); err != nil {
			return nil, fmt.Errorf("compacting sealed password: %w", err)
		}
	}

	audit.Log(audit.NewEntry(audit.OpSeal))

	return &SealResult{Sealed: sealed, Compact: opts.Compact}, nil
}

// UnsealOptions configures the unseal workflow.
type UnsealOptions struct {
	// Sealed is the hex or compact sealed password.
	Sealed string

	// Account selects the wallet account. Empty uses the configured
	// default, then the first account.
	Account string

	// Provider overrides the local keystore.
	Provider wallet.Provider
}

// UnsealResult contains the recovered password.
type UnsealResult struct {
	Password string
	Account  string
}

// UnsealPassword asks the wallet to decrypt a sealed password.
//
// Returns ErrAccountNotFound or ErrNoAccounts if no account can be used, and
// ErrUnsealFailed if the wallet cannot decrypt the secret.
func UnsealPassword(ctx context.Context, opts UnsealOptions) (*UnsealResult, error) {
	if strings.TrimSpace(opts.Sealed) == "" {
		return nil, fmt.Errorf("%w: empty input", cerrors.ErrInvalidSealedSecret)
	}

	provider, preferred, err := providerFor(opts.Provider, opts.Account)
	if err != nil {
		return nil, err
	}

	account, err := wallet.ResolveAccount(ctx, provider, preferred)
	if err != nil {
		return nil, err
	}

	password, err := exchange.UnsealPassword(ctx, provider, opts.Sealed, account)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpUnseal)
	entry.Account = account
	audit.Log(entry)

	return &UnsealResult{Password: password, Account: account}, nil
}
