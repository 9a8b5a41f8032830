package wallet

import (
	"context"
	"fmt"
	"slices"

	cerrors "github.com/PolarWolf314/cpz/internal/errors"
)

// Provider is the wallet capability cpz consumes.
type Provider interface {
	// Accounts returns the accounts already connected.
	Accounts(ctx context.Context) ([]string, error)

	// RequestAccounts asks the wallet to connect and returns the accounts.
	RequestAccounts(ctx context.Context) ([]string, error)

	// EncryptionPublicKey returns the base64 X25519 public key of account.
	EncryptionPublicKey(ctx context.Context, account string) (string, error)

	// Decrypt opens a 0x-prefixed hex sealed secret with account's private key.
	Decrypt(ctx context.Context, sealedHex, account string) (string, error)
}

// ResolveAccount picks the account to use. A non-empty preferred account
// must exist. Otherwise the first connected account is used, requesting a
// connection when none is connected yet.
func ResolveAccount(ctx context.Context, p Provider, preferred string) (string, error) {
	accounts, err := p.Accounts(ctx)
	if err != nil {
		return "", fmt.Errorf("listing accounts: %w", err)
	}

	if len(accounts) == 0 {
		accounts, err = p.RequestAccounts(ctx)
		if err != nil {
			return "", fmt.Errorf("requesting accounts: %w", err)
		}
	}

	if preferred != "" {
		if !slices.Contains(accounts, preferred) {
			return "", fmt.Errorf("%w: %s", cerrors.ErrAccountNotFound, preferred)
		}
		return preferred, nil
	}

	if len(accounts) == 0 {
		return "", cerrors.ErrNoAccounts
	}
	return accounts[0], nil
}
