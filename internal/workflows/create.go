package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/PolarWolf314/cpz/internal/audit"
	"github.com/PolarWolf314/cpz/internal/configs"
	"github.com/PolarWolf314/cpz/internal/utils"
	"github.com/PolarWolf314/cpz/internal/wallet"
)

// Keystore opens the local keystore. Its default account comes from the
// user config, falling back to the OS user.
func Keystore() (*wallet.Keystore, error) {
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	defaultAccount := userConfig.Wallet.DefaultAccount
	if defaultAccount == "" {
		defaultAccount = utils.DefaultAccountName()
	}
	return wallet.NewKeystore(configs.UserCPZSettings.KeysPath, defaultAccount), nil
}

// providerFor returns the provider to use and the preferred account. An
// explicit provider is used as is; otherwise the local keystore is opened
// and its configured default account preferred when it exists.
func providerFor(p wallet.Provider, account string) (wallet.Provider, string, error) {
	if p != nil {
		return p, account, nil
	}

	ks, err := Keystore()
	if err != nil {
		return nil, "", err
	}
	if account == "" {
		if _, err := ks.Info(ks.DefaultAccount); err == nil {
			account = ks.DefaultAccount
		}
	}
	return ks, account, nil
}

// AccountSummary describes one wallet account.
type AccountSummary struct {
	Name      string
	UUID      string
	CreatedAt time.Time
	PublicKey string
	Default   bool
}

// ListAccountsOptions configures the accounts workflow.
type ListAccountsOptions struct {
	// Connect creates the default account when none exists.
	Connect bool
}

// ListAccounts lists the keystore accounts with their public keys.
func ListAccounts(ctx context.Context, opts ListAccountsOptions) ([]AccountSummary, error) {
	ks, err := Keystore()
	if err != nil {
		return nil, err
	}

	var names []string
	if opts.Connect {
		names, err = ks.RequestAccounts(ctx)
	} else {
		names, err = ks.Accounts(ctx)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]AccountSummary, 0, len(names))
	for _, name := range names {
		info, err := ks.Info(name)
		if err != nil {
			return nil, err
		}
		pub, err := ks.EncryptionPublicKey(ctx, name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, AccountSummary{
			Name:      name,
			UUID:      info.UUID,
			CreatedAt: info.CreatedAt,
			PublicKey: pub,
			Default:   name == ks.DefaultAccount,
		})
	}
	return summaries, nil
}

// CreateAccountOptions configures the create workflow.
type CreateAccountOptions struct {
	Name string

	// MakeDefault records the account as wallet.default_account.
	MakeDefault bool
}

// CreateAccount generates a new key pair in the local keystore.
//
// Returns ErrInvalidAccountName or ErrAccountExists.
func CreateAccount(ctx context.Context, opts CreateAccountOptions) (*AccountSummary, error) {
	ks, err := Keystore()
	if err != nil {
		return nil, err
	}

	info, err := ks.Create(ctx, opts.Name)
	if err != nil {
		return nil, err
	}

	pub, err := ks.EncryptionPublicKey(ctx, opts.Name)
	if err != nil {
		return nil, err
	}

	if opts.MakeDefault {
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
		userConfig.Wallet.DefaultAccount = opts.Name
		if err := configs.SaveUserConfig(userConfig); err != nil {
			return nil, err
		}
	}

	entry := audit.NewEntry(audit.OpAccount)
	entry.Account = opts.Name
	audit.Log(entry)

	return &AccountSummary{
		Name:      opts.Name,
		UUID:      info.UUID,
		CreatedAt: info.CreatedAt,
		PublicKey: pub,
		Default:   opts.MakeDefault || opts.Name == ks.DefaultAccount,
	}, nil
}

// AccountPublicKeyOptions configures the pubkey workflow.
type AccountPublicKeyOptions struct {
	Account string

	// Provider overrides the local keystore.
	Provider wallet.Provider
}

// AccountPublicKey returns the encryption public key of an account, creating
// the default account on first use.
func AccountPublicKey(ctx context.Context, opts AccountPublicKeyOptions) (account, publicKey string, err error) {
	provider, preferred, err := providerFor(opts.Provider, opts.Account)
	if err != nil {
		return "", "", err
	}

	account, err = wallet.ResolveAccount(ctx, provider, preferred)
	if err != nil {
		return "", "", err
	}

	publicKey, err = provider.EncryptionPublicKey(ctx, account)
	if err != nil {
		return "", "", err
	}
	return account, publicKey, nil
}
