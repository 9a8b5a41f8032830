package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/cpz/internal/ui"
	"github.com/PolarWolf314/cpz/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	walletMakeDefault bool
	walletConnect     bool
	pubkeyAccount     string
)

// WalletCmd manages the local keystore wallet.
var WalletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallet accounts used to seal passwords",
	Long: `Manages the local keystore. Each account holds an X25519 key pair whose
public half others use to seal passwords to you.

Examples:
  # Show your encryption public key (creates the default account on first use)
  cpz wallet pubkey

  # Create another account and make it the default
  cpz wallet create work --default`,
}

func init() {
	addLoggingFlags(WalletCmd)

	walletAccountsCmd.Flags().BoolVar(&walletConnect, "connect", false, "create the default account if none exists")
	walletCreateCmd.Flags().BoolVar(&walletMakeDefault, "default", false, "make this the default account")
	walletPubkeyCmd.Flags().StringVarP(&pubkeyAccount, "account", "a", "", "account to show (default from config)")

	WalletCmd.AddCommand(walletAccountsCmd)
	WalletCmd.AddCommand(walletCreateCmd)
	WalletCmd.AddCommand(walletPubkeyCmd)
}

func resetWalletState() {
	walletMakeDefault = false
	walletConnect = false
	pubkeyAccount = ""
}

var walletAccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Lists wallet accounts and their public keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := workflows.ListAccounts(context.Background(), workflows.ListAccountsOptions{Connect: walletConnect})
		if err != nil {
			Logger.Errorf("%s", failureMessage("Failed to list accounts", err))
			return ErrReported
		}

		if len(accounts) == 0 {
			fmt.Println(ui.Warning.Sprint("⚠") + " No accounts yet")
			fmt.Println(hint("Run " + ui.Code.Sprint("cpz wallet create <name>") + " or " + ui.Code.Sprint("cpz wallet pubkey")))
			return nil
		}

		for _, a := range accounts {
			marker := "  "
			if a.Default {
				marker = ui.Success.Sprint("*") + " "
			}
			fmt.Printf("%s%s  %s  %s\n", marker, ui.Highlight.Sprint(a.Name), ui.Abbreviate(a.PublicKey, 24),
				ui.Muted.Sprint("created "+a.CreatedAt.Local().Format("2006-01-02")))
		}
		return nil
	},
}

var walletCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Creates a new wallet account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Creating account...")
		defer cleanup()

		name := strings.TrimSpace(args[0])
		account, err := workflows.CreateAccount(context.Background(), workflows.CreateAccountOptions{
			Name:        name,
			MakeDefault: walletMakeDefault,
		})
		if err != nil {
			spinner.FinalMSG = failureMessage("Failed to create account "+ui.Highlight.Sprint(name), err)
			return ErrReported
		}
		Logger.Infof("Created account %s (%s)", account.Name, account.UUID)

		msg := successMessage("Account " + ui.Highlight.Sprint(account.Name) + " created\n")
		msg += hint("Encryption public key: " + account.PublicKey)
		if account.Default {
			msg += "\n" + hint("This is your default account")
		}
		spinner.FinalMSG = msg
		return nil
	},
}

var walletPubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Prints an account's encryption public key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		account, pub, err := workflows.AccountPublicKey(context.Background(), workflows.AccountPublicKeyOptions{Account: pubkeyAccount})
		if err != nil {
			Logger.Errorf("%s", failureMessage("Failed to get the public key", err))
			return ErrReported
		}
		Logger.Infof("Public key of account %s", account)

		fmt.Fprintln(cmd.OutOrStdout(), pub)
		return nil
	},
}
