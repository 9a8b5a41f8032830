package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/cpz/internal/utils"
	"github.com/PolarWolf314/cpz/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	generateLength int

	sealTo       string
	sealPassword string
	sealCompact  bool

	unsealAccount string
)

// PasswordCmd groups password generation and exchange.
var PasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Generate passwords and exchange them through a wallet",
	Long: `Generates strong passwords and seals them to a wallet account's encryption
public key, so only that account can recover them.

Results are printed bare on stdout so they can be piped.

Examples:
  # Seal a generated password to yourself
  cpz password seal --to "$(cpz wallet pubkey)" --password "$(cpz password generate)"

  # Recover a sealed password
  cpz password unseal 0x7b2276657273696f6e223a...`,
}

func init() {
	addLoggingFlags(PasswordCmd)

	passwordGenerateCmd.Flags().IntVarP(&generateLength, "length", "l", 0, "number of characters (default 128)")

	passwordSealCmd.Flags().StringVar(&sealTo, "to", "", "recipient encryption public key (base64)")
	passwordSealCmd.Flags().StringVarP(&sealPassword, "password", "p", "", "password to seal (default: $CPZ_PASSWORD or prompt)")
	passwordSealCmd.Flags().BoolVar(&sealCompact, "compact", false, "print the compact text form instead of hex")
	_ = passwordSealCmd.MarkFlagRequired("to")

	passwordUnsealCmd.Flags().StringVarP(&unsealAccount, "account", "a", "", "wallet account to decrypt with (default from config)")

	PasswordCmd.AddCommand(passwordGenerateCmd)
	PasswordCmd.AddCommand(passwordSealCmd)
	PasswordCmd.AddCommand(passwordUnsealCmd)
}

func resetPasswordState() {
	generateLength = 0
	sealTo = ""
	sealPassword = ""
	sealCompact = false
	unsealAccount = ""
}

var passwordGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Prints a random alphanumeric password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := workflows.GeneratePassword(context.Background(), workflows.GeneratePasswordOptions{Length: generateLength})
		if err != nil {
			Logger.Errorf("%s", failureMessage("Failed to generate a password", err))
			return ErrReported
		}
		fmt.Fprintln(cmd.OutOrStdout(), password)
		return nil
	},
}

var passwordSealCmd = &cobra.Command{
	Use:   "seal --to <publicKey>",
	Short: "Seals a password to a wallet encryption public key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := utils.ResolvePassword(sealPassword, false)
		if err != nil {
			Logger.Errorf("%s", failureMessage("No password to seal", err))
			return ErrReported
		}

		result, err := workflows.SealPassword(context.Background(), workflows.SealOptions{
			Password:           password,
			RecipientPublicKey: sealTo,
			Compact:            sealCompact,
		})
		if err != nil {
			Logger.Errorf("%s", failureMessage("Failed to seal the password", err))
			return ErrReported
		}
		Logger.Infof("Sealed password for %s", sealTo)

		fmt.Fprintln(cmd.OutOrStdout(), result.Sealed)
		return nil
	},
}

var passwordUnsealCmd = &cobra.Command{
	Use:   "unseal [sealed]",
	Short: "Recovers a sealed password with your wallet",
	Long: `Recovers a sealed password with your wallet. The sealed value may be hex
(0x...) or the compact text form. Without an argument, or with "-", it is
read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sealed := ""
		if len(args) == 1 && args[0] != "-" {
			sealed = args[0]
		} else {
			data, err := utils.ReadStdin()
			if err != nil {
				Logger.Errorf("%s", failureMessage("No sealed password", err))
				return ErrReported
			}
			sealed = strings.TrimRight(string(data), "\r\n")
		}

		result, err := workflows.UnsealPassword(context.Background(), workflows.UnsealOptions{
			Sealed:  sealed,
			Account: unsealAccount,
		})
		if err != nil {
			Logger.Errorf("%s", failureMessage("Failed to unseal the password", err))
			return ErrReported
		}
		Logger.Infof("Unsealed with account %s", result.Account)

		fmt.Fprintln(cmd.OutOrStdout(), result.Password)
		return nil
	},
}
