package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/cpz/internal/ui"
	"github.com/PolarWolf314/cpz/internal/utils"
	"github.com/PolarWolf314/cpz/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	encryptPassword  string
	encryptGenerate  bool
	encryptLength    int
	encryptSeal      bool
	encryptSealTo    string
	encryptCodec     string
	encryptOutputDir string
	encryptDryRun    bool
)

func init() {
	fileEncryptCmd.Flags().StringVarP(&encryptPassword, "password", "p", "", "password to encrypt with (default: $CPZ_PASSWORD or prompt)")
	fileEncryptCmd.Flags().BoolVar(&encryptGenerate, "generate", false, "generate a random password")
	fileEncryptCmd.Flags().IntVar(&encryptLength, "length", 0, "length of a generated password (default 128)")
	fileEncryptCmd.Flags().BoolVar(&encryptSeal, "seal", false, "seal the password to your default wallet account")
	fileEncryptCmd.Flags().StringVar(&encryptSealTo, "seal-to", "", "seal the password to this encryption public key")
	fileEncryptCmd.Flags().StringVar(&encryptCodec, "codec", "", "compression codec: zstd or lz4 (default from config)")
	fileEncryptCmd.Flags().StringVarP(&encryptOutputDir, "output-dir", "o", "", "write containers here instead of next to the sources")
	fileEncryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "show what would be written")
}

func resetEncryptState() {
	encryptPassword = ""
	encryptGenerate = false
	encryptLength = 0
	encryptSeal = false
	encryptSealTo = ""
	encryptCodec = ""
	encryptOutputDir = ""
	encryptDryRun = false
}

var fileEncryptCmd = &cobra.Command{
	Use:   "encrypt <paths/globs...>",
	Short: "Encrypts files into .cpz containers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		ctx := context.Background()

		if encryptSeal && encryptSealTo != "" {
			Logger.WarnfAlways("--seal-to is set, ignoring --seal")
		}

		password := ""
		if !encryptGenerate {
			var err error
			password, err = utils.ResolvePassword(encryptPassword, true)
			if err != nil {
				Logger.Errorf("%s", failureMessage("No password", err))
				return ErrReported
			}
		}

		spinner, cleanup := startSpinner("Encrypting files...")
		defer cleanup()

		opts := workflows.EncryptOptions{
			FilePatterns:     args,
			Password:         password,
			GeneratePassword: encryptGenerate,
			PasswordLength:   encryptLength,
			Codec:            encryptCodec,
			OutputDir:        encryptOutputDir,
			DryRun:           encryptDryRun,
		}
		Logger.Debugf("Encrypt options: patterns=%v codec=%q output=%q dry-run=%t", args, encryptCodec, encryptOutputDir, encryptDryRun)

		result, err := workflows.Encrypt(ctx, opts)
		if err != nil {
			Logger.Debugf("Encrypt failed: %v", err)
			spinner.FinalMSG = failureMessage("Failed to encrypt files", err)
			return ErrReported
		}
		Logger.Infof("Encrypted %d files with %s", len(result.EncryptedFiles), result.Codec)

		var b strings.Builder
		if result.DryRun {
			b.WriteString(ui.Warning.Sprint("[dry-run]") + " Would write:" + utils.FormatPaths(result.EncryptedFiles))
		} else {
			b.WriteString(successMessage("Files encrypted with " + ui.Highlight.Sprint(string(result.Codec)) + ". Created:"))
			b.WriteString(utils.FormatPaths(result.EncryptedFiles))
		}

		usedPassword := password
		if result.Password != "" {
			usedPassword = result.Password
		}

		sealTo := encryptSealTo
		account := ""
		if encryptSeal && sealTo == "" {
			account, sealTo, err = workflows.AccountPublicKey(ctx, workflows.AccountPublicKeyOptions{})
			if err != nil {
				spinner.FinalMSG = b.String() + failureMessage("Failed to look up your wallet key", err)
				return ErrReported
			}
		}

		if sealTo != "" {
			sealed, err := workflows.SealPassword(ctx, workflows.SealOptions{Password: usedPassword, RecipientPublicKey: sealTo})
			if err != nil {
				spinner.FinalMSG = b.String() + failureMessage("Failed to seal the password", err)
				return ErrReported
			}
			if account != "" {
				b.WriteString(hint("Password sealed to " + ui.Highlight.Sprint(account) + ":\n"))
			} else {
				b.WriteString(hint("Sealed password:\n"))
			}
			b.WriteString(ui.Secret.Sprint(sealed.Sealed) + "\n")
			b.WriteString(hint("Recover it with " + ui.Code.Sprint("cpz password unseal <sealed>")))
		} else if result.Password != "" {
			b.WriteString(hint("Generated password (store it safely):\n"))
			b.WriteString(ui.Secret.Sprint(result.Password) + "\n")
			b.WriteString(hint(fmt.Sprintf("Seal it for later with %s", ui.Code.Sprint("cpz password seal --to <publicKey>"))))
		}

		spinner.FinalMSG = b.String()
		return nil
	},
}
