package cmd

import (
	"github.com/spf13/cobra"
)

// FileCmd groups the container commands.
var FileCmd = &cobra.Command{
	Use:   "file",
	Short: "Encrypt, decrypt and inspect .cpz containers",
	Long: `Encrypts files into password-derived .cpz containers and restores them.

Examples:
  # Encrypt with a prompted password
  cpz file encrypt report.pdf

  # Encrypt everything under photos/ with a generated password sealed to your wallet
  cpz file encrypt photos --generate --seal

  # Decrypt all containers below the current directory
  cpz file decrypt '**/*.cpz'

  # Show the header of a container
  cpz file inspect report.pdf.cpz`,
}

func init() {
	addLoggingFlags(FileCmd)

	FileCmd.AddCommand(fileEncryptCmd)
	FileCmd.AddCommand(fileDecryptCmd)
	FileCmd.AddCommand(fileInspectCmd)
}

func resetFileState() {
	resetEncryptState()
	resetDecryptState()
}
