package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/cpz/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cpz",
	Short: "cpz - compress and encrypt files, and exchange their passwords through a wallet.",
	Long: `cpz packs files into compressed, password-encrypted .cpz containers and
helps you hand the password to someone else by sealing it to their wallet
encryption key.

Usage:
  cpz <command> [flags]

Available Commands:
  file       Encrypt, decrypt and inspect .cpz containers
  password   Generate, seal and unseal passwords
  wallet     Manage wallet accounts
  config     Manage cpz configuration
  history    Show past operations
  doctor     Check configuration and keystore

Run 'cpz help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(c *cobra.Command, args []string) {
		figure.NewColorFigure("cpz", "", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'cpz --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.Commands()...)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
