package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/cpz/internal/ui"
	"github.com/PolarWolf314/cpz/internal/workflows"
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cpz configuration",
	Long: `Shows and initializes the user configuration.

The file sets the default wallet account, the compression codec used by
'cpz file encrypt' and an optional output directory.

Examples:
  # Write the default configuration
  cpz config init

  # Show the effective configuration and paths
  cpz config show`,
}

func init() {
	addLoggingFlags(ConfigCmd)

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Initializing configuration...")
		defer cleanup()

		result, err := workflows.InitConfig(context.Background())
		if err != nil {
			spinner.FinalMSG = failureMessage("Failed to initialize configuration", err)
			return ErrReported
		}

		if !result.Created {
			spinner.FinalMSG = successMessage("Configuration already exists at " + ui.Path.Sprint(result.Path))
			return nil
		}
		spinner.FinalMSG = successMessage("Configuration written to "+ui.Path.Sprint(result.Path)) + "\n" +
			hint("Edit it or run "+ui.Code.Sprint("cpz config show")+" to review it")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Shows the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.ShowConfig(context.Background())
		if err != nil {
			Logger.Errorf("%s", failureMessage("Failed to load configuration", err))
			return ErrReported
		}

		outputDir := result.Config.Output.Directory
		if outputDir == "" {
			outputDir = ui.Muted.Sprint("next to each source file")
		}

		fmt.Println(ui.Path.Sprint(result.Path))
		fmt.Print(ui.Table([][2]string{
			{"wallet.default_account", ui.Highlight.Sprint(result.Config.Wallet.DefaultAccount)},
			{"compression.codec", ui.Highlight.Sprint(result.Config.Compression.Codec)},
			{"output.directory", outputDir},
			{"keystore", ui.Path.Sprint(result.KeysPath)},
			{"history", ui.Path.Sprint(result.HistoryPath)},
		}))
		return nil
	},
}
