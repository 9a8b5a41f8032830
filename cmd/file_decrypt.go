package cmd

import (
	"context"
	"strings"

	"github.com/PolarWolf314/cpz/internal/ui"
	"github.com/PolarWolf314/cpz/internal/utils"
	"github.com/PolarWolf314/cpz/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	decryptPassword  string
	decryptOutputDir string
	decryptDryRun    bool
)

func init() {
	fileDecryptCmd.Flags().StringVarP(&decryptPassword, "password", "p", "", "password the files were encrypted with (containers carry their own key material)")
	fileDecryptCmd.Flags().StringVarP(&decryptOutputDir, "output-dir", "o", "", "write files here instead of next to the containers")
	fileDecryptCmd.Flags().BoolVar(&decryptDryRun, "dry-run", false, "show what would be written")
}

func resetDecryptState() {
	decryptPassword = ""
	decryptOutputDir = ""
	decryptDryRun = false
}

var fileDecryptCmd = &cobra.Command{
	Use:   "decrypt <paths/globs...>",
	Short: "Restores .cpz containers to their original files",
	Long: `Restores .cpz containers to their original files. Files without the
.cpz extension are skipped.

Containers carry their key material in the clear, so no password is asked
for. Anyone holding a .cpz file can open it; keep the files themselves
private.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		spinner, cleanup := startSpinner("Decrypting files...")
		defer cleanup()

		result, err := workflows.Decrypt(context.Background(), workflows.DecryptOptions{
			FilePatterns: args,
			Password:     decryptPassword,
			OutputDir:    decryptOutputDir,
			DryRun:       decryptDryRun,
		})
		if err != nil {
			Logger.Debugf("Decrypt failed: %v", err)
			spinner.FinalMSG = failureMessage("Failed to decrypt files", err)
			return ErrReported
		}

		for _, skipped := range result.SkippedFiles {
			Logger.Debugf("Skipping %s: no .cpz extension", skipped)
		}

		if len(result.DecryptedFiles) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No .cpz containers among the given files"
			return nil
		}

		var b strings.Builder
		if result.DryRun {
			b.WriteString(ui.Warning.Sprint("[dry-run]") + " Would write:" + utils.FormatPaths(result.DecryptedFiles))
		} else {
			b.WriteString(successMessage("Files decrypted. Restored:"))
			b.WriteString(utils.FormatPaths(result.DecryptedFiles))
		}
		spinner.FinalMSG = b.String()
		return nil
	},
}
