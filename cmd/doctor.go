package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/cpz/internal/ui"
	"github.com/PolarWolf314/cpz/internal/workflows"
	"github.com/spf13/cobra"
)

// DoctorCmd runs health checks on the configuration and keystore.
var DoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Checks configuration, keystore and history for problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Doctor(context.Background())
		if err != nil {
			Logger.Errorf("%s", failureMessage("Health check failed", err))
			return ErrReported
		}

		for _, check := range result.Checks {
			var icon string
			switch check.Status {
			case workflows.CheckPass:
				icon = ui.Success.Sprint("✓")
			case workflows.CheckWarning:
				icon = ui.Warning.Sprint("⚠")
			default:
				icon = ui.Error.Sprint("✗")
			}
			fmt.Printf("%s %s: %s\n", icon, check.Name, check.Message)
		}

		fmt.Printf("\n%d passed, %d warnings, %d errors\n",
			result.Summary.Passed, result.Summary.Warnings, result.Summary.Errors)
		for _, s := range result.Suggestions {
			fmt.Println(hint(s))
		}

		if result.Summary.Errors > 0 {
			return ErrReported
		}
		return nil
	},
}

func init() {
	addLoggingFlags(DoctorCmd)
}
