package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/PolarWolf314/cpz/internal/ui"
	"github.com/PolarWolf314/cpz/internal/workflows"
	"github.com/spf13/cobra"
)

var fileInspectCmd = &cobra.Command{
	Use:   "inspect <file.cpz>",
	Short: "Shows the header of a .cpz container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Inspect(context.Background(), workflows.InspectOptions{Path: args[0]})
		if err != nil {
			Logger.Errorf("%s", failureMessage("Failed to inspect "+args[0], err))
			return ErrReported
		}

		fmt.Println(ui.Path.Sprint(result.Path))
		fmt.Print(ui.Table([][2]string{
			{"file size", strconv.Itoa(result.FileSize)},
			{"original length", strconv.Itoa(result.OriginalLength)},
			{"cipher length", strconv.Itoa(result.CipherLength)},
			{"codec", ui.Highlight.Sprint(string(result.Codec))},
			{"key", result.Key},
			{"iv", result.IV},
			{"salt", result.Salt},
		}))
		return nil
	},
}
