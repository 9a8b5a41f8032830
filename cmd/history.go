package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/cpz/internal/ui"
	"github.com/PolarWolf314/cpz/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	historyLimit      int
	historyReverse    bool
	historyOperations string
	historySince      string
	historyUntil      string
	historyJSON       bool
)

// HistoryCmd shows the local operation log.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Shows the history of cpz operations on this machine",
	Long: `Shows past encrypt, decrypt, seal, unseal and account operations.
Passwords and keys are never recorded.

Examples:
  # Last ten operations, newest first
  cpz history -n 10 --reverse

  # Only decryptions since the start of the year
  cpz history --op decrypt --since 2026-01-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.History(context.Background(), workflows.HistoryOptions{
			Limit:      historyLimit,
			Reverse:    historyReverse,
			Operations: historyOperations,
			Since:      historySince,
			Until:      historyUntil,
		})
		if err != nil {
			Logger.Errorf("%s", failureMessage("Failed to read history", err))
			return ErrReported
		}
		Logger.Debugf("History has %d entries, %d after filtering", result.Total, len(result.Entries))

		if historyJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result.Entries)
		}

		if len(result.Entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Sprint("no history"))
			return nil
		}

		for _, e := range result.Entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %s\n",
				ui.Muted.Sprint(workflows.FormatDateTime(e.Timestamp)),
				ui.Highlight.Sprint(e.Operation),
				workflows.FormatDetails(e))
		}
		return nil
	},
}

func init() {
	addLoggingFlags(HistoryCmd)

	HistoryCmd.Flags().IntVarP(&historyLimit, "number", "n", 0, "show at most this many entries")
	HistoryCmd.Flags().BoolVar(&historyReverse, "reverse", false, "newest first")
	HistoryCmd.Flags().StringVar(&historyOperations, "op", "", "filter by operation, comma-separated")
	HistoryCmd.Flags().StringVar(&historySince, "since", "", "only entries on or after YYYY-MM-DD")
	HistoryCmd.Flags().StringVar(&historyUntil, "until", "", "only entries on or before YYYY-MM-DD")
	HistoryCmd.Flags().BoolVar(&historyJSON, "json", false, "print entries as JSON")
}

func resetHistoryState() {
	historyLimit = 0
	historyReverse = false
	historyOperations = ""
	historySince = ""
	historyUntil = ""
	historyJSON = false
}
