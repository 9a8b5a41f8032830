package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/PolarWolf314/cpz/internal/audit"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
)

const (
	historyTimestamp = "2006-01-02T15:04:05.000000Z"
	historyDate      = "2006-01-02"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest.
	Reverse bool

	// Operations filters by operation, comma-separated.
	Operations string

	// Since and Until bound the entries by date (YYYY-MM-DD, inclusive).
	Since string
	Until string
}

// HistoryResult contains the filtered history.
type HistoryResult struct {
	Entries []audit.Entry

	// Total is the count of entries before filtering.
	Total int
}

// History reads and filters the local operation log. A missing log yields
// an empty result.
//
// Returns ErrInvalidDateFormat if Since or Until is not YYYY-MM-DD.
func History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	result := &HistoryResult{Total: len(entries)}
	filtered := entries

	if opts.Operations != "" {
		filtered = filterByOperations(filtered, strings.Split(opts.Operations, ","))
	}

	if opts.Since != "" {
		since, err := time.Parse(historyDate, opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", cerrors.ErrInvalidDateFormat)
		}
		filtered = filterByTime(filtered, func(t time.Time) bool { return !t.Before(since) })
	}

	if opts.Until != "" {
		until, err := time.Parse(historyDate, opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until must be YYYY-MM-DD", cerrors.ErrInvalidDateFormat)
		}
		// Include the whole day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filtered = filterByTime(filtered, func(t time.Time) bool { return !t.After(until) })
	}

	// The limit keeps the most recent entries in either order.
	filtered = audit.Tail(filtered, opts.Limit)
	if opts.Reverse {
		reversed := make([]audit.Entry, len(filtered))
		for i, e := range filtered {
			reversed[len(filtered)-1-i] = e
		}
		filtered = reversed
	}

	result.Entries = filtered
	return result, nil
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(strings.TrimSpace(op))] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

func filterByTime(entries []audit.Entry, keep func(time.Time) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := parseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if keep(t) {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(historyTimestamp, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}

// FormatDateTime formats a history timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes what an entry touched.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpEncrypt, audit.OpDecrypt:
		var details string
		switch {
		case len(e.Files) == 0:
			details = "no files"
		case len(e.Files) > 3:
			details = fmt.Sprintf("%d files", len(e.Files))
		default:
			names := make([]string, len(e.Files))
			for i, f := range e.Files {
				names[i] = filepath.Base(f)
			}
			details = strings.Join(names, ", ")
		}
		if e.Codec != "" {
			details += " [" + e.Codec + "]"
		}
		if e.Skipped > 0 {
			details += fmt.Sprintf(", %d skipped", e.Skipped)
		}
		return details
	case audit.OpUnseal, audit.OpAccount:
		return e.Account
	default:
		return ""
	}
}
