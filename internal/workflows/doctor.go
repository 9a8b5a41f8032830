package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/PolarWolf314/cpz/internal/audit"
	"github.com/PolarWolf314/cpz/internal/configs"
	"github.com/PolarWolf314/cpz/internal/wallet"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarning
	CheckError
)

func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Doctor checks the user configuration, the keystore and the history log.
func Doctor(ctx context.Context) (*DoctorResult, error) {
	checks := []func(context.Context) CheckResult{
		checkUserConfig,
		checkAccounts,
		checkDefaultAccount,
		checkKeystoreConsistency,
		checkPrivateKeyPermissions,
		checkHistoryLog,
	}

	var results []CheckResult
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, check(ctx))
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Suggestion != "" && r.Status != CheckPass && !seen[r.Suggestion] {
			suggestions = append(suggestions, r.Suggestion)
			seen[r.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var s DoctorSummary
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			s.Passed++
		case CheckWarning:
			s.Warnings++
		case CheckError:
			s.Errors++
		}
	}
	return s
}

func checkUserConfig(ctx context.Context) CheckResult {
	const name = "User configuration"

	if _, err := os.Stat(configs.UserConfigPath()); os.IsNotExist(err) {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "No config.toml, using defaults",
			Suggestion: "Run 'cpz config init' to write the default configuration",
		}
	}

	if _, err := configs.LoadUserConfig(); err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: fmt.Sprintf("Fix or remove %s", configs.UserConfigPath()),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "User configuration valid"}
}

func checkAccounts(ctx context.Context) CheckResult {
	const name = "Wallet accounts"

	ks, err := Keystore()
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}

	accounts, err := ks.Accounts(ctx)
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to read the account index: %v", err),
			Suggestion: fmt.Sprintf("Check %s for syntax errors", filepath.Join(ks.Dir, "accounts.toml")),
		}
	}

	if len(accounts) == 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "No wallet accounts yet",
			Suggestion: "Run 'cpz wallet create <name>' to create an account",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: fmt.Sprintf("%d account(s) in keystore", len(accounts))}
}

func checkDefaultAccount(ctx context.Context) CheckResult {
	const name = "Default account"

	ks, err := Keystore()
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}

	if _, err := ks.Info(ks.DefaultAccount); err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Default account %q does not exist yet", ks.DefaultAccount),
			Suggestion: "Run 'cpz wallet pubkey' to create it",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: fmt.Sprintf("Default account %q exists", ks.DefaultAccount)}
}

func checkKeystoreConsistency(ctx context.Context) CheckResult {
	const name = "Keystore consistency"

	ks, err := Keystore()
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}
	accounts, err := ks.Accounts(ctx)
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}

	indexed := make(map[string]bool, len(accounts))
	var missing []string
	for _, account := range accounts {
		indexed[account] = true
		if _, err := ks.EncryptionPublicKey(ctx, account); err != nil {
			missing = append(missing, account)
		}
	}

	if len(missing) > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Accounts with a missing or unreadable key: %s", strings.Join(missing, ", ")),
			Suggestion: "Restore the key files from a backup; sealed passwords for these accounts cannot be opened",
		}
	}

	orphans := orphanKeyFiles(ks, indexed)
	if len(orphans) > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Key files not in the account index: %s", strings.Join(orphans, ", ")),
			Suggestion: "Remove stray key files or restore accounts.toml",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "Every account has a readable key"}
}

func orphanKeyFiles(ks *wallet.Keystore, indexed map[string]bool) []string {
	matches, err := filepath.Glob(filepath.Join(ks.Dir, "*.key"))
	if err != nil {
		return nil
	}

	var orphans []string
	for _, m := range matches {
		account := strings.TrimSuffix(filepath.Base(m), ".key")
		if !indexed[account] {
			orphans = append(orphans, filepath.Base(m))
		}
	}
	return orphans
}

func checkPrivateKeyPermissions(ctx context.Context) CheckResult {
	const name = "Private key permissions"

	if runtime.GOOS == "windows" {
		return CheckResult{Name: name, Status: CheckPass, Message: "Skipped on Windows"}
	}

	ks, err := Keystore()
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}
	accounts, err := ks.Accounts(ctx)
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}

	var loose []string
	for _, account := range accounts {
		info, err := os.Stat(ks.KeyPath(account))
		if err != nil {
			continue
		}
		if info.Mode().Perm()&0077 != 0 {
			loose = append(loose, fmt.Sprintf("%s (%o)", filepath.Base(ks.KeyPath(account)), info.Mode().Perm()))
		}
	}

	if len(loose) > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Key files readable by others: %s", strings.Join(loose, ", ")),
			Suggestion: fmt.Sprintf("Run 'chmod 600 %s'", filepath.Join(ks.Dir, "*.key")),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "Private keys are only readable by you"}
}

func checkHistoryLog(ctx context.Context) CheckResult {
	const name = "History log"

	path := audit.LogPath()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return CheckResult{Name: name, Status: CheckPass, Message: "No history recorded yet"}
	}
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}
	if !info.Mode().IsRegular() {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%s is not a regular file", path),
			Suggestion: fmt.Sprintf("Remove %s so history can be recorded", path),
		}
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: err.Error()}
	}
	return CheckResult{Name: name, Status: CheckPass, Message: fmt.Sprintf("%d entries recorded", len(entries))}
}
