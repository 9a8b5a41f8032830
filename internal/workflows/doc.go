// Package workflows provides high-level orchestration for cpz commands.
//
// Workflows coordinate the container, exchange, wallet, configs and audit
// packages to implement complete user-facing features. Each workflow handles
// a single command's business logic, independent of CLI concerns like flag
// parsing, spinners and output formatting.
//
// The cmd package stays a thin layer that parses flags, resolves the
// password interactively, calls a workflow and formats its result.
//
// # Available Workflows
//
//   - Encrypt, Decrypt, Inspect: .cpz containers on disk
//   - GeneratePassword, SealPassword, UnsealPassword: password exchange
//   - ListAccounts, CreateAccount, AccountPublicKey: the local keystore
//   - InitConfig, ShowConfig: user configuration
//   - History: the local operation log
//   - Doctor: health checks of configuration and keystore
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, cerrors.ErrDecompression) {
//	    // corrupted or tampered container
//	}
//
// A failing file aborts the whole batch before anything is written.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It is checked between files and passed to the wallet provider.
package workflows
