// Package errors provides typed error values for cpz.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. The CLI
// layer maps each kind to a user-facing message.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Container errors: framing and payload failures (ErrMalformedContainer, ErrDecompression)
//   - File errors: input selection issues (ErrWrongExtension, ErrNoFilesFound)
//   - Exchange errors: password sealing and unsealing (ErrUnsealFailed, ErrInvalidPublicKey)
//   - Wallet errors: account resolution (ErrNoAccounts, ErrAccountNotFound)
//
// # Usage
//
// Wrap errors with additional context in lower layers:
//
//	return nil, fmt.Errorf("cipher length slot: %w", errors.ErrMalformedContainer)
//
// Handle them in the CLI layer:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, cerrors.ErrDecompression) {
//	    // Show user-friendly message
//	}
package errors
