package errors

import "errors"

// Container errors indicate a .cpz artifact could not be produced or read.
var (
	// ErrMalformedContainer indicates the header or declared lengths are structurally invalid.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrDecompression indicates the decrypted payload is not a valid compressed stream.
	ErrDecompression = errors.New("failed to decompress payload")

	// ErrCompression indicates the payload could not be compressed.
	ErrCompression = errors.New("failed to compress payload")

	// ErrUnknownCodec indicates a compression codec name that cpz does not support.
	ErrUnknownCodec = errors.New("unknown compression codec")

	// ErrInvalidText indicates text handed to the hex codec is not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")
)

// File errors indicate issues with file selection or naming.
var (
	// ErrWrongExtension indicates decrypt was invoked on a file without the .cpz extension.
	ErrWrongExtension = errors.New("file does not have the .cpz extension")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrPasswordRequired indicates an operation needed a password and none was supplied.
	ErrPasswordRequired = errors.New("password is required")

	// ErrOutputConflict indicates two inputs of one batch map to the same output file.
	ErrOutputConflict = errors.New("two inputs map to the same output file")

	// ErrInvalidDateFormat indicates a history date filter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Exchange errors indicate failures while sealing or unsealing a password.
var (
	// ErrUnsealFailed indicates the wallet provider refused or failed to decrypt a sealed secret.
	ErrUnsealFailed = errors.New("failed to unseal password")

	// ErrInvalidPublicKey indicates a recipient public key could not be parsed.
	ErrInvalidPublicKey = errors.New("invalid encryption public key")

	// ErrInvalidSealedSecret indicates a sealed secret is not valid hex or JSON.
	ErrInvalidSealedSecret = errors.New("invalid sealed secret")

	// ErrUnsupportedVersion indicates a sealed secret uses a scheme other than x25519-xsalsa20-poly1305.
	ErrUnsupportedVersion = errors.New("unsupported encryption version")
)

// Wallet errors indicate issues with account resolution.
var (
	// ErrNoAccounts indicates the wallet provider has no accounts available.
	ErrNoAccounts = errors.New("no wallet accounts available")

	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists indicates an account with the same name already exists.
	ErrAccountExists = errors.New("account already exists")

	// ErrInvalidAccountName indicates the account name contains unsupported characters.
	ErrInvalidAccountName = errors.New("invalid account name")
)
