package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/cpz/internal/audit"
	"github.com/PolarWolf314/cpz/internal/compress"
	"github.com/PolarWolf314/cpz/internal/configs"
	"github.com/PolarWolf314/cpz/internal/container"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/PolarWolf314/cpz/internal/exchange"
	"github.com/PolarWolf314/cpz/internal/streamcipher"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// FilePatterns are paths, directories or globs. Directory walks and
	// globs skip files that already carry the .cpz extension.
	FilePatterns []string

	// BaseDir resolves relative patterns. Defaults to the working directory.
	BaseDir string

	// Password is the user password. Ignored when GeneratePassword is set.
	Password string

	// GeneratePassword creates a random password of PasswordLength characters.
	GeneratePassword bool
	PasswordLength   int

	// Codec overrides the configured compression codec.
	Codec string

	// OutputDir overrides the configured output directory.
	OutputDir string

	// DryRun reports what would be written without writing anything.
	DryRun bool

	// Cipher replaces the default stream cipher. Tests use it to fix salts.
	Cipher *streamcipher.Cipher
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// SourceFiles lists the plaintext files that were read.
	SourceFiles []string

	// EncryptedFiles lists the .cpz files written, in the same order.
	EncryptedFiles []string

	// Codec is the compression codec used.
	Codec compress.Codec

	// Password is set when it was generated, so it can be shown or sealed.
	Password string

	DryRun bool
}

// Encrypt compresses and encrypts each matched file into name + ".cpz".
//
// Returns ErrPasswordRequired if no password was given or generated.
// Returns ErrNoFilesFound if no files match the patterns.
// Returns ErrUnknownCodec if the codec override or config is invalid.
// Returns ErrOutputConflict if two inputs would write the same container.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	password := opts.Password
	generated := ""
	if opts.GeneratePassword {
		length := opts.PasswordLength
		if length == 0 {
			length = exchange.DefaultPasswordLength
		}
		var err error
		if generated, err = exchange.GeneratePassword(length); err != nil {
			return nil, err
		}
		password = generated
	}
	if password == "" {
		return nil, cerrors.ErrPasswordRequired
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	codecName := userConfig.Compression.Codec
	if opts.Codec != "" {
		codecName = opts.Codec
	}
	compression, err := compress.ParseCodec(codecName)
	if err != nil {
		return nil, err
	}

	files, err := resolveFiles(opts.FilePatterns, opts.BaseDir, func(path string) bool {
		return !container.HasExtension(path)
	})
	if err != nil {
		return nil, err
	}

	pipeline := container.Codec{Compression: compression}
	if opts.Cipher != nil {
		pipeline.Cipher = *opts.Cipher
	}
	outDir := outputDirectory(opts.OutputDir, userConfig)

	writes := make([]pendingWrite, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		out, err := pipeline.EncryptNamed(filepath.Base(file), data, password)
		if err != nil {
			return nil, fmt.Errorf("encrypting %s: %w", file, err)
		}

		writes = append(writes, pendingWrite{
			source: file,
			path:   outputPath(file, out.Name, outDir),
			data:   out.Data,
		})
	}

	if err := checkOutputConflicts(writes); err != nil {
		return nil, err
	}

	result := &EncryptResult{
		Codec:    compression,
		Password: generated,
		DryRun:   opts.DryRun,
	}
	result.SourceFiles, result.EncryptedFiles = paths(writes)

	if opts.DryRun {
		return result, nil
	}

	if err := commit(writes); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpEncrypt)
	entry.Files = result.SourceFiles
	entry.Outputs = result.EncryptedFiles
	entry.Codec = string(compression)
	audit.Log(entry)

	return result, nil
}
