package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/cpz/internal/audit"
	"github.com/PolarWolf314/cpz/internal/configs"
	"github.com/PolarWolf314/cpz/internal/container"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// FilePatterns are paths, directories or globs. Directory walks and
	// globs only pick up .cpz files.
	FilePatterns []string

	// BaseDir resolves relative patterns. Defaults to the working directory.
	BaseDir string

	// Password is accepted for symmetry with Encrypt. Containers carry
	// their own key material, so it does not affect the result.
	Password string

	// OutputDir overrides the configured output directory.
	OutputDir string

	DryRun bool
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// SourceFiles lists the .cpz files that were decrypted.
	SourceFiles []string

	// DecryptedFiles lists the files written, in the same order.
	DecryptedFiles []string

	// SkippedFiles lists inputs without the .cpz extension. They are not
	// read and produce no output.
	SkippedFiles []string

	DryRun bool
}

// Decrypt restores each matched .cpz file to its name without the suffix.
//
// Returns ErrNoFilesFound if no files match the patterns.
// Returns ErrOutputConflict if two containers would restore to the same file.
// Returns ErrMalformedContainer or ErrDecompression, wrapped with the file
// name, for the first container that cannot be decrypted. Nothing is
// written in that case.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	files, err := resolveFiles(opts.FilePatterns, opts.BaseDir, container.HasExtension)
	if err != nil {
		return nil, err
	}

	var pipeline container.Codec
	outDir := outputDirectory(opts.OutputDir, userConfig)
	result := &DecryptResult{DryRun: opts.DryRun}

	writes := make([]pendingWrite, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := filepath.Base(file)
		if !container.HasExtension(name) {
			result.SkippedFiles = append(result.SkippedFiles, file)
			continue
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		out, err := pipeline.DecryptNamed(name, data, opts.Password)
		if errors.Is(err, cerrors.ErrWrongExtension) {
			result.SkippedFiles = append(result.SkippedFiles, file)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("decrypting %s: %w", file, err)
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

	result.SourceFiles, result.DecryptedFiles = paths(writes)

	if opts.DryRun || len(writes) == 0 {
		return result, nil
	}

	if err := commit(writes); err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpDecrypt)
	entry.Files = result.SourceFiles
	entry.Outputs = result.DecryptedFiles
	entry.Skipped = len(result.SkippedFiles)
	audit.Log(entry)

	return result, nil
}
