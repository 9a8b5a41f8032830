package workflows

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/cpz/internal/configs"
	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"github.com/PolarWolf314/cpz/internal/utils"
)

// pendingWrite is an output held in memory until the whole batch succeeds.
type pendingWrite struct {
	source string
	path   string
	data   []byte
}

func resolveBaseDir(baseDir string) (string, error) {
	if baseDir != "" {
		return baseDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return wd, nil
}

func resolveFiles(patterns []string, baseDir string, keep func(string) bool) ([]string, error) {
	base, err := resolveBaseDir(baseDir)
	if err != nil {
		return nil, err
	}

	files, err := utils.ResolveFiles(patterns, base, keep)
	if err != nil {
		return nil, fmt.Errorf("resolving file patterns: %w", err)
	}
	return files, nil
}

// outputDirectory picks the flag value, then the configured directory.
// Empty means next to each source file.
func outputDirectory(flagValue string, config *configs.UserConfig) string {
	if flagValue != "" {
		return flagValue
	}
	return config.Output.Directory
}

func outputPath(source, name, outDir string) string {
	if outDir == "" {
		return filepath.Join(filepath.Dir(source), name)
	}
	return filepath.Join(outDir, name)
}

// checkOutputConflicts fails when two writes of a batch share an output
// path, which happens when --output-dir flattens same-named inputs.
func checkOutputConflicts(writes []pendingWrite) error {
	seen := make(map[string]string, len(writes))
	for _, w := range writes {
		key := filepath.Clean(w.path)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", cerrors.ErrOutputConflict, other, w.source, w.path)
		}
		seen[key] = w.source
	}
	return nil
}

// stagedWrite is a pending output already written to a temporary file next
// to its destination. backup holds the file it replaced, if any.
type stagedWrite struct {
	path   string
	tmp    string
	backup string
}

// commit writes every pending output in two phases. All data goes to
// temporary files first; only then are they renamed into place. If any step
// fails, outputs already renamed are removed and the files they replaced are
// restored, so the batch lands completely or not at all.
func commit(writes []pendingWrite) error {
	staged := make([]*stagedWrite, 0, len(writes))
	for _, w := range writes {
		tmp, err := stageFile(w.path, w.data, 0600)
		if err != nil {
			discardStaged(staged)
			return fmt.Errorf("writing %s: %w", w.path, err)
		}
		staged = append(staged, &stagedWrite{path: w.path, tmp: tmp})
	}

	for i, st := range staged {
		if err := st.install(); err != nil {
			rollback(staged[:i])
			discardStaged(staged[i:])
			return fmt.Errorf("writing %s: %w", st.path, err)
		}
	}

	for _, st := range staged {
		if st.backup != "" {
			os.Remove(st.backup)
		}
	}
	return nil
}

// install moves an existing regular file at the destination aside and
// renames the staged file into place.
func (st *stagedWrite) install() error {
	if info, err := os.Lstat(st.path); err == nil && info.Mode().IsRegular() {
		backup, err := reserveTemp(st.path, ".bak")
		if err != nil {
			return err
		}
		if err := os.Rename(st.path, backup); err != nil {
			os.Remove(backup)
			return err
		}
		st.backup = backup
	}

	if err := os.Rename(st.tmp, st.path); err != nil {
		if st.backup != "" {
			os.Rename(st.backup, st.path)
			st.backup = ""
		}
		return err
	}
	st.tmp = ""
	return nil
}

func rollback(installed []*stagedWrite) {
	for i := len(installed) - 1; i >= 0; i-- {
		st := installed[i]
		if st.backup != "" {
			os.Rename(st.backup, st.path)
			continue
		}
		os.Remove(st.path)
	}
}

func discardStaged(staged []*stagedWrite) {
	for _, st := range staged {
		if st.tmp != "" {
			os.Remove(st.tmp)
		}
	}
}

// stageFile writes data to a temporary file in the destination directory and
// returns its name.
func stageFile(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func reserveTemp(path, suffix string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*"+suffix)
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

func paths(writes []pendingWrite) (sources, outputs []string) {
	for _, w := range writes {
		sources = append(sources, w.source)
		outputs = append(outputs, w.path)
	}
	return sources, outputs
}
