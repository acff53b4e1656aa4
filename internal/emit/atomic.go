package emit

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeAtomic lets write fill a temporary file next to path and renames it
// into place once write succeeds. On failure the temporary file is removed
// and path is left as it was.
func writeAtomic(path string, write func(tmp string) error) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmission, err)
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %w", ErrEmission, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()
	if err := write(tmp); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEmission, path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrEmission, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: %w", ErrEmission, err)
	}
	return nil
}

// writeFileAtomic is writeAtomic for sinks that stream into an *os.File.
func writeFileAtomic(path string, write func(f *os.File) error) error {
	return writeAtomic(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
