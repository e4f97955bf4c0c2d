// Package fsutil provides file helpers for config artifacts that carry
// private keys: atomic writes and short-lived scoped files.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFileAtomic replaces dir/name with data. The bytes go to a uniquely
// named sibling that is created 0600, set to perm, synced and renamed over
// the target, so a reader sees either the previous file or the complete new
// one. On failure the target is untouched and no sibling is left behind.
func WriteFileAtomic(dir, name string, data []byte, perm os.FileMode) error {
	if err := checkName(name); err != nil {
		return fmt.Errorf("fsutil: write atomic: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("fsutil: write atomic: %w", err)
	}
	tmpPath := f.Name()

	if err := fill(f, data, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("fsutil: write atomic: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("fsutil: write atomic: %w", err)
	}
	return nil
}

// fill writes data to f with mode perm, syncs and closes it.
func fill(f *os.File, data []byte, perm os.FileMode) error {
	if err := f.Chmod(perm); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// checkName rejects anything but a plain file name.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
