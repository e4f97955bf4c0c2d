package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PrivateFileMode is the mode of every artifact holding a private key.
const PrivateFileMode os.FileMode = 0o600

// ScopedFile is a file written into its own private directory. The caller
// removes it, normally with defer, as soon as the consumer is done with it.
type ScopedFile struct {
	// Path is the absolute path of the written file.
	Path string

	dir string
}

// WriteScoped creates a fresh 0700 directory under baseDir (os.TempDir when
// empty) and writes data to name inside it with mode 0600. The file name is
// preserved exactly so tools that derive meaning from it (wg-quick takes the
// interface name from the file stem) see what the caller chose.
// On failure nothing is left on disk.
func WriteScoped(baseDir, name string, data []byte) (*ScopedFile, error) {
	if err := checkName(name); err != nil {
		return nil, fmt.Errorf("fsutil: write scoped: %w", err)
	}

	dir, err := os.MkdirTemp(baseDir, "tunnelctl-")
	if err != nil {
		return nil, fmt.Errorf("fsutil: write scoped: %w", err)
	}
	sf := &ScopedFile{Path: filepath.Join(dir, name), dir: dir}

	f, err := os.OpenFile(sf.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, PrivateFileMode)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("fsutil: write scoped: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("fsutil: write scoped: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("fsutil: write scoped: %w", err)
	}
	return sf, nil
}

// Remove deletes the file and its directory. It is safe to call more than once.
func (s *ScopedFile) Remove() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("fsutil: remove scoped: %w", err)
	}
	return nil
}
