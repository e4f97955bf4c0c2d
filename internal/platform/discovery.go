package platform

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Canonical tool names.
const (
	wgQuickBinary = "wg-quick"
	wgBinary      = "wg"
)

// locator resolves tool binaries: PATH first, then a fixed list of
// conventional install directories. The first match wins.
type locator struct {
	lookPath func(file string) (string, error)
	stat     func(name string) (os.FileInfo, error)
}

func newLocator() locator {
	return locator{lookPath: exec.LookPath, stat: os.Stat}
}

// find returns the path of name, or false if it is nowhere to be found.
func (l locator) find(name string, dirs []string) (string, bool) {
	if p, err := l.lookPath(name); err == nil && p != "" {
		return p, true
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if l.isExecutable(p) {
			return p, true
		}
	}
	return "", false
}

func (l locator) isExecutable(path string) bool {
	info, err := l.stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

// exists reports whether path names an existing regular file.
func (l locator) exists(path string) bool {
	info, err := l.stat(path)
	return err == nil && info.Mode().IsRegular()
}
