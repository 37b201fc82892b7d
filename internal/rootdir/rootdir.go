// Package rootdir locates the project root relative to the running wrapper.
package rootdir

import (
	"os"
	"path/filepath"
)

// FromExecutable resolves the project root from the path of the running binary.
func FromExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return Resolve(exe)
}

// Resolve returns the parent of the directory containing executable.
// Symlinks are followed first so a linked wrapper still finds its own tree.
func Resolve(executable string) (string, error) {
	abs, err := filepath.Abs(executable)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.Clean(filepath.Join(filepath.Dir(resolved), "..")), nil
}
