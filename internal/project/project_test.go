package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/brandonbloom/lintfix/internal/config"
)

func TestDiscoverFindsEntryPointFromSubdirectory(t *testing.T) {
	root := realTempDir(t)
	touch(t, filepath.Join(root, "scripts", "lint_fix.py"))
	sub := filepath.Join(root, "tests", "fixtures")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	proj, err := Discover(sub)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if proj.Root != root {
		t.Fatalf("Root = %q, want %q", proj.Root, root)
	}
	if got, want := proj.EntryPath(), filepath.Join(root, "scripts", "lint_fix.py"); got != want {
		t.Fatalf("EntryPath = %q, want %q", got, want)
	}
}

func TestDiscoverPrefersConfigFile(t *testing.T) {
	root := realTempDir(t)
	if err := os.WriteFile(filepath.Join(root, config.FileName), []byte("[wrapper]\nentry = \"bin/check\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	proj, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if got, want := proj.EntryPath(), filepath.Join(root, "bin", "check"); got != want {
		t.Fatalf("EntryPath = %q, want %q", got, want)
	}
}

func TestDiscoverNotFound(t *testing.T) {
	_, err := Discover(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Discover error = %v, want ErrNotFound", err)
	}
}

func TestPythonFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"tetris.py", "setup.py", ".hidden.py", "board.py", "README.md"} {
		touch(t, filepath.Join(root, name))
	}
	if err := os.MkdirAll(filepath.Join(root, "pkg.py"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := PythonFiles(root, []string{"setup"})
	if err != nil {
		t.Fatalf("PythonFiles returned error: %v", err)
	}
	want := []string{"board.py", "tetris.py"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PythonFiles = %v, want %v", got, want)
	}
}

func realTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}
