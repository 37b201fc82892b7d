package project

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brandonbloom/lintfix/internal/config"
)

// ErrNotFound indicates that no project root could be discovered.
var ErrNotFound = errors.New("no project found; expected " + config.FileName + " or " + config.DefaultEntry + " in this directory or a parent")

// Project encapsulates a lintfix-enabled repository discovered on disk.
type Project struct {
	Root       string
	ConfigPath string
	Config     config.Config
}

// Discover walks upward from start until it finds a project root.
func Discover(start string) (*Project, error) {
	root, err := locateRoot(start)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// Load constructs a Project from a known root directory.
func Load(root string) (*Project, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	cfgPath := filepath.Join(root, config.FileName)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return &Project{
		Root:       root,
		ConfigPath: cfgPath,
		Config:     cfg,
	}, nil
}

// EntryPath returns the absolute path of the configured downstream entry point.
func (p *Project) EntryPath() string {
	entry := filepath.FromSlash(p.Config.Wrapper.Entry)
	if filepath.IsAbs(entry) {
		return entry
	}
	return filepath.Join(p.Root, entry)
}

func locateRoot(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if isRoot(cur) {
			return cur, nil
		}
		next := filepath.Dir(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return "", ErrNotFound
}

func isRoot(dir string) bool {
	return isFile(filepath.Join(dir, config.FileName)) ||
		isFile(filepath.Join(dir, filepath.FromSlash(config.DefaultEntry)))
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}

// PythonFiles lists the top-level *.py files under root, skipping dot-files
// and any file whose name starts with one of the excluded prefixes.
func PythonFiles(root string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var result []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".py" || strings.HasPrefix(name, ".") {
			continue
		}
		if hasAnyPrefix(name, exclude) {
			continue
		}
		result = append(result, name)
	}
	sort.Strings(result)
	return result, nil
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
