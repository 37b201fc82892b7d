package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/brandonbloom/lintfix/internal/project"
)

// currentProject discovers the project enclosing the working directory and
// notes whether its settings came from .lintfix.toml or the defaults.
func currentProject(logger *slog.Logger) (*project.Project, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}
	proj, err := project.Discover(wd)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(proj.ConfigPath)
	logger.Debug("project discovered",
		"root", proj.Root,
		"config", !errors.Is(statErr, fs.ErrNotExist),
		"entry", proj.Config.Wrapper.Entry,
	)
	return proj, nil
}
