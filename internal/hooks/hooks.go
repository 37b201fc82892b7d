// Package hooks installs the pre-commit git hooks that run the quality
// pipeline on commit and push.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/brandonbloom/lintfix/internal/gitutil"
	"github.com/brandonbloom/lintfix/internal/toolrun"
)

var (
	// ErrNotRepo indicates the project root is not a git work tree.
	ErrNotRepo = errors.New("not a git repository; please initialize git first")
	// ErrPreCommitUnavailable indicates pre-commit is missing and could not be installed.
	ErrPreCommitUnavailable = errors.New("pre-commit is not installed and could not be installed")
	// ErrInstallFailed indicates `pre-commit install` failed.
	ErrInstallFailed = errors.New("failed to install pre-commit hooks")
)

const preCommit = "pre-commit"

// Installer sets up pre-commit hooks for one repository.
type Installer struct {
	Root   string
	Python []string
	Runner toolrun.Runner
	Out    io.Writer
	Logger *slog.Logger

	// IsRepo defaults to gitutil.IsRepo.
	IsRepo func(dir string) bool
}

// Install ensures pre-commit is available and installs the commit and push
// hooks. A failed pre-push install is reported but does not fail the run.
func (in *Installer) Install(ctx context.Context) error {
	logger := in.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	runner := in.Runner
	if runner == nil {
		runner = toolrun.ExecRunner{Logger: logger}
	}
	isRepo := in.IsRepo
	if isRepo == nil {
		isRepo = gitutil.IsRepo
	}

	rule := strings.Repeat("=", 70)
	fmt.Fprintln(in.Out, rule)
	fmt.Fprintln(in.Out, "Pre-commit Hook Installer")
	fmt.Fprintln(in.Out, rule)

	if !isRepo(in.Root) {
		return fmt.Errorf("%w: %s", ErrNotRepo, in.Root)
	}

	if err := in.ensurePreCommit(ctx, runner); err != nil {
		return err
	}

	fmt.Fprintln(in.Out, "\nSetting up pre-commit hooks...")
	res := runner.Run(ctx, in.Root, preCommit, "install", "--install-hooks")
	if !res.OK() {
		return fmt.Errorf("%w: %s", ErrInstallFailed, strings.TrimSpace(res.Stderr))
	}
	fmt.Fprintln(in.Out, "✓ Pre-commit hooks installed successfully")
	if out := strings.TrimSpace(res.Stdout); out != "" {
		fmt.Fprintln(in.Out, out)
	}

	res = runner.Run(ctx, in.Root, preCommit, "install", "--hook-type", "pre-push")
	if res.OK() {
		fmt.Fprintln(in.Out, "✓ Pre-push hooks installed successfully")
	} else {
		logger.Warn("pre-push hook install failed", "code", res.Code)
		fmt.Fprintf(in.Out, "⚠ Warning: Failed to install pre-push hooks: %s\n", strings.TrimSpace(res.Stderr))
	}

	fmt.Fprintln(in.Out, "\n"+rule)
	fmt.Fprintln(in.Out, "✓ Setup complete!")
	fmt.Fprintln(in.Out, rule)
	fmt.Fprint(in.Out, `
Pre-commit hooks are now active. They will run automatically on:
  • git commit (formatting and linting)
  • git push (full validation)

To run checks manually: pre-commit run --all-files
To skip hooks temporarily: git commit --no-verify
`)
	return nil
}

func (in *Installer) ensurePreCommit(ctx context.Context, runner toolrun.Runner) error {
	fmt.Fprintln(in.Out, "Checking for pre-commit...")
	if runner.Run(ctx, in.Root, preCommit, "--version").OK() {
		fmt.Fprintln(in.Out, "✓ pre-commit is already installed")
		return nil
	}
	if len(in.Python) == 0 {
		return fmt.Errorf("%w: no python interpreter to run pip", ErrPreCommitUnavailable)
	}

	fmt.Fprintln(in.Out, "Installing pre-commit...")
	args := append(append([]string(nil), in.Python[1:]...), "-m", "pip", "install", preCommit)
	res := runner.Run(ctx, in.Root, in.Python[0], args...)
	if !res.OK() {
		fmt.Fprintf(in.Out, "✗ Failed to install pre-commit: %s\n", strings.TrimSpace(res.Stderr))
		return fmt.Errorf("%w: %s", ErrPreCommitUnavailable, strings.TrimSpace(res.Stderr))
	}
	fmt.Fprintln(in.Out, "✓ pre-commit installed successfully")
	return nil
}
