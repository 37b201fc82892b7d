package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/brandonbloom/lintfix/internal/pipeline"
	"github.com/brandonbloom/lintfix/internal/version"
	"github.com/spf13/cobra"
)

// Execute runs lintfix and returns the process exit code.
func Execute() int {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !reported(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "lintfix: %v\n", err)
		}
		return 1
	}
	return 0
}

// reported reports whether err was already explained in the command output.
func reported(err error) bool {
	return errors.Is(err, pipeline.ErrChecksFailed) || errors.Is(err, pipeline.ErrMissingTools)
}

type globalOptions struct {
	logLevel string
	logger   *slog.Logger
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{logger: slog.New(slog.DiscardHandler)}
	var runOpts pipeline.Options

	cmd := &cobra.Command{
		Use:           "lintfix",
		Short:         "Auto-fix and validate Python code quality (black, isort, flake8, pylint)",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd, opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, runOpts)
		},
	}
	cmd.Flags().BoolVar(&runOpts.CheckOnly, "check-only", false, "only check for issues, don't auto-fix")
	cmd.Flags().BoolVarP(&runOpts.Verbose, "verbose", "v", false, "show detailed tool output")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")

	cmd.AddCommand(
		newHooksCommand(opts),
		newDoctorCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

func newLogger(cmd *cobra.Command, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q (expected debug, info, warn, or error)", level)
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}

func chdirToProject(root string) error {
	if err := os.Chdir(root); err != nil {
		return fmt.Errorf("change to project root: %w", err)
	}
	return nil
}
