package cli

import (
	"github.com/brandonbloom/lintfix/internal/hooks"
	"github.com/brandonbloom/lintfix/internal/python"
	"github.com/brandonbloom/lintfix/internal/toolrun"
	"github.com/spf13/cobra"
)

func newHooksCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hooks",
		Short: "Install pre-commit git hooks that run the quality checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := currentProject(opts.logger)
			if err != nil {
				return err
			}
			if err := chdirToProject(proj.Root); err != nil {
				return err
			}
			// pip is only needed when pre-commit is missing; a missing
			// interpreter is reported by the installer in that case.
			py, _ := python.Command(proj.Config.Pipeline.Python, nil)
			in := &hooks.Installer{
				Root:   proj.Root,
				Python: py,
				Runner: toolrun.ExecRunner{Logger: opts.logger},
				Out:    cmd.OutOrStdout(),
				Logger: opts.logger,
			}
			return in.Install(cmd.Context())
		},
	}
}
