package cli

import (
	"github.com/brandonbloom/lintfix/internal/pipeline"
	"github.com/brandonbloom/lintfix/internal/python"
	"github.com/brandonbloom/lintfix/internal/toolrun"
	"github.com/spf13/cobra"
)

func runPipeline(cmd *cobra.Command, opts *globalOptions, runOpts pipeline.Options) error {
	proj, err := currentProject(opts.logger)
	if err != nil {
		return err
	}
	if err := chdirToProject(proj.Root); err != nil {
		return err
	}
	py, err := python.Command(proj.Config.Pipeline.Python, nil)
	if err != nil {
		return err
	}
	opts.logger.Debug("interpreter", "python", py)

	out := cmd.OutOrStdout()
	p := &pipeline.Pipeline{
		Root:     proj.Root,
		Python:   py,
		Settings: proj.Config.Pipeline,
		Runner:   toolrun.ExecRunner{Logger: opts.logger},
		Out:      out,
		Err:      cmd.ErrOrStderr(),
		Color:    pipeline.ColorEnabled(out),
		Logger:   opts.logger,
	}
	_, err = p.Run(cmd.Context(), runOpts)
	return err
}
