package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/brandonbloom/lintfix/internal/gitutil"
	"github.com/brandonbloom/lintfix/internal/project"
	"github.com/brandonbloom/lintfix/internal/python"
	"github.com/brandonbloom/lintfix/internal/toolrun"
	"github.com/spf13/cobra"
)

func newDoctorCommand(opts *globalOptions) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose lintfix prerequisites and environment issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			dc := &doctorContext{
				ctx:    cmd.Context(),
				start:  wd,
				runner: toolrun.ExecRunner{Logger: opts.logger},
			}
			return runDoctor(cmd, dc, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show passing checks too")
	return cmd
}

type doctorContext struct {
	ctx    context.Context
	start  string
	runner toolrun.Runner

	Project *project.Project
	Python  []string
}

type doctorCheck struct {
	Name string
	Fn   func(*doctorContext) error
}

var projectCheck = doctorCheck{Name: "project layout", Fn: func(c *doctorContext) error {
	proj, err := project.Discover(c.start)
	if err != nil {
		return err
	}
	c.Project = proj
	return nil
}}

// doctorChecks lists the checks that follow project discovery; tool checks
// come from the discovered config.
func doctorChecks(dc *doctorContext) []doctorCheck {
	checks := []doctorCheck{
		{Name: "entry point present", Fn: checkEntryPoint},
		{Name: "python installed", Fn: checkPython},
		{Name: "git installed", Fn: requireOnPath("git")},
	}
	if dc.Project != nil {
		for _, tool := range dc.Project.Config.Pipeline.Tools {
			checks = append(checks, doctorCheck{Name: tool + " installed", Fn: requireModule(tool)})
		}
		if dc.Project.Config.Pipeline.RunTests {
			checks = append(checks, doctorCheck{Name: "pytest installed", Fn: requireModule("pytest")})
		}
	}
	checks = append(checks, doctorCheck{Name: "pre-commit hook installed", Fn: checkHook})
	return checks
}

func runDoctor(cmd *cobra.Command, dc *doctorContext, verbose bool) error {
	var failures []string
	report := func(check doctorCheck) {
		if err := check.Fn(dc); err != nil {
			failures = append(failures, fmt.Sprintf("✗ %s: %v", check.Name, err))
			return
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", check.Name)
		}
	}

	report(projectCheck)
	for _, check := range doctorChecks(dc) {
		report(check)
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintln(cmd.ErrOrStderr(), failure)
		}
		return fmt.Errorf("%d doctor checks failed", len(failures))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "healthy!")
	return nil
}

func requireOnPath(binary string) func(*doctorContext) error {
	return func(*doctorContext) error {
		if _, err := exec.LookPath(binary); err != nil {
			return fmt.Errorf("%s not found on PATH", binary)
		}
		return nil
	}
}

func checkEntryPoint(c *doctorContext) error {
	if c.Project == nil {
		return errors.New("project not found")
	}
	path := c.Project.EntryPath()
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s missing", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func checkPython(c *doctorContext) error {
	override := ""
	if c.Project != nil {
		override = c.Project.Config.Pipeline.Python
	}
	py, err := python.Command(override, nil)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(py[0]); err != nil {
		return fmt.Errorf("%s not found on PATH", py[0])
	}
	c.Python = py
	return nil
}

func requireModule(module string) func(*doctorContext) error {
	return func(c *doctorContext) error {
		if len(c.Python) == 0 {
			return errors.New("python unavailable")
		}
		args := append(append([]string(nil), c.Python[1:]...), "-m", module, "--version")
		res := c.runner.Run(c.ctx, c.Project.Root, c.Python[0], args...)
		if !res.OK() {
			return fmt.Errorf("run `pip install %s`", module)
		}
		return nil
	}
}

func checkHook(c *doctorContext) error {
	if c.Project == nil {
		return errors.New("project not found")
	}
	if !gitutil.IsRepo(c.Project.Root) {
		return errors.New("project is not a git repository")
	}
	ok, err := gitutil.HookInstalled(c.Project.Root, "pre-commit")
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("run `lintfix hooks` to install")
	}
	return nil
}
