// Package pipeline drives the Python quality tools over a project: format
// with black, sort imports with isort, then lint with flake8 and pylint,
// optionally finishing with pytest. Every tool runs as `python -m <tool>`
// from the project root so each picks up its own configuration files.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/trace"
	"strings"

	"github.com/brandonbloom/lintfix/internal/config"
	"github.com/brandonbloom/lintfix/internal/project"
	"github.com/brandonbloom/lintfix/internal/toolrun"
)

// ErrChecksFailed indicates at least one tool reported problems.
var ErrChecksFailed = errors.New("quality checks failed")

// ErrMissingTools indicates required tools are not installed.
var ErrMissingTools = errors.New("required tools are not installed")

const bannerTitle = "Code Quality Auto-Fix & Validation Script"

// Options mirror the command-line switches of a run.
type Options struct {
	CheckOnly bool
	Verbose   bool
}

// Pipeline runs the configured tools against one project root.
type Pipeline struct {
	Root     string
	Python   []string
	Settings config.PipelineBlock
	Runner   toolrun.Runner
	Out      io.Writer
	Err      io.Writer
	Color    bool
	Logger   *slog.Logger
}

// Outcome is the per-tool verdict shown in the summary.
type Outcome struct {
	Name   string
	Passed bool
}

type step struct {
	tool string
	name string
	run  func(ctx context.Context, r *run) bool
}

var steps = []step{
	{tool: config.ToolBlack, name: "Black", run: formatWithBlack},
	{tool: config.ToolIsort, name: "isort", run: sortImports},
	{tool: config.ToolFlake8, name: "Flake8", run: lintWithFlake8},
	{tool: config.ToolPylint, name: "Pylint", run: lintWithPylint},
}

type run struct {
	*Pipeline
	opts    Options
	printer *Printer
	errOut  io.Writer
	runner  toolrun.Runner
	logger  *slog.Logger
}

// Run executes the pipeline. It returns ErrMissingTools when the dependency
// check fails and ErrChecksFailed when any tool did not pass.
func (p *Pipeline) Run(ctx context.Context, opts Options) ([]Outcome, error) {
	if len(p.Python) == 0 {
		return nil, errors.New("pipeline: python command is required")
	}
	r := &run{
		Pipeline: p,
		opts:     opts,
		printer:  NewPrinter(p.Out, p.Color),
		errOut:   p.Err,
		runner:   p.Runner,
		logger:   p.Logger,
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.runner == nil {
		r.runner = toolrun.ExecRunner{Logger: r.logger}
	}
	if r.errOut == nil {
		r.errOut = p.Out
	}

	r.printer.Banner(bannerTitle, opts.CheckOnly)

	if missing := r.checkDependencies(ctx); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingTools, strings.Join(missing, ", "))
	}

	var outcomes []Outcome
	for _, s := range steps {
		if !p.Settings.HasTool(s.tool) {
			r.logger.Debug("skipping tool", "tool", s.tool)
			continue
		}
		outcomes = append(outcomes, Outcome{Name: s.name, Passed: r.traced(ctx, s.tool, s.run)})
	}
	if p.Settings.RunTests {
		outcomes = append(outcomes, Outcome{Name: "Pytest", Passed: r.traced(ctx, "pytest", runTests)})
	}

	if r.summarize(outcomes) {
		return outcomes, nil
	}
	return outcomes, ErrChecksFailed
}

// traced runs one step inside a runtime/trace region named after its tool.
func (r *run) traced(ctx context.Context, tool string, fn func(context.Context, *run) bool) bool {
	var passed bool
	trace.WithRegion(ctx, "lintfix."+tool, func() {
		passed = fn(ctx, r)
	})
	r.logger.Debug("step finished", "tool", tool, "passed", passed)
	return passed
}

// requiredModules lists the Python modules the configured run imports.
func (p *Pipeline) requiredModules() []string {
	var mods []string
	for _, s := range steps {
		if p.Settings.HasTool(s.tool) {
			mods = append(mods, s.tool)
		}
	}
	if p.Settings.RunTests {
		mods = append(mods, "pytest")
	}
	return mods
}

func (r *run) module(ctx context.Context, module string, args ...string) toolrun.Result {
	argv := make([]string, 0, len(r.Python)+2+len(args))
	argv = append(argv, r.Python[1:]...)
	argv = append(argv, "-m", module)
	argv = append(argv, args...)
	res := r.runner.Run(ctx, r.Root, r.Python[0], argv...)
	if r.opts.Verbose {
		r.printer.Raw(res.Stdout)
		writeRaw(r.errOut, res.Stderr)
	}
	return res
}

func (r *run) checkDependencies(ctx context.Context) []string {
	r.printer.Header("Checking Dependencies")

	var missing []string
	for _, mod := range r.requiredModules() {
		args := append(append([]string(nil), r.Python[1:]...), "-m", mod, "--version")
		res := r.runner.Run(ctx, r.Root, r.Python[0], args...)
		if res.OK() {
			r.printer.Step(mod+" is installed", statusSuccess)
			continue
		}
		r.printer.Step(mod+" is NOT installed", statusError)
		missing = append(missing, mod)
	}

	if len(missing) > 0 {
		r.printer.Line("")
		r.printer.Line(r.printer.failure("Missing tools: " + strings.Join(missing, ", ")))
		r.printer.Line(r.printer.warning("Install them with: pip install " + strings.Join(missing, " ")))
		r.printer.Line("")
	}
	return missing
}

func (r *run) summarize(outcomes []Outcome) bool {
	r.printer.Header("Summary")

	allPassed := true
	for _, o := range outcomes {
		if o.Passed {
			r.printer.Step(o.Name+": PASSED", statusSuccess)
			continue
		}
		r.printer.Step(o.Name+": FAILED", statusError)
		allPassed = false
	}
	r.printer.Line("")

	switch {
	case allPassed:
		r.printer.Line(r.printer.good("✓ All checks passed!"))
	case r.opts.CheckOnly:
		r.printer.Line(r.printer.warn("⚠ Issues found. Run without --check-only to auto-fix."))
	default:
		r.printer.Line(r.printer.bad("✗ Some issues could not be auto-fixed. Please review manually."))
	}
	r.printer.Line("")
	return allPassed
}

// pylintTargets lists the files pylint checks.
func (r *run) pylintTargets() ([]string, error) {
	return project.PythonFiles(r.Root, r.Settings.PylintExclude)
}
