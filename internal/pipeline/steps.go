package pipeline

import (
	"context"
	"strings"
)

func formatWithBlack(ctx context.Context, r *run) bool {
	r.printer.Header("Black Code Formatter")

	var args []string
	if r.opts.CheckOnly {
		args = append(args, "--check")
	}
	args = append(args, ".")

	r.printer.Step("Running black formatter", statusRunning)
	res := r.module(ctx, "black", args...)
	if res.OK() {
		r.printer.Step("Black formatting passed", statusSuccess)
		return true
	}
	if r.opts.CheckOnly {
		r.printer.Step("Black found formatting issues", statusWarning)
		r.printer.Raw(res.Stdout)
	} else {
		r.printer.Step("Black formatting failed", statusError)
		r.printer.Raw(res.Stderr)
	}
	return false
}

func sortImports(ctx context.Context, r *run) bool {
	r.printer.Header("Import Sorting (isort)")

	var args []string
	if r.opts.CheckOnly {
		args = append(args, "--check-only")
	}
	args = append(args, ".")

	r.printer.Step("Running isort", statusRunning)
	res := r.module(ctx, "isort", args...)
	if res.OK() {
		r.printer.Step("Import sorting passed", statusSuccess)
		return true
	}
	if r.opts.CheckOnly {
		r.printer.Step("isort found unsorted imports", statusWarning)
		r.printer.Raw(res.Stdout)
	} else {
		r.printer.Step("Import sorting failed", statusError)
	}
	return false
}

// flake8 cannot fix anything; it runs the same way in both modes.
func lintWithFlake8(ctx context.Context, r *run) bool {
	r.printer.Header("Flake8 Linting")

	r.printer.Step("Running flake8", statusRunning)
	res := r.module(ctx, "flake8")
	if res.OK() {
		r.printer.Step("Flake8 passed", statusSuccess)
		return true
	}
	r.printer.Step("Flake8 found issues", statusWarning)
	r.printer.Raw(res.Stdout)
	return false
}

// pylint exits non-zero for mere warnings. A run that got as far as
// printing its score counts as a pass.
func lintWithPylint(ctx context.Context, r *run) bool {
	r.printer.Header("Pylint Linting")

	files, err := r.pylintTargets()
	if err != nil {
		r.printer.Step("Listing Python files failed: "+err.Error(), statusError)
		return false
	}
	if len(files) == 0 {
		r.printer.Step("No Python files found to lint", statusWarning)
		return true
	}

	r.printer.Step("Running pylint", statusRunning)
	res := r.module(ctx, "pylint", files...)
	if res.OK() {
		r.printer.Step("Pylint passed", statusSuccess)
		return true
	}
	if strings.Contains(res.Stdout, "rated at") {
		r.printer.Step("Pylint completed with warnings", statusWarning)
		r.printer.Raw(res.Stdout)
		return true
	}
	r.printer.Step("Pylint failed", statusError)
	r.printer.Raw(res.Stdout)
	return false
}

func runTests(ctx context.Context, r *run) bool {
	r.printer.Header("Test Suite (pytest)")

	r.printer.Step("Running pytest", statusRunning)
	res := r.module(ctx, "pytest", r.Settings.TestArgs...)
	if res.OK() {
		r.printer.Step("Tests passed", statusSuccess)
		return true
	}
	r.printer.Step("Tests failed", statusError)
	r.printer.Raw(res.Stdout)
	r.printer.Raw(res.Stderr)
	return false
}
