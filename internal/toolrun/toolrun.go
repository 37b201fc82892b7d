// Package toolrun runs external developer tools and captures their output.
package toolrun

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

// Result captures one finished tool invocation.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// OK reports whether the command exited successfully.
func (r Result) OK() bool {
	return r.Code == 0
}

// Runner executes external commands from dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) Result
}

// ExecRunner runs commands with os/exec, capturing their output.
type ExecRunner struct {
	Logger *slog.Logger
}

// Run never returns a Go error: failures to start are folded into a
// Result with code 1 so callers treat them like a failing tool.
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) Result {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Debug("run", "dir", dir, "cmd", name, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		logger.Debug("finished", "cmd", name, "code", 0)
		return res
	}

	var ee *exec.ExitError
	switch {
	case errors.As(err, &ee):
		res.Code = ee.ExitCode()
		if res.Code < 0 {
			res.Code = 1
		}
	case errors.Is(err, exec.ErrNotFound):
		res.Code = 1
		res.Stderr = "Command not found: " + name
	default:
		res.Code = 1
		res.Stderr = err.Error()
	}
	logger.Debug("finished", "cmd", name, "code", res.Code)
	return res
}
