// Package wrapper implements lintwrap: it changes into the project root and
// hands the whole invocation to the downstream entry point.
//
// The wrapper interprets no flags and reads no environment variables. The
// child's stdio is inherited and its exit status becomes the wrapper's.
package wrapper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/brandonbloom/lintfix/internal/project"
	"github.com/brandonbloom/lintfix/internal/python"
	"github.com/brandonbloom/lintfix/internal/rootdir"
)

// Exit codes produced by the wrapper itself, following shell conventions.
const (
	ExitFailure    = 1
	ExitNotRunable = 126
	ExitNotFound   = 127
)

// ErrEntryPointMissing indicates the downstream entry point does not exist.
var ErrEntryPointMissing = errors.New("downstream entry point not found")

// Invocation is a single forwarded call.
type Invocation struct {
	Root    string
	Command []string
	Args    []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Main runs lintwrap with the given arguments and returns its exit code.
func Main(args []string) int {
	env := environment{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		resolveRoot: rootdir.FromExecutable,
		lookPath:    exec.LookPath,
	}
	return env.main(context.Background(), args)
}

type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	resolveRoot func() (string, error)
	lookPath    python.LookPathFunc
}

func (e environment) main(ctx context.Context, args []string) int {
	root, err := e.resolveRoot()
	if err != nil {
		e.fail(fmt.Errorf("locate project root: %w", err))
		return ExitFailure
	}
	proj, err := project.Load(root)
	if err != nil {
		e.fail(err)
		return ExitFailure
	}
	command, err := ResolveCommand(proj, e.lookPath)
	if err != nil {
		e.fail(err)
		if errors.Is(err, ErrEntryPointMissing) || errors.Is(err, python.ErrNotFound) {
			return ExitNotFound
		}
		return ExitFailure
	}

	code, err := Run(ctx, Invocation{
		Root:    proj.Root,
		Command: command,
		Args:    args,
		Stdin:   e.stdin,
		Stdout:  e.stdout,
		Stderr:  e.stderr,
	})
	if err != nil {
		e.fail(err)
	}
	return code
}

func (e environment) fail(err error) {
	fmt.Fprintf(e.stderr, "lintwrap: %v\n", err)
}

// ResolveCommand builds the downstream command line, without forwarded
// arguments, for proj. Python entry points are run through an interpreter.
func ResolveCommand(proj *project.Project, lookPath python.LookPathFunc) ([]string, error) {
	entry := proj.EntryPath()
	info, err := os.Stat(entry)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrEntryPointMissing, entry)
	}

	override := proj.Config.Wrapper.Interpreter
	if strings.TrimSpace(override) == "" && !strings.EqualFold(filepath.Ext(entry), ".py") {
		return []string{entry}, nil
	}
	interp, err := python.Command(override, lookPath)
	if err != nil {
		return nil, err
	}
	return append(interp, entry), nil
}

// Run changes the working directory to inv.Root and executes inv.Command
// followed by inv.Args. It blocks until the child exits and returns the
// child's exit code. The returned error is non-nil only when the wrapper
// itself has something to report; a child that merely fails is not an error.
func Run(ctx context.Context, inv Invocation) (int, error) {
	if len(inv.Command) == 0 {
		return ExitNotFound, ErrEntryPointMissing
	}
	if err := os.Chdir(inv.Root); err != nil {
		return ExitFailure, fmt.Errorf("change directory: %w", err)
	}

	argv := make([]string, 0, len(inv.Command)-1+len(inv.Args))
	argv = append(argv, inv.Command[1:]...)
	argv = append(argv, inv.Args...)

	cmd := exec.CommandContext(ctx, inv.Command[0], argv...)
	cmd.Dir = inv.Root
	cmd.Env = withPWD(os.Environ(), inv.Root)
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	if err := cmd.Start(); err != nil {
		return startFailure(inv.Command[0], err)
	}
	stop := relaySignals(cmd.Process)
	err := cmd.Wait()
	stop()
	return exitStatus(err)
}

func startFailure(name string, err error) (int, error) {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return ExitNotFound, fmt.Errorf("%w: %s", ErrEntryPointMissing, name)
	case errors.Is(err, fs.ErrPermission):
		return ExitNotRunable, fmt.Errorf("%s: not executable: %w", name, err)
	default:
		return ExitFailure, err
	}
}

func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if code, sigErr := signalStatus(ee); sigErr != nil {
			return code, sigErr
		}
		return ee.ExitCode(), nil
	}
	return ExitFailure, err
}

// withPWD mirrors what a shell `cd` does to PWD so child scripts that
// consult it agree with their real working directory.
func withPWD(env []string, dir string) []string {
	out := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if strings.HasPrefix(entry, "PWD=") {
			continue
		}
		out = append(out, entry)
	}
	return append(out, "PWD="+dir)
}
