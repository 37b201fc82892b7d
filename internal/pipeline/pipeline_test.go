package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/brandonbloom/lintfix/internal/config"
	"github.com/brandonbloom/lintfix/internal/toolrun"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	calls   []call
	results map[string]toolrun.Result
}

// Run looks results up by "<module> <first arg>" and then "<module>".
func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) toolrun.Result {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	module := ""
	rest := args
	for i, a := range args {
		if a == "-m" && i+1 < len(args) {
			module = args[i+1]
			rest = args[i+2:]
			break
		}
	}
	if len(rest) > 0 {
		if res, ok := f.results[module+" "+rest[0]]; ok {
			return res
		}
	}
	return f.results[module]
}

func (f *fakeRunner) modules() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, strings.Join(c.args, " "))
	}
	return out
}

func newTestPipeline(t *testing.T, runner toolrun.Runner, settings config.PipelineBlock) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"tetris.py", "setup.py"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	var out bytes.Buffer
	return &Pipeline{
		Root:     root,
		Python:   []string{"/usr/bin/python3"},
		Settings: settings,
		Runner:   runner,
		Out:      &out,
	}, &out
}

func TestRunAllPass(t *testing.T) {
	runner := &fakeRunner{}
	p, out := newTestPipeline(t, runner, config.Default().Pipeline)

	outcomes, err := p.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := []Outcome{{"Black", true}, {"isort", true}, {"Flake8", true}, {"Pylint", true}}
	if !reflect.DeepEqual(outcomes, want) {
		t.Fatalf("outcomes = %+v, want %+v", outcomes, want)
	}

	gotCalls := runner.modules()
	wantCalls := []string{
		"-m black --version",
		"-m isort --version",
		"-m flake8 --version",
		"-m pylint --version",
		"-m black .",
		"-m isort .",
		"-m flake8",
		"-m pylint tetris.py",
	}
	if !reflect.DeepEqual(gotCalls, wantCalls) {
		t.Fatalf("calls =\n%q\nwant\n%q", gotCalls, wantCalls)
	}
	for _, c := range runner.calls {
		if c.dir != p.Root || c.name != "/usr/bin/python3" {
			t.Fatalf("call %+v not run from root with python", c)
		}
	}

	text := out.String()
	for _, snippet := range []string{"Mode: FIX MODE", "Black formatting passed", "Pylint: PASSED", "✓ All checks passed!"} {
		if !strings.Contains(text, snippet) {
			t.Fatalf("output missing %q:\n%s", snippet, text)
		}
	}
	if strings.Contains(text, "\x1b[") {
		t.Fatal("output contains ANSI escapes with color disabled")
	}
}

func TestRunCheckOnlyFlags(t *testing.T) {
	runner := &fakeRunner{results: map[string]toolrun.Result{
		"black --check": {Code: 1, Stdout: "would reformat tetris.py"},
	}}
	p, out := newTestPipeline(t, runner, config.Default().Pipeline)

	outcomes, err := p.Run(context.Background(), Options{CheckOnly: true})
	if !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("Run error = %v, want ErrChecksFailed", err)
	}
	if outcomes[0].Passed || !outcomes[1].Passed {
		t.Fatalf("outcomes = %+v", outcomes)
	}

	calls := runner.modules()
	if !contains(calls, "-m black --check .") || !contains(calls, "-m isort --check-only .") {
		t.Fatalf("check-only flags missing from calls %q", calls)
	}

	text := out.String()
	for _, snippet := range []string{
		"Mode: CHECK MODE",
		"Black found formatting issues",
		"would reformat tetris.py",
		"Black: FAILED",
		"Run without --check-only to auto-fix.",
	} {
		if !strings.Contains(text, snippet) {
			t.Fatalf("output missing %q:\n%s", snippet, text)
		}
	}
}

func TestRunFixModeFailurePrintsStderr(t *testing.T) {
	runner := &fakeRunner{results: map[string]toolrun.Result{
		"black .": {Code: 123, Stderr: "error: cannot format tetris.py"},
	}}
	p, out := newTestPipeline(t, runner, config.Default().Pipeline)

	if _, err := p.Run(context.Background(), Options{}); !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("Run error = %v, want ErrChecksFailed", err)
	}
	text := out.String()
	if !strings.Contains(text, "cannot format tetris.py") {
		t.Fatalf("stderr not shown:\n%s", text)
	}
	if !strings.Contains(text, "Some issues could not be auto-fixed") {
		t.Fatalf("fix-mode hint missing:\n%s", text)
	}
}

func TestRunMissingToolsStopsEarly(t *testing.T) {
	runner := &fakeRunner{results: map[string]toolrun.Result{
		"isort --version":  {Code: 1, Stderr: "No module named isort"},
		"pylint --version": {Code: 1},
	}}
	p, out := newTestPipeline(t, runner, config.Default().Pipeline)

	outcomes, err := p.Run(context.Background(), Options{})
	if !errors.Is(err, ErrMissingTools) {
		t.Fatalf("Run error = %v, want ErrMissingTools", err)
	}
	if outcomes != nil {
		t.Fatalf("outcomes = %+v, want none", outcomes)
	}
	if len(runner.calls) != 4 {
		t.Fatalf("ran %d commands, want only the 4 version checks", len(runner.calls))
	}
	if !strings.Contains(out.String(), "pip install isort pylint") {
		t.Fatalf("install hint missing:\n%s", out.String())
	}
}

func TestPylintScoreCountsAsPass(t *testing.T) {
	runner := &fakeRunner{results: map[string]toolrun.Result{
		"pylint tetris.py": {Code: 16, Stdout: "Your code has been rated at 9.12/10"},
	}}
	p, _ := newTestPipeline(t, runner, config.Default().Pipeline)

	outcomes, err := p.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !outcomes[3].Passed {
		t.Fatalf("pylint outcome = %+v, want pass", outcomes[3])
	}
}

func TestPylintCrashFails(t *testing.T) {
	runner := &fakeRunner{results: map[string]toolrun.Result{
		"pylint tetris.py": {Code: 32, Stdout: "usage error"},
	}}
	p, _ := newTestPipeline(t, runner, config.Default().Pipeline)

	outcomes, err := p.Run(context.Background(), Options{})
	if !errors.Is(err, ErrChecksFailed) || outcomes[3].Passed {
		t.Fatalf("Run = (%+v, %v), want pylint failure", outcomes, err)
	}
}

func TestPylintWithoutFiles(t *testing.T) {
	runner := &fakeRunner{}
	p, out := newTestPipeline(t, runner, config.PipelineBlock{
		Tools:         []string{"pylint"},
		PylintExclude: []string{"setup"},
	})
	if err := os.Remove(filepath.Join(p.Root, "tetris.py")); err != nil {
		t.Fatal(err)
	}

	outcomes, err := p.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(outcomes) != 1 || !outcomes[0].Passed {
		t.Fatalf("outcomes = %+v", outcomes)
	}
	if contains(runner.modules(), "-m pylint") {
		t.Fatal("pylint should not run without files")
	}
	if !strings.Contains(out.String(), "No Python files found to lint") {
		t.Fatalf("warning missing:\n%s", out.String())
	}
}

func TestRunTestsAndToolSubset(t *testing.T) {
	runner := &fakeRunner{results: map[string]toolrun.Result{
		"pytest -x": {Code: 1, Stdout: "1 failed"},
	}}
	p, out := newTestPipeline(t, runner, config.PipelineBlock{
		Tools:    []string{"flake8"},
		RunTests: true,
		TestArgs: []string{"-x", "tests"},
	})
	p.Python = []string{"py", "-3"}

	outcomes, err := p.Run(context.Background(), Options{})
	if !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("Run error = %v, want ErrChecksFailed", err)
	}
	want := []Outcome{{"Flake8", true}, {"Pytest", false}}
	if !reflect.DeepEqual(outcomes, want) {
		t.Fatalf("outcomes = %+v, want %+v", outcomes, want)
	}
	wantCalls := []string{
		"-3 -m flake8 --version",
		"-3 -m pytest --version",
		"-3 -m flake8",
		"-3 -m pytest -x tests",
	}
	if got := runner.modules(); !reflect.DeepEqual(got, wantCalls) {
		t.Fatalf("calls = %q, want %q", got, wantCalls)
	}
	if !strings.Contains(out.String(), "1 failed") {
		t.Fatalf("pytest output missing:\n%s", out.String())
	}
}

func TestVerboseEchoesOutput(t *testing.T) {
	runner := &fakeRunner{results: map[string]toolrun.Result{
		"flake8": {Stdout: "flake8 chatter"},
	}}
	p, out := newTestPipeline(t, runner, config.PipelineBlock{Tools: []string{"flake8"}})

	if _, err := p.Run(context.Background(), Options{Verbose: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "flake8 chatter") {
		t.Fatalf("verbose output missing:\n%s", out.String())
	}
}

func TestVerboseKeepsStderrSeparate(t *testing.T) {
	runner := &fakeRunner{results: map[string]toolrun.Result{
		"flake8": {Stdout: "flake8 chatter", Stderr: "flake8 warning: config ignored"},
	}}
	p, out := newTestPipeline(t, runner, config.PipelineBlock{Tools: []string{"flake8"}})
	var errOut bytes.Buffer
	p.Err = &errOut

	if _, err := p.Run(context.Background(), Options{Verbose: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "flake8 chatter") {
		t.Fatalf("stdout missing tool output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "config ignored") {
		t.Fatalf("tool stderr leaked into stdout:\n%s", out.String())
	}
	if got := errOut.String(); got != "flake8 warning: config ignored\n" {
		t.Fatalf("stderr = %q", got)
	}
}

func TestRunRequiresPython(t *testing.T) {
	p := &Pipeline{Out: &bytes.Buffer{}}
	if _, err := p.Run(context.Background(), Options{}); err == nil {
		t.Fatal("expected error without python command")
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
