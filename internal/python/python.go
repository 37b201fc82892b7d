// Package python locates a Python interpreter on PATH.
package python

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNotFound indicates no interpreter candidate was found on PATH.
var ErrNotFound = errors.New("python interpreter not found on PATH")

// LookPathFunc matches exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Candidates returns the interpreter commands tried, in order, for goos.
func Candidates(goos string) [][]string {
	if goos == "windows" {
		return [][]string{{"py", "-3"}, {"python"}, {"python3"}}
	}
	return [][]string{{"python3"}, {"python"}}
}

// Find returns the first interpreter command available on PATH. The first
// element of the result is an absolute path; the rest are fixed arguments.
func Find(lookPath LookPathFunc) ([]string, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	var tried []string
	for _, cand := range Candidates(runtime.GOOS) {
		path, err := lookPath(cand[0])
		if err != nil {
			tried = append(tried, cand[0])
			continue
		}
		return append([]string{path}, cand[1:]...), nil
	}
	return nil, &NotFoundError{Tried: tried}
}

// Command returns the interpreter to use, preferring an explicit override.
// The override is split on whitespace so values like "py -3" work.
func Command(override string, lookPath LookPathFunc) ([]string, error) {
	if fields := strings.Fields(override); len(fields) > 0 {
		return fields, nil
	}
	return Find(lookPath)
}

// NotFoundError lists the interpreter names that were searched for.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return ErrNotFound.Error() + " (tried " + strings.Join(e.Tried, ", ") + ")"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
