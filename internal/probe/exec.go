package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Output captures what an inspection command produced.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Primary returns stderr if present, otherwise stdout. Inspection tools
// tend to put their diagnostics on stderr and their report on stdout.
func (o Output) Primary() string {
	if o.Stderr != "" {
		return o.Stderr
	}
	return o.Stdout
}

// CommandRunner executes external inspection commands. Checkers receive the
// real implementation in production and a fake in tests; no probe spawns a
// process any other way.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
	LookPath(name string) (string, error)
}

// ExecRunner is the production CommandRunner backed by os/exec.
type ExecRunner struct{}

var _ CommandRunner = ExecRunner{}

// Run executes the named command and collects its output. A non-zero exit
// returns the captured Output together with the *exec.ExitError, so callers
// can tell a verdict apart from a command that never ran.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	out := Output{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		} else {
			out.ExitCode = -1
		}
		return out, err
	}

	return out, nil
}

// LookPath reports whether the named tool is resolvable on PATH.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// ExitedNonZero reports whether err is the controlled failure of a command
// that ran to completion, as opposed to one that could not be executed at
// all (missing binary, cancelled context).
func ExitedNonZero(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

// errWithDetail annotates an execution error with the command's own words.
func errWithDetail(err error, detail string) error {
	return fmt.Errorf("%w: %s", err, detail)
}
