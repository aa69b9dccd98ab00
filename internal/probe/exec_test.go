package probe

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRunner scripts responses keyed by the full command line, and records
// every invocation so tests can assert on ordering.
type fakeRunner struct {
	responses map[string]fakeResponse
	missing   map[string]bool
	calls     []string
}

type fakeResponse struct {
	out Output
	err error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: map[string]fakeResponse{},
		missing:   map[string]bool{},
	}
}

func (f *fakeRunner) script(cmdline string, out Output, err error) {
	f.responses[cmdline] = fakeResponse{out: out, err: err}
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Output, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmdline)

	resp, ok := f.responses[cmdline]
	if !ok {
		return Output{}, fmt.Errorf("unscripted command %q", cmdline)
	}
	return resp.out, resp.err
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	f.calls = append(f.calls, "lookpath "+name)
	if f.missing[name] {
		return "", exec.ErrNotFound
	}
	return "/usr/sbin/" + name, nil
}

// exitFailure returns a real *exec.ExitError for scripting verdict-style
// command failures.
func exitFailure(t *testing.T) error {
	t.Helper()

	err := exec.Command("false").Run()
	require.Error(t, err)
	require.True(t, ExitedNonZero(err))
	return err
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}
}

func TestExecRunnerCapturesStreams(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	out, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo report; echo noise 1>&2")
	require.NoError(t, err)
	require.Equal(t, "report", out.Stdout)
	require.Equal(t, "noise", out.Stderr)
	require.Equal(t, 0, out.ExitCode)
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	out, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo partial; exit 3")
	require.Error(t, err)
	require.True(t, ExitedNonZero(err))
	require.Equal(t, 3, out.ExitCode)
	require.Equal(t, "partial", out.Stdout)
}

func TestExecRunnerMissingBinaryIsNotAVerdict(t *testing.T) {
	t.Parallel()

	_, err := ExecRunner{}.Run(context.Background(), "postflight-no-such-tool-xyzzy")
	require.Error(t, err)
	require.False(t, ExitedNonZero(err))
}

func TestOutputPrimaryPrefersStderr(t *testing.T) {
	t.Parallel()

	require.Equal(t, "bad", Output{Stdout: "ok", Stderr: "bad"}.Primary())
	require.Equal(t, "ok", Output{Stdout: "ok"}.Primary())
}
