package probe

import (
	"context"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// ToolInstaller makes a diagnostic tool available, installing its package
// through apt when it is missing from PATH.
type ToolInstaller struct {
	runner CommandRunner
}

// NewToolInstaller returns a ToolInstaller using the given runner.
func NewToolInstaller(runner CommandRunner) *ToolInstaller {
	return &ToolInstaller{runner: runner}
}

// EnsureTool returns nil when tool resolves on PATH, after at most one
// update-then-install attempt of pkg.
func (t *ToolInstaller) EnsureTool(ctx context.Context, tool, pkg string) error {
	if _, err := t.runner.LookPath(tool); err == nil {
		return nil
	}

	if out, err := t.runner.Run(ctx, "apt-get", "update"); err != nil {
		return installError("apt-get update", out, err)
	}
	if out, err := t.runner.Run(ctx, "apt-get", "install", "-y", pkg); err != nil {
		return installError("apt-get install", out, err)
	}

	if _, err := t.runner.LookPath(tool); err != nil {
		return postflighterrors.NewProbeError(tool, err)
	}
	return nil
}

func installError(probe string, out Output, err error) error {
	if msg := out.Primary(); msg != "" {
		return postflighterrors.NewProbeError(probe, errWithDetail(err, msg))
	}
	return postflighterrors.NewProbeError(probe, err)
}
