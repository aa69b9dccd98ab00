package probe

import (
	"context"
	"strings"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// Cryptsetup wraps cryptsetup queries against a LUKS container.
type Cryptsetup struct {
	runner CommandRunner
}

// NewCryptsetup returns a Cryptsetup adapter using the given runner.
func NewCryptsetup(runner CommandRunner) *Cryptsetup {
	return &Cryptsetup{runner: runner}
}

// IsLUKS reports whether the device carries a well-formed LUKS header.
// cryptsetup signals the verdict through its exit code.
func (c *Cryptsetup) IsLUKS(ctx context.Context, device string) (bool, error) {
	_, err := c.runner.Run(ctx, "cryptsetup", "isLuks", device)
	if err != nil {
		if ExitedNonZero(err) {
			return false, nil
		}
		return false, postflighterrors.NewProbeError("cryptsetup isLuks", err)
	}
	return true, nil
}

// DumpReadable reports whether the container's metadata can be dumped. A
// zero exit with empty output still counts as unreadable.
func (c *Cryptsetup) DumpReadable(ctx context.Context, device string) (bool, error) {
	out, err := c.runner.Run(ctx, "cryptsetup", "luksDump", device)
	if err != nil {
		if ExitedNonZero(err) {
			return false, nil
		}
		return false, postflighterrors.NewProbeError("cryptsetup luksDump", err)
	}
	return out.Stdout != "", nil
}

// MappingActive reports whether the named device-mapper target is an active
// unlocked mapping.
func (c *Cryptsetup) MappingActive(ctx context.Context, name string) (bool, error) {
	out, err := c.runner.Run(ctx, "cryptsetup", "status", name)
	if err != nil {
		if ExitedNonZero(err) {
			return false, nil
		}
		return false, postflighterrors.NewProbeError("cryptsetup status", err)
	}
	return strings.Contains(out.Stdout, "is active"), nil
}
