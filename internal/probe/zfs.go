package probe

import (
	"context"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// poolStatusOnline is the only status token recognized as healthy in the
// single-column output of `zpool list -H -o health`. DEGRADED, FAULTED,
// OFFLINE, UNAVAIL and REMOVED all fail the check.
const poolStatusOnline = "ONLINE"

// ZPool wraps pool-level zpool queries.
type ZPool struct {
	runner CommandRunner
}

// NewZPool returns a ZPool adapter using the given runner.
func NewZPool(runner CommandRunner) *ZPool {
	return &ZPool{runner: runner}
}

// Exists reports whether the named pool is imported on this host.
func (z *ZPool) Exists(ctx context.Context, pool string) (bool, error) {
	_, err := z.runner.Run(ctx, "zpool", "list", "-H", "-o", "name", pool)
	if err != nil {
		if ExitedNonZero(err) {
			return false, nil
		}
		return false, postflighterrors.NewProbeError("zpool list", err)
	}
	return true, nil
}

// Health returns the pool's reported status token and whether it is in the
// recognized healthy set.
func (z *ZPool) Health(ctx context.Context, pool string) (string, bool, error) {
	out, err := z.runner.Run(ctx, "zpool", "list", "-H", "-o", "health", pool)
	if err != nil {
		return "", false, postflighterrors.NewProbeError("zpool list", err)
	}
	return out.Stdout, out.Stdout == poolStatusOnline, nil
}

// Scrub starts a scrub on the pool. The command returns as soon as the
// scrub is scheduled; it does not wait for completion.
func (z *ZPool) Scrub(ctx context.Context, pool string) error {
	out, err := z.runner.Run(ctx, "zpool", "scrub", pool)
	if err != nil {
		if msg := out.Primary(); msg != "" {
			return postflighterrors.NewProbeError("zpool scrub", errWithDetail(err, msg))
		}
		return postflighterrors.NewProbeError("zpool scrub", err)
	}
	return nil
}
