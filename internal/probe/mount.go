package probe

import (
	"context"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// ZFSMounter mounts and unmounts ZFS datasets at explicit mount points. The
// zfsutil option lets datasets whose mountpoint property is managed by ZFS
// be mounted at an arbitrary directory anyway.
type ZFSMounter struct {
	runner CommandRunner
}

// NewZFSMounter returns a ZFSMounter using the given runner.
func NewZFSMounter(runner CommandRunner) *ZFSMounter {
	return &ZFSMounter{runner: runner}
}

// Mount mounts the dataset at dir.
func (m *ZFSMounter) Mount(ctx context.Context, dataset, dir string) error {
	out, err := m.runner.Run(ctx, "mount", "-t", "zfs", "-o", "zfsutil", dataset, dir)
	if err != nil {
		if msg := out.Primary(); msg != "" {
			return postflighterrors.NewProbeError("mount", errWithDetail(err, msg))
		}
		return postflighterrors.NewProbeError("mount", err)
	}
	return nil
}

// Unmount unmounts whatever is mounted at dir.
func (m *ZFSMounter) Unmount(ctx context.Context, dir string) error {
	out, err := m.runner.Run(ctx, "umount", dir)
	if err != nil {
		if msg := out.Primary(); msg != "" {
			return postflighterrors.NewProbeError("umount", errWithDetail(err, msg))
		}
		return postflighterrors.NewProbeError("umount", err)
	}
	return nil
}
