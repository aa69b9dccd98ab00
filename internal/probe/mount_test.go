package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZFSMounterMount(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	runner.script("mount -t zfs -o zfsutil rpool/ROOT/default /tmp/postflight-x", Output{}, nil)

	err := NewZFSMounter(runner).Mount(context.Background(), "rpool/ROOT/default", "/tmp/postflight-x")
	require.NoError(t, err)
	require.Equal(t, []string{"mount -t zfs -o zfsutil rpool/ROOT/default /tmp/postflight-x"}, runner.calls)
}

func TestZFSMounterMountFailureCarriesDiagnostics(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	out := Output{Stderr: "filesystem 'rpool/ROOT/default' cannot be mounted"}
	runner.script("mount -t zfs -o zfsutil rpool/ROOT/default /tmp/postflight-x", out, exitFailure(t))

	err := NewZFSMounter(runner).Mount(context.Background(), "rpool/ROOT/default", "/tmp/postflight-x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot be mounted")
}

func TestZFSMounterUnmount(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	runner.script("umount /tmp/postflight-x", Output{}, nil)

	err := NewZFSMounter(runner).Unmount(context.Background(), "/tmp/postflight-x")
	require.NoError(t, err)
}
