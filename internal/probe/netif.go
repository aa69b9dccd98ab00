package probe

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/prometheus/procfs/sysfs"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// reachabilityTimeout bounds the whole ping invocation; the -W flag caps
// the reply wait below it.
const reachabilityTimeout = 10 * time.Second

// NetIface inspects a network interface through sysfs and the ip and ping
// tools.
type NetIface struct {
	runner     CommandRunner
	sysfsMount string
}

// NewNetIface returns an adapter reading from the standard /sys mount.
func NewNetIface(runner CommandRunner) *NetIface {
	return &NetIface{runner: runner, sysfsMount: sysfs.DefaultMountPoint}
}

// NewNetIfaceAt returns an adapter reading sysfs from an alternate mount,
// so tests can point it at a fixture tree.
func NewNetIfaceAt(runner CommandRunner, sysfsMount string) *NetIface {
	return &NetIface{runner: runner, sysfsMount: sysfsMount}
}

// Exists reports whether the kernel exposes a class descriptor for the
// interface.
func (n *NetIface) Exists(iface string) (bool, error) {
	_, err := n.netClass(iface)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, postflighterrors.NewProbeError("sysfs", err)
	}
	return true, nil
}

// OperState returns the interface's kernel-reported operational state, "up"
// for a running link.
func (n *NetIface) OperState(iface string) (string, error) {
	class, err := n.netClass(iface)
	if err != nil {
		return "", postflighterrors.NewProbeError("sysfs", err)
	}
	return class.OperState, nil
}

func (n *NetIface) netClass(iface string) (*sysfs.NetClassIface, error) {
	fsys, err := sysfs.NewFS(n.sysfsMount)
	if err != nil {
		return nil, err
	}
	return fsys.NetClassByIface(iface)
}

// HasAddress reports whether the interface currently carries the address.
// The trailing slash keeps 10.0.0.5 from matching 10.0.0.50/24.
func (n *NetIface) HasAddress(ctx context.Context, iface, address string) (bool, error) {
	out, err := n.runner.Run(ctx, "ip", "-o", "addr", "show", "dev", iface)
	if err != nil {
		if ExitedNonZero(err) {
			return false, nil
		}
		return false, postflighterrors.NewProbeError("ip addr", err)
	}
	return strings.Contains(out.Stdout, address+"/"), nil
}

// Reachable sends a single ping to the target. A killed or non-zero ping is
// the unreachable verdict, not a probe failure.
func (n *NetIface) Reachable(ctx context.Context, target string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, reachabilityTimeout)
	defer cancel()

	_, err := n.runner.Run(ctx, "ping", "-c", "1", "-W", "5", target)
	if err != nil {
		if ExitedNonZero(err) {
			return false, nil
		}
		return false, postflighterrors.NewProbeError("ping", err)
	}
	return true, nil
}
