package health

import (
	"context"
	"fmt"

	"github.com/postflightdev/postflight/internal/logger"
)

// reachabilityTarget is quad9's anycast resolver, a stable target for the
// outbound reachability probe.
const reachabilityTarget = "9.9.9.9"

// NetProber is the slice of the network adapter the checker consumes.
type NetProber interface {
	Exists(iface string) (bool, error)
	OperState(iface string) (string, error)
	HasAddress(ctx context.Context, iface, address string) (bool, error)
	Reachable(ctx context.Context, target string) (bool, error)
}

// NetworkChecker confirms the configured interface is present and up. The
// address and reachability probes are soft signals only; an address may
// not be bound yet, and air-gapped installations are a legitimate target.
type NetworkChecker struct {
	recorder
	iface   string
	address string
	net     NetProber
}

// NewNetworkChecker builds the network checker.
func NewNetworkChecker(iface, address string, net NetProber, log *logger.Logger) *NetworkChecker {
	return &NetworkChecker{
		recorder: newRecorder(DomainNetwork, log),
		iface:    iface,
		address:  address,
		net:      net,
	}
}

// Domain implements Checker.
func (c *NetworkChecker) Domain() Domain {
	return DomainNetwork
}

// Check probes the interface. A missing interface short-circuits the rest.
func (c *NetworkChecker) Check(ctx context.Context) Outcome {
	outcome := newOutcome(DomainNetwork)

	exists, err := c.net.Exists(c.iface)
	switch {
	case err != nil:
		c.fail(&outcome, "interface exists", err.Error())
		return outcome
	case !exists:
		c.fail(&outcome, "interface exists", fmt.Sprintf("interface %s not found", c.iface))
		return outcome
	}
	c.pass(&outcome, "interface exists", fmt.Sprintf("interface %s present", c.iface))

	state, err := c.net.OperState(c.iface)
	switch {
	case err != nil:
		c.fail(&outcome, "link state", err.Error())
	case state == "up":
		c.pass(&outcome, "link state", fmt.Sprintf("interface %s is up", c.iface))
	default:
		c.fail(&outcome, "link state", fmt.Sprintf("interface %s is %s", c.iface, state))
	}

	bound, err := c.net.HasAddress(ctx, c.iface, c.address)
	switch {
	case err != nil:
		c.warn(&outcome, "address", fmt.Sprintf("cannot inspect addresses: %v", err))
	case bound:
		c.pass(&outcome, "address", fmt.Sprintf("%s bound to %s", c.address, c.iface))
	default:
		c.warn(&outcome, "address", fmt.Sprintf("%s not yet bound to %s", c.address, c.iface))
	}

	reachable, err := c.net.Reachable(ctx, reachabilityTarget)
	switch {
	case err != nil:
		c.warn(&outcome, "reachability", fmt.Sprintf("cannot probe reachability: %v", err))
	case reachable:
		c.pass(&outcome, "reachability", reachabilityTarget+" reachable")
	default:
		c.warn(&outcome, "reachability", "no outbound reachability to "+reachabilityTarget)
	}

	return outcome
}
