package health

import (
	"strings"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// Domain identifies one category of subsystem health.
type Domain string

const (
	DomainDisks   Domain = "disks"
	DomainLUKS    Domain = "luks"
	DomainZFS     Domain = "zfs"
	DomainSystem  Domain = "system"
	DomainNetwork Domain = "network"
	// DomainAll requests every concrete domain in checking order.
	DomainAll Domain = "all"
)

// CheckOrder lists the concrete domains in the fixed order they run. The
// order follows the provisioning sequence, so operators read failures in
// the same progression the installer worked through.
var CheckOrder = []Domain{DomainDisks, DomainLUKS, DomainZFS, DomainSystem, DomainNetwork}

// ParseDomain maps a user-supplied component name onto a Domain.
func ParseDomain(name string) (Domain, error) {
	switch d := Domain(strings.ToLower(strings.TrimSpace(name))); d {
	case DomainDisks, DomainLUKS, DomainZFS, DomainSystem, DomainNetwork, DomainAll:
		return d, nil
	default:
		return "", postflighterrors.NewUnknownDomainError(name)
	}
}

// Title returns the operator-facing name of the domain.
func (d Domain) Title() string {
	switch d {
	case DomainDisks:
		return "disk health"
	case DomainLUKS:
		return "LUKS encryption"
	case DomainZFS:
		return "ZFS pool"
	case DomainSystem:
		return "installed system"
	case DomainNetwork:
		return "network"
	case DomainAll:
		return "all domains"
	}
	return string(d)
}
