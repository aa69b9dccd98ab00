package health

import (
	"context"
	"fmt"

	"github.com/postflightdev/postflight/internal/logger"
)

// CryptProber is the slice of the cryptsetup adapter the LUKS checker
// consumes.
type CryptProber interface {
	IsLUKS(ctx context.Context, device string) (bool, error)
	DumpReadable(ctx context.Context, device string) (bool, error)
	MappingActive(ctx context.Context, name string) (bool, error)
}

// LUKSChecker confirms the encrypted volume's header is well-formed, its
// metadata is readable, and, when a mapped name is configured, that the
// unlocked mapping is active.
type LUKSChecker struct {
	recorder
	device     string
	mappedName string
	crypt      CryptProber
}

// NewLUKSChecker builds the encryption checker. mappedName may be empty
// when the volume has not been unlocked at this stage of provisioning.
func NewLUKSChecker(device, mappedName string, crypt CryptProber, log *logger.Logger) *LUKSChecker {
	return &LUKSChecker{
		recorder:   newRecorder(DomainLUKS, log),
		device:     device,
		mappedName: mappedName,
		crypt:      crypt,
	}
}

// Domain implements Checker.
func (c *LUKSChecker) Domain() Domain {
	return DomainLUKS
}

// Check runs the three container probes independently; no failure stops
// the others.
func (c *LUKSChecker) Check(ctx context.Context) Outcome {
	outcome := newOutcome(DomainLUKS)

	ok, err := c.crypt.IsLUKS(ctx, c.device)
	switch {
	case err != nil:
		c.fail(&outcome, "luks header", err.Error())
	case ok:
		c.pass(&outcome, "luks header", fmt.Sprintf("%s carries a valid LUKS header", c.device))
	default:
		c.fail(&outcome, "luks header", fmt.Sprintf("%s does not carry a LUKS header", c.device))
	}

	ok, err = c.crypt.DumpReadable(ctx, c.device)
	switch {
	case err != nil:
		c.fail(&outcome, "luks metadata", err.Error())
	case ok:
		c.pass(&outcome, "luks metadata", fmt.Sprintf("metadata dump of %s is readable", c.device))
	default:
		c.fail(&outcome, "luks metadata", fmt.Sprintf("metadata dump of %s is empty or unreadable", c.device))
	}

	if c.mappedName == "" {
		c.log.Debug("no mapped name configured, skipping mapping check")
		return outcome
	}

	ok, err = c.crypt.MappingActive(ctx, c.mappedName)
	switch {
	case err != nil:
		c.fail(&outcome, "luks mapping", err.Error())
	case ok:
		c.pass(&outcome, "luks mapping", fmt.Sprintf("mapping %s is active", c.mappedName))
	default:
		c.fail(&outcome, "luks mapping", fmt.Sprintf("mapping %s is not active", c.mappedName))
	}

	return outcome
}
