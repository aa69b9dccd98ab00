package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/postflightdev/postflight/internal/logger"
)

const (
	smartTool    = "smartctl"
	smartPackage = "smartmontools"
)

// SMARTProber is the slice of the SMART adapter the disk checker consumes.
type SMARTProber interface {
	Health(ctx context.Context, device string) (bool, string, error)
	NVMeHealth(ctx context.Context, device string) (bool, string, error)
}

// ToolEnsurer makes a diagnostic tool available before any disk is probed.
type ToolEnsurer interface {
	EnsureTool(ctx context.Context, tool, pkg string) error
}

// DisksChecker validates physical-media health for every disk the
// installer targeted.
type DisksChecker struct {
	recorder
	disks []string
	smart SMARTProber
	tools ToolEnsurer
}

// NewDisksChecker builds the disk checker for the configured target disks.
func NewDisksChecker(disks []string, smart SMARTProber, tools ToolEnsurer, log *logger.Logger) *DisksChecker {
	return &DisksChecker{
		recorder: newRecorder(DomainDisks, log),
		disks:    disks,
		smart:    smart,
		tools:    tools,
	}
}

// Domain implements Checker.
func (c *DisksChecker) Domain() Domain {
	return DomainDisks
}

// Check probes every configured disk. An empty disk list passes vacuously;
// the configuration source is trusted to have enumerated all targets.
func (c *DisksChecker) Check(ctx context.Context) Outcome {
	outcome := newOutcome(DomainDisks)

	if len(c.disks) == 0 {
		c.log.Debug("no target disks configured")
		return outcome
	}

	if err := c.tools.EnsureTool(ctx, smartTool, smartPackage); err != nil {
		c.fail(&outcome, "smart tool", fmt.Sprintf("diagnostic tool unavailable: %v", err))
		return outcome
	}

	for _, disk := range c.disks {
		passed, detail, err := c.probeDisk(ctx, disk)
		label := "smart " + disk
		switch {
		case err != nil:
			c.fail(&outcome, label, err.Error())
		case passed:
			c.pass(&outcome, label, detail)
		default:
			c.fail(&outcome, label, detail)
		}
	}

	return outcome
}

func (c *DisksChecker) probeDisk(ctx context.Context, disk string) (bool, string, error) {
	if isNVMe(disk) {
		return c.smart.NVMeHealth(ctx, disk)
	}
	return c.smart.Health(ctx, disk)
}

// isNVMe applies the provisioning naming convention: NVMe namespaces carry
// nvme in their device name.
func isNVMe(device string) bool {
	return strings.Contains(device, "nvme")
}
