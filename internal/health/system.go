package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/postflightdev/postflight/internal/logger"
)

// requiredDirs are the top-level directories a bootable installation must
// carry.
var requiredDirs = []string{
	"bin", "boot", "dev", "etc", "home", "lib", "proc",
	"root", "run", "sbin", "sys", "tmp", "usr", "var",
}

// requiredFiles are the configuration files the installer must have
// written before first boot.
var requiredFiles = []string{
	"etc/fstab",
	"etc/crypttab",
	"etc/default/grub",
}

const kernelGlob = "boot/vmlinuz-*"

var initramfsGlobs = []string{"boot/initrd.img-*", "boot/initramfs-*"}

// SystemChecker confirms the installed tree under the mount root is
// structurally complete.
type SystemChecker struct {
	recorder
	mountRoot string
}

// NewSystemChecker builds the installed-system checker for the given mount
// root.
func NewSystemChecker(mountRoot string, log *logger.Logger) *SystemChecker {
	return &SystemChecker{
		recorder:  newRecorder(DomainSystem, log),
		mountRoot: mountRoot,
	}
}

// Domain implements Checker.
func (c *SystemChecker) Domain() Domain {
	return DomainSystem
}

// Check inspects the tree. A missing mount root makes every other probe
// meaningless, so it alone is recorded in that case. Each missing
// directory and file gets its own result so the operator sees exactly
// which are absent.
func (c *SystemChecker) Check(ctx context.Context) Outcome {
	outcome := newOutcome(DomainSystem)

	info, err := os.Stat(c.mountRoot)
	if err != nil || !info.IsDir() {
		c.fail(&outcome, "mount root", fmt.Sprintf("%s is not a mounted directory", c.mountRoot))
		return outcome
	}

	for _, dir := range requiredDirs {
		path := filepath.Join(c.mountRoot, dir)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			c.pass(&outcome, "dir "+dir, path+" present")
		} else {
			c.fail(&outcome, "dir "+dir, path+" missing")
		}
	}

	if c.hasGlob(kernelGlob) {
		c.pass(&outcome, "kernel", "kernel image present under boot")
	} else {
		c.fail(&outcome, "kernel", "no kernel image matching "+kernelGlob)
	}

	if c.hasGlob(initramfsGlobs[0]) || c.hasGlob(initramfsGlobs[1]) {
		c.pass(&outcome, "initramfs", "initramfs image present under boot")
	} else {
		c.fail(&outcome, "initramfs", fmt.Sprintf("no initramfs matching %s or %s", initramfsGlobs[0], initramfsGlobs[1]))
	}

	for _, file := range requiredFiles {
		path := filepath.Join(c.mountRoot, file)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			c.pass(&outcome, "file "+file, path+" present")
		} else {
			c.fail(&outcome, "file "+file, path+" missing")
		}
	}

	return outcome
}

func (c *SystemChecker) hasGlob(pattern string) bool {
	matches, err := filepath.Glob(filepath.Join(c.mountRoot, pattern))
	return err == nil && len(matches) > 0
}
