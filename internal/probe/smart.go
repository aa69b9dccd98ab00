package probe

import (
	"context"
	"strings"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

// Markers smartctl prints in front of the overall verdict. ATA devices use
// the self-assessment wording, SCSI and some NVMe versions the short form.
var healthLineMarkers = []string{
	"overall-health self-assessment test result:",
	"SMART Health Status:",
}

// SMART wraps smartctl health queries against a single device.
type SMART struct {
	runner CommandRunner
}

// NewSMART returns a SMART adapter using the given runner.
func NewSMART(runner CommandRunner) *SMART {
	return &SMART{runner: runner}
}

// Health runs the general SATA/SAS health query. The device passes when the
// overall health line carries the PASSED verdict.
func (s *SMART) Health(ctx context.Context, device string) (bool, string, error) {
	return s.health(ctx, []string{"-H", device}, "PASSED")
}

// NVMeHealth runs the NVMe-specific health query. Depending on the smartctl
// version the verdict reads PASSED or OK; both are accepted.
func (s *SMART) NVMeHealth(ctx context.Context, device string) (bool, string, error) {
	return s.health(ctx, []string{"-d", "nvme", "-H", device}, "PASSED", "OK")
}

func (s *SMART) health(ctx context.Context, args []string, accepted ...string) (bool, string, error) {
	out, err := s.runner.Run(ctx, "smartctl", args...)
	if err != nil && !ExitedNonZero(err) {
		return false, "", postflighterrors.NewProbeError("smartctl", err)
	}

	// smartctl exits non-zero for a failing verdict too, so the exit code
	// is not consulted; the health line is authoritative.
	verdict, line := healthVerdict(out.Stdout)
	for _, token := range accepted {
		if verdict == token {
			return true, line, nil
		}
	}

	if line == "" {
		line = out.Primary()
	}
	return false, line, nil
}

func healthVerdict(stdout string) (verdict, line string) {
	for _, ln := range strings.Split(stdout, "\n") {
		for _, marker := range healthLineMarkers {
			if idx := strings.Index(ln, marker); idx >= 0 {
				return strings.TrimSpace(ln[idx+len(marker):]), strings.TrimSpace(ln)
			}
		}
	}
	return "", ""
}
