package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	postflighterrors "github.com/postflightdev/postflight/pkg/errors"
)

const sataPassedOutput = `smartctl 7.4 2023-08-01 r5530 [x86_64-linux-6.8.0] (local build)
=== START OF READ SMART DATA SECTION ===
SMART overall-health self-assessment test result: PASSED`

const sataFailedOutput = `smartctl 7.4 2023-08-01 r5530 [x86_64-linux-6.8.0] (local build)
=== START OF READ SMART DATA SECTION ===
SMART overall-health self-assessment test result: FAILED!
Drive failure expected in less than 24 hours.`

const nvmeOKOutput = `smartctl 7.4 2023-08-01 r5530 [x86_64-linux-6.8.0] (local build)
=== START OF SMART DATA SECTION ===
SMART Health Status: OK`

func TestSMARTHealthPassed(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	runner.script("smartctl -H /dev/sda", Output{Stdout: sataPassedOutput}, nil)

	passed, detail, err := NewSMART(runner).Health(context.Background(), "/dev/sda")
	require.NoError(t, err)
	require.True(t, passed)
	require.Contains(t, detail, "PASSED")
}

func TestSMARTHealthFailedVerdict(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	runner.script("smartctl -H /dev/sdb", Output{Stdout: sataFailedOutput}, exitFailure(t))

	passed, detail, err := NewSMART(runner).Health(context.Background(), "/dev/sdb")
	require.NoError(t, err)
	require.False(t, passed)
	require.Contains(t, detail, "FAILED!")
}

func TestSMARTNVMeHealthAcceptsOK(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	runner.script("smartctl -d nvme -H /dev/nvme0n1", Output{Stdout: nvmeOKOutput}, nil)

	passed, detail, err := NewSMART(runner).NVMeHealth(context.Background(), "/dev/nvme0n1")
	require.NoError(t, err)
	require.True(t, passed)
	require.Contains(t, detail, "OK")
}

func TestSMARTHealthToolFailure(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	runner.script("smartctl -H /dev/sda", Output{}, errors.New("fork failed"))

	_, _, err := NewSMART(runner).Health(context.Background(), "/dev/sda")
	require.Error(t, err)

	var probeErr *postflighterrors.ProbeError
	require.ErrorAs(t, err, &probeErr)
	require.Equal(t, "smartctl", probeErr.Probe)
}

func TestSMARTHealthNoVerdictLine(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	runner.script("smartctl -H /dev/sdc", Output{Stderr: "Smartctl open device: /dev/sdc failed: No such device"}, exitFailure(t))

	passed, detail, err := NewSMART(runner).Health(context.Background(), "/dev/sdc")
	require.NoError(t, err)
	require.False(t, passed)
	require.Contains(t, detail, "No such device")
}
