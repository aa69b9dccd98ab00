package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeNet struct {
	exists    bool
	existsErr error
	state     string
	stateErr  error
	bound     bool
	boundErr  error
	reachable bool
	reachErr  error

	probes []string
}

func (f *fakeNet) Exists(string) (bool, error) {
	f.probes = append(f.probes, "exists")
	return f.exists, f.existsErr
}

func (f *fakeNet) OperState(string) (string, error) {
	f.probes = append(f.probes, "operstate")
	return f.state, f.stateErr
}

func (f *fakeNet) HasAddress(_ context.Context, _, _ string) (bool, error) {
	f.probes = append(f.probes, "address")
	return f.bound, f.boundErr
}

func (f *fakeNet) Reachable(_ context.Context, _ string) (bool, error) {
	f.probes = append(f.probes, "ping")
	return f.reachable, f.reachErr
}

func TestNetworkCheckerWarningsNeverFailTheDomain(t *testing.T) {
	t.Parallel()

	net := &fakeNet{exists: true, state: "up", bound: false, reachable: false}
	checker := NewNetworkChecker("eth0", "10.0.0.5", net, nil)

	outcome := checker.Check(context.Background())

	require.True(t, outcome.Passed, "unbound address and failed ping are soft signals")
	require.Len(t, outcome.SubChecks, 4)
	require.Len(t, outcome.Warnings(), 2)
	require.Empty(t, outcome.Failures())
}

func TestNetworkCheckerMissingInterfaceShortCircuits(t *testing.T) {
	t.Parallel()

	net := &fakeNet{exists: false}
	checker := NewNetworkChecker("eth7", "10.0.0.5", net, nil)

	outcome := checker.Check(context.Background())

	require.False(t, outcome.Passed)
	require.Len(t, outcome.SubChecks, 1)
	require.Equal(t, "interface exists", outcome.SubChecks[0].Label)
	require.Equal(t, []string{"exists"}, net.probes)
}

func TestNetworkCheckerLinkDownIsError(t *testing.T) {
	t.Parallel()

	net := &fakeNet{exists: true, state: "down", bound: true, reachable: true}
	checker := NewNetworkChecker("eth0", "10.0.0.5", net, nil)

	outcome := checker.Check(context.Background())

	require.False(t, outcome.Passed)
	require.Len(t, outcome.SubChecks, 4, "remaining probes still run on a down link")
	require.Equal(t, []string{"exists", "operstate", "address", "ping"}, net.probes)
	require.False(t, subCheck(t, outcome, "link state").Passed)
	require.Contains(t, subCheck(t, outcome, "link state").Message, "down")
}

func TestNetworkCheckerAllProbesHealthy(t *testing.T) {
	t.Parallel()

	net := &fakeNet{exists: true, state: "up", bound: true, reachable: true}
	checker := NewNetworkChecker("enp3s0", "192.168.1.10", net, nil)

	outcome := checker.Check(context.Background())

	require.True(t, outcome.Passed)
	require.Len(t, outcome.SubChecks, 4)
	require.Empty(t, outcome.Warnings())
}

func TestNetworkCheckerSoftProbeErrorsAreWarnings(t *testing.T) {
	t.Parallel()

	net := &fakeNet{
		exists:   true,
		state:    "up",
		boundErr: errors.New("probe ip failed: fork failed"),
		reachErr: errors.New("probe ping failed: fork failed"),
	}
	checker := NewNetworkChecker("eth0", "10.0.0.5", net, nil)

	outcome := checker.Check(context.Background())

	require.True(t, outcome.Passed)
	require.Len(t, outcome.Warnings(), 2)
}

func TestNetworkCheckerStateProbeErrorIsFailure(t *testing.T) {
	t.Parallel()

	net := &fakeNet{exists: true, stateErr: errors.New("operstate unreadable"), bound: true, reachable: true}
	checker := NewNetworkChecker("eth0", "10.0.0.5", net, nil)

	outcome := checker.Check(context.Background())

	require.False(t, outcome.Passed)
	require.False(t, subCheck(t, outcome, "link state").Passed)
}
