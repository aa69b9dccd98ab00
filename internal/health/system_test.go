package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildSystemTree lays out a complete installed tree under a temp root.
func buildSystemTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	for _, dir := range requiredDirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "etc/default"), 0o755))

	for _, file := range []string{
		"etc/fstab",
		"etc/crypttab",
		"etc/default/grub",
		"boot/vmlinuz-6.8.0-45-generic",
		"boot/initrd.img-6.8.0-45-generic",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, file), []byte("x\n"), 0o644))
	}
	return root
}

func subCheck(t *testing.T, outcome Outcome, label string) SubCheck {
	t.Helper()
	for _, sc := range outcome.SubChecks {
		if sc.Label == label {
			return sc
		}
	}
	t.Fatalf("no sub-check labelled %q", label)
	return SubCheck{}
}

func TestSystemCheckerCompleteTree(t *testing.T) {
	t.Parallel()

	root := buildSystemTree(t)
	checker := NewSystemChecker(root, nil)

	outcome := checker.Check(context.Background())

	require.True(t, outcome.Passed)
	require.Len(t, outcome.SubChecks, len(requiredDirs)+len(requiredFiles)+2)
}

func TestSystemCheckerMissingMountRoot(t *testing.T) {
	t.Parallel()

	checker := NewSystemChecker(filepath.Join(t.TempDir(), "never-mounted"), nil)

	outcome := checker.Check(context.Background())

	require.False(t, outcome.Passed)
	require.Len(t, outcome.SubChecks, 1)
	require.Equal(t, "mount root", outcome.SubChecks[0].Label)
}

func TestSystemCheckerMountRootIsFile(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "mnt")
	require.NoError(t, os.WriteFile(root, []byte("not a dir"), 0o644))
	checker := NewSystemChecker(root, nil)

	outcome := checker.Check(context.Background())

	require.False(t, outcome.Passed)
	require.Len(t, outcome.SubChecks, 1)
}

func TestSystemCheckerReportsEachMissingEntry(t *testing.T) {
	t.Parallel()

	root := buildSystemTree(t)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "home")))
	require.NoError(t, os.RemoveAll(filepath.Join(root, "var")))
	require.NoError(t, os.Remove(filepath.Join(root, "etc/crypttab")))
	checker := NewSystemChecker(root, nil)

	outcome := checker.Check(context.Background())

	require.False(t, outcome.Passed)
	require.Len(t, outcome.SubChecks, len(requiredDirs)+len(requiredFiles)+2)
	require.False(t, subCheck(t, outcome, "dir home").Passed)
	require.False(t, subCheck(t, outcome, "dir var").Passed)
	require.False(t, subCheck(t, outcome, "file etc/crypttab").Passed)
	require.True(t, subCheck(t, outcome, "dir etc").Passed)
	require.True(t, subCheck(t, outcome, "file etc/fstab").Passed)
}

func TestSystemCheckerMissingKernel(t *testing.T) {
	t.Parallel()

	root := buildSystemTree(t)
	require.NoError(t, os.Remove(filepath.Join(root, "boot/vmlinuz-6.8.0-45-generic")))
	checker := NewSystemChecker(root, nil)

	outcome := checker.Check(context.Background())

	require.False(t, outcome.Passed)
	require.False(t, subCheck(t, outcome, "kernel").Passed)
	require.True(t, subCheck(t, outcome, "initramfs").Passed)
}

func TestSystemCheckerAcceptsAlternateInitramfsName(t *testing.T) {
	t.Parallel()

	root := buildSystemTree(t)
	require.NoError(t, os.Remove(filepath.Join(root, "boot/initrd.img-6.8.0-45-generic")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "boot/initramfs-6.8.0-45-generic.img"), []byte("x\n"), 0o644))
	checker := NewSystemChecker(root, nil)

	outcome := checker.Check(context.Background())

	require.True(t, outcome.Passed)
	require.True(t, subCheck(t, outcome, "initramfs").Passed)
}

func TestSystemCheckerRejectsDirectoryAsFile(t *testing.T) {
	t.Parallel()

	root := buildSystemTree(t)
	require.NoError(t, os.Remove(filepath.Join(root, "etc/fstab")))
	require.NoError(t, os.Mkdir(filepath.Join(root, "etc/fstab"), 0o755))
	checker := NewSystemChecker(root, nil)

	outcome := checker.Check(context.Background())

	require.False(t, outcome.Passed)
	require.False(t, subCheck(t, outcome, "file etc/fstab").Passed)
}
