package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesMissingDirectories(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "state", "pdstore", "session.db")

	got, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	fi, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	_, err = os.Stat(target)
	require.True(t, os.IsNotExist(err), "the file itself is not created")
}

func TestEnsureParentDir_RelativeIsMadeAbsolute(t *testing.T) {
	tmp := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(old) })

	got, err := EnsureParentDir("session.db")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(wd, "session.db"), got)
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "s.db")

	_, err := EnsureParentDir(target)
	require.NoError(t, err)
	_, err = EnsureParentDir(target)
	require.NoError(t, err)
}

func TestEnsureParentDir_FailsIfParentIsAFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "s.db"))
	require.Error(t, err, "should fail when a file sits where the directory should be")
}
