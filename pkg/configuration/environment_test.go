package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv_LoadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env.local"), []byte("FLEET_SDK_TEST_ENV_LOAD=ok\n"), 0o644))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	_ = os.Unsetenv("FLEET_SDK_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("FLEET_SDK_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestImportOptions_Validate(t *testing.T) {
	opts := ImportOptions{BatchWidth: 10, MaxRows: 500}
	require.NoError(t, opts.Validate())

	opts = ImportOptions{BatchWidth: 0, MaxRows: 500}
	require.Error(t, opts.Validate())

	opts = ImportOptions{BatchWidth: 101, MaxRows: 500}
	require.Error(t, opts.Validate())

	opts = ImportOptions{BatchWidth: 10, MaxRows: 0}
	require.Error(t, opts.Validate())
}
