package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "tcore", root.Use)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("cache-dir"))
	assert.NotNil(t, root.PersistentFlags().Lookup("no-cache"))

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["version"])
	assert.True(t, names["transform"])
}

func TestInitializeGlobalsLoadsDefaultConfig(t *testing.T) {
	tmpHome, err := os.MkdirTemp("", "tcore-root-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpHome)

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	defer os.Setenv("HOME", origHome)
	os.Unsetenv("TCORE_CONFIG")
	os.Unsetenv("TCORE_CACHE_DIR")

	configFlag = ""
	cacheDirFlag = ""
	noCacheFlag = false
	verboseFlag = false
	defer func() { resolvedConfig = nil }()

	root := NewRootCmd()
	require.NoError(t, root.PersistentFlags().Set("config", ""))

	require.NoError(t, initializeGlobals(root))
	require.NotNil(t, GetConfig())
	assert.Equal(t, ".", GetConfig().ProjectRoot)
	assert.Contains(t, GetConfig().CacheDir, filepath.Join(tmpHome, ".tcore"))
}
