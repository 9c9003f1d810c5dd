package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitchwizard/tcore/internal/config"
)

func TestNewTransformCmd(t *testing.T) {
	c := NewTransformCmd()

	assert.Equal(t, "transform <path>", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.NotNil(t, c.Flags().Lookup("pipeline"))
	assert.NotNil(t, c.Flags().Lookup("format"))
}

func TestPassthroughProviderResolvesOneTransformer(t *testing.T) {
	provider := newPassthroughProvider()

	resolved, err := provider.TransformersFor("src/index.ts", "", true)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "passthrough", resolved[0].Name)
	assert.NotNil(t, resolved[0].Transformer.Transform)
}

func TestRunTransformProducesPassthroughOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.ts"), []byte("const x = 1;"), 0o644))

	resolvedConfig = &config.Config{ProjectRoot: dir, CacheDir: filepath.Join(dir, "cache")}
	defer func() { resolvedConfig = nil }()

	origWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(origWD)

	c := NewTransformCmd()
	c.SetArgs([]string{"index.ts"})
	require.NoError(t, c.Execute())
}
