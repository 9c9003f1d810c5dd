package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidateRejectsEmptyProjectRoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProjectRoot = "  "

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projectRoot")
}

func TestValidateRejectsEmptyCacheDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheDir = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cacheDir")
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "trace"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logLevel")
}

func TestValidateCollectsMultipleErrors(t *testing.T) {
	cfg := &Config{ProjectRoot: "", CacheDir: "", LogLevel: "bogus"}

	err := Validate(cfg)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}
