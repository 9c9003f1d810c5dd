package pluginconfig

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/invalidation"
)

func TestLoadPopulatesConfig(t *testing.T) {
	tr := invalidation.NewTracker()

	loadConfig := func(f *Facade, options Options, logger *log.Logger) error {
		f.AddIncludedFile("tsconfig.json")
		f.SetResultHash("deadbeef")
		return nil
	}

	cfg, err := Load(loadConfig, "typescript-transformer", "/proj", "/proj/src/a.ts", true, asset.Env{}, nil, tr)
	require.NoError(t, err)
	assert.Equal(t, "typescript-transformer:/proj", cfg.ID)
	assert.Equal(t, "deadbeef", cfg.ResultHash)
	assert.Equal(t, []string{"tsconfig.json"}, cfg.IncludedFiles)
}

func TestLoadWrapsErrorAsPluginDiagnostic(t *testing.T) {
	boom := errors.New("malformed config")
	loadConfig := func(f *Facade, options Options, logger *log.Logger) error {
		return boom
	}

	_, err := Load(loadConfig, "babel", "/proj", "/proj/src/a.ts", true, asset.Env{}, nil, invalidation.NewTracker())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "babel")
	assert.ErrorIs(t, err, boom)
}

func TestLoadRecoversPanic(t *testing.T) {
	loadConfig := func(f *Facade, options Options, logger *log.Logger) error {
		panic("config blew up")
	}

	_, err := Load(loadConfig, "babel", "/proj", "/proj/src/a.ts", true, asset.Env{}, nil, invalidation.NewTracker())
	require.Error(t, err)
}
