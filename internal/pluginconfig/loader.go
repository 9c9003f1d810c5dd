package pluginconfig

import (
	"github.com/charmbracelet/log"

	"github.com/glitchwizard/tcore/internal/asset"
	tcerrors "github.com/glitchwizard/tcore/internal/errors"
	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/output"
)

// Load builds an empty Config for pluginName, invokes loadConfig against
// it via a Facade, and returns the populated Config. Any panic-turned-error
// from loadConfig is wrapped into a plugin diagnostic annotated with
// pluginName and filePath.
func Load(
	loadConfig LoadConfigFunc,
	pluginName, searchPath, filePath string,
	isSource bool,
	env asset.Env,
	globalOptions map[string]interface{},
	tr *invalidation.Tracker,
) (*Config, error) {
	cfg := &Config{
		ID:         pluginName + ":" + searchPath,
		PluginName: pluginName,
		IsSource:   isSource,
		SearchPath: searchPath,
		Env:        env,
	}

	facade := NewFacade(cfg, tr)
	options := NewOptions(globalOptions, tr)
	logger := output.ScopedLogger(pluginName)

	if err := invoke(loadConfig, facade, options, logger); err != nil {
		return nil, tcerrors.NewPluginDiagnostic(pluginName, filePath, "loadConfig", err)
	}

	return cfg, nil
}

// invoke calls loadConfig, converting a panic into an error so a single
// misbehaving plugin cannot crash the worker.
func invoke(loadConfig LoadConfigFunc, facade *Facade, options Options, logger *log.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = tcerrors.Wrap(tcerrors.ErrProgrammer, formatPanic(r))
		}
	}()
	return loadConfig(facade, options, logger)
}

func formatPanic(r interface{}) string {
	if e, ok := r.(error); ok {
		return "loadConfig panicked: " + e.Error()
	}
	return "loadConfig panicked"
}
