package pipeline

import (
	"path/filepath"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/devdep"
	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/plugin"
	"github.com/glitchwizard/tcore/internal/pluginconfig"
)

// Resolved is one transformer a Provider selects for a given path.
type Resolved struct {
	Name          string
	ResolveFrom   string
	Transformer   plugin.Transformer
	ConfigKeyPath string
}

// Provider is the external collaborator that knows which transformers
// apply to a given (path, pipelineName, isSource) combination — the
// configuration loader named as an out-of-scope collaborator.
type Provider interface {
	TransformersFor(path, pipelineName string, isSource bool) ([]Resolved, error)
}

// Load resolves the ordered transformer list for path and invokes each
// transformer's loadConfig, registering the result under the
// transformer's name. When ledger is non-nil, every transformer package
// itself and every dev-dep its config declares are registered against
// it, per the accounting rule in internal/devdep.
func Load(
	provider Provider,
	path, pipelineName string,
	isSource bool,
	filePath, projectRoot string,
	env asset.Env,
	globalOptions map[string]interface{},
	tr *invalidation.Tracker,
	ledger *devdep.Ledger,
) (*Pipeline, error) {
	resolved, err := provider.TransformersFor(path, pipelineName, isSource)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(resolved))
	names := make([]string, 0, len(resolved))

	for _, r := range resolved {
		var cfg *pluginconfig.Config
		if r.Transformer.LoadConfig != nil {
			cfg, err = pluginconfig.Load(r.Transformer.LoadConfig, r.Name, r.ResolveFrom, filePath, isSource, env, globalOptions, tr)
			if err != nil {
				return nil, err
			}
		}

		if ledger != nil {
			if err := registerTransformer(ledger, r, cfg, projectRoot); err != nil {
				return nil, err
			}
		}

		entries = append(entries, Entry{
			Name:          r.Name,
			ResolveFrom:   r.ResolveFrom,
			Transformer:   r.Transformer,
			Config:        cfg,
			ConfigKeyPath: r.ConfigKeyPath,
		})
		names = append(names, r.Name)
	}

	return &Pipeline{ID: BuildID(names), Entries: entries}, nil
}

func registerTransformer(ledger *devdep.Ledger, r Resolved, cfg *pluginconfig.Config, projectRoot string) error {
	if err := ledger.Add(r.Name, r.ResolveFrom, filepath.Join(projectRoot, r.ResolveFrom), false, r.Name); err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}
	for _, dep := range cfg.DevDeps {
		abs := filepath.Join(projectRoot, dep.ResolveFrom)
		if err := ledger.Add(dep.Specifier, dep.ResolveFrom, abs, dep.InvalidateParcelPlugin, r.Name); err != nil {
			return err
		}
	}
	return nil
}
