// Package pluginconfig holds the per-plugin persistent state produced by
// a transformer's loadConfig call, and the facades loadConfig is invoked
// with.
package pluginconfig

import (
	"github.com/charmbracelet/log"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/invalidation"
)

// DevDepDeclaration is one dev-dependency a config declares while
// loading, to be registered against the owning transformation's ledger.
type DevDepDeclaration struct {
	Specifier              string
	ResolveFrom            string
	InvalidateParcelPlugin bool
}

// Config is the persistent state a transformer's loadConfig call
// produces.
type Config struct {
	ID                         string
	PluginName                 string
	IsSource                   bool
	SearchPath                 string
	Env                        asset.Env
	Result                     interface{}
	ResultHash                 string
	IncludedFiles              []string
	CreateInvalidationPatterns []string
	ShouldInvalidateOnStartup  bool
	DevDeps                    []DevDepDeclaration
}

// IsEmpty reports whether c carries nothing an upstream build graph
// would ever need to invalidate on: no included files, no file-creation
// patterns, and no invalidate-on-startup flag. An empty config is
// dropped from the transformation result's config-invalidation records.
func (c Config) IsEmpty() bool {
	return len(c.IncludedFiles) == 0 && len(c.CreateInvalidationPatterns) == 0 && !c.ShouldInvalidateOnStartup
}

// LoadConfigFunc is the shape of a transformer's optional loadConfig
// capability.
type LoadConfigFunc func(cfg *Facade, options Options, logger *log.Logger) error

// Facade is the mutation surface loadConfig is given instead of a raw
// *Config: every read or write that should count as an invalidation
// source is routed through a method that also records it.
type Facade struct {
	cfg           *Config
	invalidations *invalidation.Tracker
}

// NewFacade wraps cfg with a Facade backed by tr for invalidation
// recording.
func NewFacade(cfg *Config, tr *invalidation.Tracker) *Facade {
	return &Facade{cfg: cfg, invalidations: tr}
}

// Config returns the underlying, now-populated Config.
func (f *Facade) Config() *Config {
	return f.cfg
}

// SetResult records the plugin's opaque, canonically serializable config
// state.
func (f *Facade) SetResult(v interface{}) {
	f.cfg.Result = v
}

// SetResultHash records an explicit hash the plugin computed itself,
// bypassing canonical serialization of Result entirely.
func (f *Facade) SetResultHash(hash string) {
	f.cfg.ResultHash = hash
}

// AddIncludedFile records a file this config's validity depends on, and
// reports it as a file invalidation.
func (f *Facade) AddIncludedFile(path string) {
	f.cfg.IncludedFiles = append(f.cfg.IncludedFiles, path)
	f.invalidations.AddFile(path)
}

// AddCreateInvalidation records a glob pattern whose satisfaction should
// invalidate this config.
func (f *Facade) AddCreateInvalidation(pattern string) {
	f.cfg.CreateInvalidationPatterns = append(f.cfg.CreateInvalidationPatterns, pattern)
}

// SetInvalidateOnStartup marks this config as always stale at process
// startup (e.g. it depends on environment state not expressible as a
// file or option).
func (f *Facade) SetInvalidateOnStartup() {
	f.cfg.ShouldInvalidateOnStartup = true
}

// SetIsSource overrides the config's isSource judgment.
func (f *Facade) SetIsSource(isSource bool) {
	f.cfg.IsSource = isSource
}

// AddDevDep declares a dev-dependency this config depends on. The
// pipeline loader registers these against its devdep.Ledger after
// loadConfig returns.
func (f *Facade) AddDevDep(specifier, resolveFrom string, invalidateParcelPlugin bool) {
	f.cfg.DevDeps = append(f.cfg.DevDeps, DevDepDeclaration{
		Specifier:              specifier,
		ResolveFrom:            resolveFrom,
		InvalidateParcelPlugin: invalidateParcelPlugin,
	})
}

// Options is the plugin-options facade: read-only access to global build
// options, with every access recorded as an option invalidation so a
// later change to that option re-runs whichever config read it.
type Options struct {
	global        map[string]interface{}
	invalidations *invalidation.Tracker
}

// NewOptions wraps a global options map with an Options facade backed by
// tr for invalidation recording.
func NewOptions(global map[string]interface{}, tr *invalidation.Tracker) Options {
	return Options{global: global, invalidations: tr}
}

// Get returns the value for key, recording an option invalidation.
func (o Options) Get(key string) (interface{}, bool) {
	o.invalidations.AddOption(key)
	v, ok := o.global[key]
	return v, ok
}
