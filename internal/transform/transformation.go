package transform

import (
	"path/filepath"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/devdep"
	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/pipeline"
	"github.com/glitchwizard/tcore/internal/reporter"
)

// sourceMapExtensions names the asset types whose generated output is
// typically paired with an on-disk source map worth attempting to load.
var sourceMapExtensions = map[string]bool{
	"js":  true,
	"mjs": true,
	"cjs": true,
	"css": true,
}

// Run drives one transformation end to end: it loads the initial asset,
// resolves and runs its pipeline (recursively chaining into further
// pipelines as output assets' types change), and assembles the final
// Result.
//
// A failure in a transformer's loadConfig, parse or transform step, or in
// the generate call made before a later transformer runs, propagates as a
// *tcerrors.Diagnostic annotated with a plugin name and the absolute source
// path. An error from the generate step that runs after the last
// transformer is returned as the transformer's own error, without that
// annotation.
func (t *Transformation) Run(req Request) (*Result, error) {
	absPath := filepath.Join(t.deps.ProjectRoot, req.FilePath)
	t.deps.Reporter.Report(reporter.BuildProgress(absPath))

	tr := invalidation.NewTracker()
	ledger := devdep.NewLedger(t.deps.PackageManager, req.KnownDevDepHashes)

	initial, err := asset.Load(req.FilePath, req.Code, req.IsSourceOverride, t.deps.ReadFile, tr, ledger)
	if err != nil {
		return nil, err
	}
	if req.SideEffects != nil {
		initial.Value.SideEffects = *req.SideEffects
	}
	initial.Value.Query = req.Query
	initial.Value.Env = req.Env

	t.loadSourceMap(initial)

	for _, dep := range req.InvalidatedDevDeps {
		key := devdep.Key(dep.Specifier, dep.ResolveFrom)
		if t.deps.BuildScope.MarkInvalidated(key) {
			t.deps.PackageManager.Invalidate(dep.Specifier, dep.ResolveFrom)
		}
	}

	pl, err := pipeline.Load(t.deps.Provider, req.FilePath, req.Pipeline, initial.IsSource, absPath, t.deps.ProjectRoot, req.Env, t.deps.GlobalOptions, tr, ledger)
	if err != nil {
		return nil, err
	}

	rc := &runContext{
		t:                 t,
		tr:                tr,
		ledger:            ledger,
		env:               req.Env,
		knownDevDepHashes: req.KnownDevDepHashes,
		invalidateReason:  req.InvalidateReason,
		hasInlineCode:     req.Code != nil,
	}

	assets, err := rc.runPipelines(pl, initial)
	if err != nil {
		return nil, err
	}

	return &Result{
		Assets:              assets,
		ConfigRequests:      rc.configRequests,
		FileInvalidations:   tr.FileInvalidations(),
		OptionInvalidations: tr.OptionInvalidations(),
		CreateInvalidations: tr.CreateInvalidations(),
		DevDepRequests:      t.stripDevDeps(ledger),
	}, nil
}

// loadSourceMap attempts to read a.FilePath+".map" for asset types that
// conventionally carry one, swallowing any failure: a missing or
// unreadable source map is logged verbosely, never fatal.
func (t *Transformation) loadSourceMap(a *asset.UncommittedAsset) {
	if !sourceMapExtensions[a.Value.Type] {
		return
	}
	content, err := t.deps.ReadFile(a.Value.FilePath + ".map")
	if err != nil {
		t.logger.Debug("no source map loaded", "path", a.Value.FilePath, "error", err)
		return
	}
	a.Map = content
}

// stripDevDeps implements the pipeline-hash-cache short-circuit: a
// dev-dep whose hash already matches what was last sent for its
// specifier this build is reported stripped (specifier, resolveFrom,
// hash only); otherwise the full record is sent and the cache updated.
func (t *Transformation) stripDevDeps(ledger *devdep.Ledger) []devdep.Record {
	records := ledger.Records()
	out := make([]devdep.Record, len(records))
	for i, r := range records {
		if cached, ok := t.deps.BuildScope.PluginHash(r.Specifier); ok && cached == r.Hash {
			out[i] = devdep.Record{Specifier: r.Specifier, ResolveFrom: r.ResolveFrom, Hash: r.Hash}
			continue
		}
		t.deps.BuildScope.SetPluginHash(r.Specifier, r.Hash)
		out[i] = r
	}
	return out
}
