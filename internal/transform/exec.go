package transform

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/pipeline"
	"github.com/glitchwizard/tcore/internal/plugin"
)

// runPipeline executes one resolved pipeline against initial.
// An empty pipeline passes initial through unchanged. Otherwise
// each transformer runs in order; an input asset whose type has already
// diverged from initial's and for which a valid chained pipeline exists
// is set aside ("final") rather than fed to the remaining transformer —
// chaining itself is performed one level up, by runContext.runPipelines.
func runPipeline(rc *runContext, pl *pipeline.Pipeline, initial *asset.UncommittedAsset) ([]asset.RawResult, error) {
	if len(pl.Entries) == 0 {
		return []asset.RawResult{toRawResult(initial)}, nil
	}

	absPath := filepath.Join(rc.t.deps.ProjectRoot, initial.Value.FilePath)
	resolve := plugin.WrapResolve(rc.t.deps.PackageManager, rc.t.deps.ProjectRoot, rc.tr)

	initialType := initial.Value.Type
	inputAssets := []*asset.UncommittedAsset{initial}
	var finals []*asset.UncommittedAsset

	for _, entry := range pl.Entries {
		var nextInputs []*asset.UncommittedAsset

		for _, a := range inputAssets {
			if a.Value.Type != initialType {
				_, ok, err := pipeline.NextPipeline(
					rc.t.deps.Provider, pl.ID, initial.Value.FilePath, a.Value.Type,
					a.IsSource, absPath, rc.t.deps.ProjectRoot, rc.env, rc.t.deps.GlobalOptions, rc.tr, rc.ledger,
				)
				if err != nil {
					return nil, err
				}
				if ok {
					finals = append(finals, a)
					continue
				}
			}

			outputs, nextGenerate, err := plugin.Run(entry.Transformer, a, entry.Config, resolve, pl.Generate, absPath, rc.t.logger)
			if err != nil {
				return nil, err
			}
			pl.SetGenerate(nextGenerate)

			for _, out := range outputs {
				child, err := toChildAsset(rc, a, out, pl.ID)
				if err != nil {
					return nil, err
				}
				nextInputs = append(nextInputs, child)
			}
		}

		inputAssets = nextInputs
		if len(inputAssets) == 0 {
			break
		}
	}

	resulting := append(finals, inputAssets...)
	if err := generate(rc, pl, resulting); err != nil {
		return nil, err
	}

	out := make([]asset.RawResult, len(resulting))
	for i, a := range resulting {
		out[i] = toRawResult(a)
	}
	return out, nil
}

// toChildAsset normalizes one transformer output (raw or a live facade)
// and wraps it as the UncommittedAsset fed to the next transformer call.
func toChildAsset(rc *runContext, parent *asset.UncommittedAsset, out asset.Output, pipelineID string) (*asset.UncommittedAsset, error) {
	raw, err := asset.Normalize(out, rc.t.deps.ProjectRoot)
	if err != nil {
		return nil, err
	}

	value := valueFromRaw(raw, pipelineID)
	if value.FilePath == "" {
		value.FilePath = parent.Value.FilePath
	}
	if value.UniqueKey == "" {
		value.UniqueKey = uuid.NewString()
	}
	if raw.Env == nil {
		value.Env = parent.Value.Env
	}
	value.SideEffects = parent.Value.SideEffects

	return asset.NewChild(parent, value, raw.AST, raw.Content, raw.Map), nil
}

// generate runs pl's current generate closure, concurrently, on every
// resulting asset whose AST is still dirty — except the two exceptions
// that defer generation to a later packaging stage: a JS asset in a
// scope-hoisting target, and a CSS asset in production mode carrying a
// symbol table.
func generate(rc *runContext, pl *pipeline.Pipeline, assets []*asset.UncommittedAsset) error {
	if pl.Generate == nil {
		return nil
	}

	var g errgroup.Group
	for _, a := range assets {
		a := a
		if a.AST == nil || !a.AST.IsDirty || skipsGeneration(a) {
			continue
		}
		g.Go(func() error {
			content, sourceMap, err := pl.Generate(a)
			if err != nil {
				return err
			}
			a.Content = content
			a.Map = sourceMap
			a.ClearAST()
			return nil
		})
	}
	return g.Wait()
}

func skipsGeneration(a *asset.UncommittedAsset) bool {
	if a.Value.Type == "js" && a.Value.Env.ScopeHoisting {
		return true
	}
	if a.Value.Type == "css" && a.Value.Env.Mode == "production" && len(a.Value.Symbols) > 0 {
		return true
	}
	return false
}

func toRawResult(a *asset.UncommittedAsset) asset.RawResult {
	return asset.RawResult{
		Content:      a.Content,
		Map:          a.Map,
		AST:          a.AST,
		Type:         a.Value.Type,
		FilePath:     a.Value.FilePath,
		Env:          &a.Value.Env,
		Pipeline:     a.Value.Pipeline,
		Symbols:      a.Value.Symbols,
		UniqueKey:    a.Value.UniqueKey,
		Query:        a.Value.Query,
		Dependencies: a.Value.Dependencies,
	}
}

// contentHash is the sha256 hex digest used wherever a produced asset
// needs a fresh content hash (e.g. when recording a chained asset's
// Value outside of asset.Load's own hashing).
func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
