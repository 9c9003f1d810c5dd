package transform

import (
	"encoding/json"
	"path/filepath"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/cachekey"
	"github.com/glitchwizard/tcore/internal/devdep"
	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/pipeline"
	"github.com/glitchwizard/tcore/internal/pluginconfig"
)

// runContext carries everything shared across one Transformation's
// recursive chain of runPipelines calls: the accumulated invalidation
// tracker and dev-dep ledger (both span the whole transformation, not
// just one pipeline), plus the config requests gathered along the way.
type runContext struct {
	t *Transformation

	tr     *invalidation.Tracker
	ledger *devdep.Ledger

	env               asset.Env
	knownDevDepHashes map[string]string
	invalidateReason  InvalidateReason
	hasInlineCode     bool

	configRequests []*pluginconfig.Config
}

// runPipelines is the algorithmic core of running one pipeline: it
// computes a pipeline hash and cache key, attempts a cache read, falls back to
// executing the pipeline on a miss, writes the result back to cache, and
// recursively chains any resulting asset whose type changed into its own
// pipeline.
func (rc *runContext) runPipelines(pl *pipeline.Pipeline, initial *asset.UncommittedAsset) ([]asset.RawResult, error) {
	rc.collectConfigRequests(pl)

	pipelineHash, err := rc.buildPipelineHash(pl)
	if err != nil {
		return nil, err
	}

	readKey, err := rc.cacheKey(initial, pipelineHash)
	if err != nil {
		return nil, err
	}

	var assets []asset.RawResult
	hit := false

	if rc.cacheReadable() {
		if blob, ok, err := rc.t.deps.Cache.Get(readKey); err != nil {
			return nil, err
		} else if ok {
			if err := json.Unmarshal(blob, &assets); err != nil {
				return nil, err
			}
			hit = true
		}
	}

	if !hit {
		assets, err = runPipeline(rc, pl, initial)
		if err != nil {
			return nil, err
		}

		if !rc.t.deps.CachingDisabled {
			writeKey, err := rc.cacheKey(initial, pipelineHash)
			if err != nil {
				return nil, err
			}
			blob, err := json.Marshal(assets)
			if err != nil {
				return nil, err
			}
			if err := rc.t.deps.Cache.Set(writeKey, blob); err != nil {
				return nil, err
			}
		}
	}

	return rc.chainTypeChanges(pl, initial, assets)
}

// cacheReadable implements the cache-read gates: caching disabled
// globally, inline code present, or the request carries a FILE_CREATE
// invalidation reason all bypass the read.
func (rc *runContext) cacheReadable() bool {
	return !rc.t.deps.CachingDisabled &&
		!rc.hasInlineCode &&
		!rc.invalidateReason.Has(InvalidateFileCreate)
}

// cacheKey recomputes the cache key from the current invalidation
// tracker state — the read-side key uses request-level invalidations
// only; the write-side key (computed after execution, against the same
// shared tracker) folds in everything execution additionally recorded,
// which is exactly the union of all resulting assets' invalidations,
// since every asset in a transformation shares one tracker by
// reference.
func (rc *runContext) cacheKey(initial *asset.UncommittedAsset, pipelineHash string) (string, error) {
	invHash, err := cachekey.InvalidationHash(rc.tr)
	if err != nil {
		return "", err
	}
	return cachekey.Key(cachekey.Inputs{
		BundlerVersion:   rc.t.deps.BundlerVersion,
		Assets:           []asset.Value{initial.Value},
		Env:              rc.env,
		InvalidationHash: invHash,
		PipelineHash:     pipelineHash,
	})
}

// collectConfigRequests appends every non-empty config registered on pl
// to the transformation-wide list returned in the final Result.
func (rc *runContext) collectConfigRequests(pl *pipeline.Pipeline) {
	for _, e := range pl.Entries {
		if e.Config != nil && !e.Config.IsEmpty() {
			rc.configRequests = append(rc.configRequests, e.Config)
		}
	}
}

// buildPipelineHash projects pl's entries into cachekey.TransformerHashInput
// values: each transformer's dev-dep hash — taken from the
// request-supplied set first, then this transformation's ledger, else
// empty — its config state, and its config's own declared dev-dep hashes.
func (rc *runContext) buildPipelineHash(pl *pipeline.Pipeline) (string, error) {
	inputs := make([]cachekey.TransformerHashInput, 0, len(pl.Entries))

	for _, e := range pl.Entries {
		devHash := rc.knownDevDepHashes[devdep.Key(e.Name, e.ResolveFrom)]
		if devHash == "" {
			if h, ok := rc.ledger.Hash(e.Name, e.ResolveFrom); ok {
				devHash = h
			}
		}

		in := cachekey.TransformerHashInput{
			Name:        e.Name,
			ResolveFrom: e.ResolveFrom,
			DevDepHash:  devHash,
		}

		if e.Config != nil {
			in.Config = &cachekey.TransformerConfigState{
				ID:            e.Config.ID,
				ResultHash:    e.Config.ResultHash,
				IncludedFiles: e.Config.IncludedFiles,
				Result:        e.Config.Result,
				Origin:        e.Name,
			}
			for _, dep := range e.Config.DevDeps {
				h, _ := rc.ledger.Hash(dep.Specifier, dep.ResolveFrom)
				in.ConfigDevDepHash = append(in.ConfigDevDepHash, h)
			}
		}

		inputs = append(inputs, in)
	}

	return cachekey.PipelineHash(inputs)
}

// chainTypeChanges implements the final step of running a pipeline:
// every resulting asset whose type differs from the initial asset's type is offered to
// NextPipeline; a valid chain recurses runPipelines and splices its
// output in place, otherwise the asset is kept as terminal.
func (rc *runContext) chainTypeChanges(pl *pipeline.Pipeline, initial *asset.UncommittedAsset, assets []asset.RawResult) ([]asset.RawResult, error) {
	absPath := filepath.Join(rc.t.deps.ProjectRoot, initial.Value.FilePath)

	final := make([]asset.RawResult, 0, len(assets))
	for _, ra := range assets {
		if ra.Type == initial.Value.Type {
			final = append(final, ra)
			continue
		}

		next, ok, err := pipeline.NextPipeline(
			rc.t.deps.Provider, pl.ID, initial.Value.FilePath, ra.Type,
			initial.IsSource, absPath, rc.t.deps.ProjectRoot, rc.env, rc.t.deps.GlobalOptions, rc.tr, rc.ledger,
		)
		if err != nil {
			return nil, err
		}
		if !ok {
			final = append(final, ra)
			continue
		}

		value := valueFromRaw(ra, pl.ID)
		if ra.Env == nil {
			value.Env = initial.Value.Env
		}
		child := asset.NewChild(initial, value, ra.AST, ra.Content, ra.Map)
		chained, err := rc.runPipelines(next, child)
		if err != nil {
			return nil, err
		}
		final = append(final, chained...)
	}
	return final, nil
}

// valueFromRaw projects a produced RawResult into the asset.Value a
// chained pipeline's initial asset carries.
func valueFromRaw(ra asset.RawResult, pipelineID string) asset.Value {
	env := asset.Env{}
	if ra.Env != nil {
		env = *ra.Env
	}
	return asset.Value{
		FilePath:     ra.FilePath,
		Type:         ra.Type,
		ContentHash:  contentHash(ra.Content),
		Size:         int64(len(ra.Content)),
		Env:          env,
		Query:        ra.Query,
		Pipeline:     pipelineID,
		UniqueKey:    ra.UniqueKey,
		Symbols:      ra.Symbols,
		Dependencies: ra.Dependencies,
	}
}
