package cachekey

import (
	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/canonhash"
	"github.com/glitchwizard/tcore/internal/invalidation"
)

// AssetKeyInput is the slice of an asset's Value relevant to a cache key.
type AssetKeyInput struct {
	FilePath  string
	Pipeline  string
	Hash      string
	UniqueKey string
	Query     []asset.QueryParam
}

// assetInputFrom projects a Value down to its cache-key-relevant fields,
// with the query entries already in canonical (sorted) order.
func assetInputFrom(v asset.Value) AssetKeyInput {
	return AssetKeyInput{
		FilePath:  v.FilePath,
		Pipeline:  v.Pipeline,
		Hash:      v.ContentHash,
		UniqueKey: v.UniqueKey,
		Query:     v.Query.SortedEntries(),
	}
}

// Inputs is everything a cache key is a pure function of.
type Inputs struct {
	BundlerVersion   string
	Assets           []asset.Value
	Env              asset.Env
	InvalidationHash string
	PipelineHash     string
}

// Key computes the canonical object-hash cache key over in's fields.
// Identical Inputs, down to field order inside maps or slices that
// canonhash treats as unordered, always yield the same key, satisfying
// the requirement that cache keys be a pure function of their declared
// inputs.
func Key(in Inputs) (string, error) {
	assetInputs := make([]AssetKeyInput, len(in.Assets))
	for i, v := range in.Assets {
		assetInputs[i] = assetInputFrom(v)
	}

	return canonhash.Object(struct {
		BundlerVersion   string
		Assets           []AssetKeyInput
		Env              asset.Env
		InvalidationHash string
		PipelineHash     string
	}{
		BundlerVersion:   in.BundlerVersion,
		Assets:           assetInputs,
		Env:              in.Env,
		InvalidationHash: in.InvalidationHash,
		PipelineHash:     in.PipelineHash,
	})
}

// InvalidationHash summarizes a tracker's full set of invalidations into
// a single order-independent digest, suitable as the InvalidationHash
// input to Key. Used both for the initial read-side key (request-level
// invalidations) and, on a cache miss, for the write-side key (the union
// of every resulting asset's invalidations).
func InvalidationHash(tr *invalidation.Tracker) (string, error) {
	all := tr.All()
	ids := make([]string, len(all))
	for i, inv := range all {
		ids[i] = string(inv.Kind) + ":" + inv.FilePath + inv.Option + inv.Pattern + inv.AboveFilePath
	}
	return canonhash.Strings(ids)
}
