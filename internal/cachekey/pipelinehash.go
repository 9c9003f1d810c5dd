// Package cachekey computes the two content hashes a pipeline run is keyed
// by: a pipeline hash over the configured transformers and their
// registered state, and a cache key over that pipeline hash together with
// the resulting assets and environment.
package cachekey

import (
	"github.com/glitchwizard/tcore/internal/canonhash"
	tcerrors "github.com/glitchwizard/tcore/internal/errors"
)

// TransformerConfigState is the subset of a loaded plugin config relevant
// to the pipeline hash: its stable id, and exactly one of the three ways
// its config state can be captured.
type TransformerConfigState struct {
	// ID is empty when the transformer never registered a config.
	ID string

	// ResultHash, if non-empty, is the plugin-supplied explicit hash and
	// wins over the other two modes.
	ResultHash string

	// IncludedFiles, used when ResultHash is empty and non-empty itself:
	// the config's own hash is the invalidation hash over these files.
	IncludedFiles []string

	// Result, used when both ResultHash and IncludedFiles are empty: a
	// canonically serializable value representing the config's state.
	Result interface{}

	// Origin names the transformer this config belongs to, used only to
	// annotate a serialization failure diagnostic.
	Origin string
}

// TransformerHashInput is one transformer's contribution to a pipeline
// hash: its own dev-dep hash, its config state (if it registered one),
// and the dev-dep hashes of every dev-dep its config declared.
type TransformerHashInput struct {
	Name             string
	ResolveFrom      string
	DevDepHash       string
	Config           *TransformerConfigState
	ConfigDevDepHash []string
}

// PipelineHash computes a hex digest over an ordered list of transformer
// contributions. Order matters: it is fed exactly as the transformers
// appear in the pipeline.
func PipelineHash(inputs []TransformerHashInput) (string, error) {
	parts := make([]interface{}, 0, len(inputs)*2)

	for _, in := range inputs {
		parts = append(parts, in.DevDepHash)

		if in.Config != nil {
			configHash, err := configStateHash(*in.Config)
			if err != nil {
				return "", err
			}
			parts = append(parts, in.Config.ID, configHash)
		}

		for _, h := range in.ConfigDevDepHash {
			if h == "" {
				return "", tcerrors.Wrap(tcerrors.ErrProgrammer, "missing dev-dep hash for declared config dev-dep of "+in.Name)
			}
			parts = append(parts, h)
		}
	}

	return canonhash.Object(parts)
}

// configStateHash picks exactly one of the three config-state modes, in
// priority order: explicit ResultHash, then the invalidation hash of
// IncludedFiles, then a canonical serialization of Result.
func configStateHash(c TransformerConfigState) (string, error) {
	if c.ResultHash != "" {
		return c.ResultHash, nil
	}
	if len(c.IncludedFiles) > 0 {
		return canonhash.Strings(c.IncludedFiles)
	}
	if c.Result != nil {
		h, err := canonhash.Object(c.Result)
		if err != nil {
			return "", tcerrors.NewUnhashableConfigDiagnostic(c.Origin, err)
		}
		return h, nil
	}
	return "", nil
}
