// Package transform drives one transformation: loading the initial
// asset, resolving and running its pipeline (chaining into further
// pipelines as the asset's type changes), and assembling the cache keys,
// invalidation records, and dev-dependency requests the result carries.
package transform

import "github.com/glitchwizard/tcore/internal/asset"

// InvalidateReason is a bitmask of reasons this transformation is being
// re-run.
type InvalidateReason uint8

const (
	// InvalidateFileCreate indicates a watched file-creation pattern was
	// satisfied. Its presence forces a cache-read bypass.
	InvalidateFileCreate InvalidateReason = 1 << iota
	InvalidateFileChange
	InvalidateOption
	InvalidateStartup
)

// Has reports whether r includes reason.
func (r InvalidateReason) Has(reason InvalidateReason) bool {
	return r&reason != 0
}

// DevDepIdentifier names one (specifier, resolveFrom) pair.
type DevDepIdentifier struct {
	Specifier   string
	ResolveFrom string
}

// Request is the immutable input to a Transformation.
type Request struct {
	// FilePath is the project-relative source path.
	FilePath string

	// Code is optional inline source content. When non-nil, it is used
	// instead of reading FilePath from disk.
	Code []byte

	Env asset.Env

	// Pipeline optionally names a specific pipeline to resolve instead
	// of the default for FilePath.
	Pipeline string

	// IsSourceOverride, if non-nil, overrides the default isSource
	// judgment.
	IsSourceOverride *bool

	// SideEffects, if non-nil, overrides the asset's default
	// side-effects judgment.
	SideEffects *bool

	Query asset.Query

	// KnownDevDepHashes holds dev-dep hashes already known from a prior
	// build, keyed by devdep.Key(specifier, resolveFrom).
	KnownDevDepHashes map[string]string

	// InvalidatedDevDeps lists dev-deps whose cached resolution should
	// be dropped before this transformation runs.
	InvalidatedDevDeps []DevDepIdentifier

	InvalidateReason InvalidateReason
}
