// Package asset defines the mutable asset representation that flows
// through a pipeline: the value record every transformer reads and
// writes, the in-progress AST handle, and the raw/facade output shapes a
// transformer may hand back.
package asset

import (
	"sort"

	"github.com/glitchwizard/tcore/internal/devdep"
	"github.com/glitchwizard/tcore/internal/invalidation"
)

// Env describes the target environment an asset is compiled for.
type Env struct {
	Target        string
	Engines       []string
	Mode          string
	ScopeHoisting bool
}

// QueryParam is one entry of a request's ordered query-parameter mapping.
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters, as they appeared on the
// original specifier.
type Query []QueryParam

// SortedEntries returns a copy of q sorted by key, for use anywhere a
// canonical (order-independent) representation is required, such as a
// cache key.
func (q Query) SortedEntries() []QueryParam {
	out := make([]QueryParam, len(q))
	copy(out, q)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Stats records basic measurements about an asset's production.
type Stats struct {
	Size int64
}

// Dependency is one import edge discovered while transforming an asset.
//
// ID, SourceAssetID, and SourcePath are internal-only bookkeeping fields:
// they identify which asset and source file produced this dependency
// request, and are stripped before a dependency is handed back to a
// caller outside the owning transformation (see Normalize).
type Dependency struct {
	Specifier     string
	SpecifierType string
	ResolveFrom   string
	Priority      string
	IsOptional    bool
	Meta          map[string]interface{}

	ID            string
	SourceAssetID string
	SourcePath    string
}

// ASTHandle wraps a transformer-produced syntax tree together with the
// dirty flag that decides whether it can be handed directly to the next
// transformer or must first be regenerated into content.
type ASTHandle struct {
	Value   interface{}
	IsDirty bool
}

// Value is the persistent record describing a produced asset: everything
// about it except its in-flight content and AST.
type Value struct {
	FilePath     string
	Type         string
	ContentHash  string
	Size         int64
	Env          Env
	Query        Query
	SideEffects  bool
	Pipeline     string
	UniqueKey    string
	Stats        Stats
	Symbols      map[string]string
	Dependencies []Dependency
}

// UncommittedAsset is a mutable asset under construction. It owns a
// reference to the invalidation tracker and dev-dependency ledger shared
// by every asset in the owning transformation, so a file read recorded
// while transforming one asset is visible across the whole run.
type UncommittedAsset struct {
	IDBase   string
	IsSource bool
	Value    Value
	AST      *ASTHandle
	Content  []byte
	Map      []byte

	invalidations *invalidation.Tracker
	devdeps       *devdep.Ledger
}

// Invalidations returns the shared tracker this asset reports reads,
// option accesses, and creation-pattern watches into.
func (a *UncommittedAsset) Invalidations() *invalidation.Tracker {
	return a.invalidations
}

// DevDeps returns the shared ledger this asset's transformers register
// their dev-dependency declarations into.
func (a *UncommittedAsset) DevDeps() *devdep.Ledger {
	return a.devdeps
}

// ClearAST drops the asset's AST handle, e.g. after generation has
// materialized its content.
func (a *UncommittedAsset) ClearAST() {
	a.AST = nil
}

// NewChild builds the UncommittedAsset representing one output of
// transforming parent, sharing parent's invalidation tracker and
// dev-dependency ledger so bookkeeping recorded against the child is
// visible across the rest of the owning transformation.
func NewChild(parent *UncommittedAsset, value Value, ast *ASTHandle, content, mapBytes []byte) *UncommittedAsset {
	idBase := value.FilePath
	if idBase == "" {
		idBase = value.ContentHash
	}
	return &UncommittedAsset{
		IDBase:        idBase,
		IsSource:      parent.IsSource,
		Value:         value,
		AST:           ast,
		Content:       content,
		Map:           mapBytes,
		invalidations: parent.invalidations,
		devdeps:       parent.devdeps,
	}
}
