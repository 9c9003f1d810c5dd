// Package plugin defines the transformer contract: an opaque capability
// record the core never inspects beyond checking which optional fields
// are populated, plus the runtime adapter that drives one transformer
// call.
package plugin

import (
	"github.com/charmbracelet/log"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/pluginconfig"
)

// ResolveFunc resolves a specifier relative to an asset's path, mapping
// between absolute and project-relative representations at the boundary.
type ResolveFunc func(from, to string) (string, error)

// CanReuseASTFunc decides whether a transformer can operate on an AST it
// did not itself produce.
type CanReuseASTFunc func(ast *asset.ASTHandle, logger *log.Logger) bool

// ParseFunc produces an AST from an asset's content.
type ParseFunc func(a *asset.UncommittedAsset, cfg *pluginconfig.Config, resolve ResolveFunc, logger *log.Logger) (*asset.ASTHandle, error)

// TransformFunc runs the transformer's actual logic, producing one or
// more output assets from the input asset (and its AST, if any).
type TransformFunc func(a *asset.UncommittedAsset, ast *asset.ASTHandle, cfg *pluginconfig.Config, resolve ResolveFunc, logger *log.Logger) ([]asset.Output, error)

// GenerateFunc materializes an asset's content and source map from its
// AST.
type GenerateFunc func(a *asset.UncommittedAsset, ast *asset.ASTHandle, logger *log.Logger) (content []byte, sourceMap []byte, err error)

// Transformer is a capability-set record: a plugin exposes any subset of
// these optional fields. The core never inspects a transformer beyond
// checking which fields are non-nil — there is no interface inheritance
// or required method set, matching how a real plugin may implement only
// the phases it needs.
type Transformer struct {
	Name string

	LoadConfig  pluginconfig.LoadConfigFunc
	CanReuseAST CanReuseASTFunc
	Parse       ParseFunc
	Transform   TransformFunc
	Generate    GenerateFunc
}
