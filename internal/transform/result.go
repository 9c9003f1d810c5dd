package transform

import (
	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/devdep"
	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/pluginconfig"
)

// Result is what a Transformation's Run returns: the produced assets
// together with everything an upstream incremental build graph needs to
// know to re-run precisely the affected work later.
type Result struct {
	// Assets are the final, committed output assets: each either has no
	// AST, or a non-dirty AST with content already materialized. The
	// exceptions are JS assets in a scope-hoisting environment and CSS
	// assets in production mode with symbols, which keep their dirty AST.
	Assets []asset.RawResult

	// ConfigRequests are the non-empty plugin configs registered while
	// running this transformation's pipelines.
	ConfigRequests []*pluginconfig.Config

	FileInvalidations   []string
	OptionInvalidations []string
	CreateInvalidations []invalidation.Invalidation
	DevDepRequests      []devdep.Record
}
