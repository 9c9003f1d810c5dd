package transform

import (
	"github.com/charmbracelet/log"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/cache"
	"github.com/glitchwizard/tcore/internal/output"
	"github.com/glitchwizard/tcore/internal/pipeline"
	"github.com/glitchwizard/tcore/internal/reporter"
	"github.com/glitchwizard/tcore/internal/resolver"
	"github.com/glitchwizard/tcore/internal/worker"
)

// Deps collects the external collaborators one Transformation needs —
// pipeline resolution, package resolution, caching, reporting, file
// reads — plus the process-wide BuildScope handle and the knobs a
// scheduler controls directly.
type Deps struct {
	ProjectRoot    string
	BundlerVersion string

	Provider       pipeline.Provider
	PackageManager resolver.PackageManager
	Cache          cache.Backend
	Reporter       reporter.Reporter
	ReadFile       asset.ReadFile
	BuildScope     *worker.BuildScope

	// CachingDisabled bypasses readFromCache/writeToCache entirely,
	// matching the "caching globally disabled" cache-read gate.
	CachingDisabled bool

	GlobalOptions map[string]interface{}
}

// Transformation drives one file through its pipeline (and any pipelines
// it chains into as its type changes), producing a Result.
type Transformation struct {
	deps   Deps
	logger *log.Logger
}

// New returns a Transformation backed by deps.
func New(deps Deps) *Transformation {
	return &Transformation{deps: deps, logger: output.ScopedLogger("transform")}
}
