package asset

import "path/filepath"

// Output is one item a transformer hands back from Transform: either a
// RawResult already in final shape, or a live Facade that must be
// resolved (content/map awaited, dependencies collected) before it can
// be normalized into one.
type Output interface {
	isOutput()
}

// RawResult is a transform output already in its final, normalized shape.
type RawResult struct {
	Content      []byte
	Map          []byte
	AST          *ASTHandle
	Type         string
	FilePath     string
	Env          *Env
	IsInline     bool
	IsIsolated   bool
	Meta         map[string]interface{}
	Pipeline     string
	Symbols      map[string]string
	UniqueKey    string
	Query        Query
	Dependencies []Dependency
}

func (RawResult) isOutput() {}

// Facade is a live, mutable asset handle a transformer may return instead
// of a RawResult — e.g. the very asset it was given, mutated in place.
// Its accessors are synchronous here; a real implementation backed by
// async I/O would make these blocking calls into the underlying future.
type Facade interface {
	Content() ([]byte, error)
	Map() ([]byte, error)
	Dependencies() ([]Dependency, error)
	Env() Env
	FilePath() string
	IsInline() bool
	IsIsolated() bool
	Meta() map[string]interface{}
	Pipeline() string
	Symbols() map[string]string
	Type() string
	UniqueKey() string
	Query() Query
	AST() *ASTHandle
}

// FacadeOutput adapts a Facade to satisfy Output.
type FacadeOutput struct {
	Facade Facade
}

func (FacadeOutput) isOutput() {}

// Normalize converts a transform Output into a RawResult: facades are
// resolved by calling their accessors; dependencies have their
// internal-only fields (ID, SourceAssetID, SourcePath) stripped, and any
// project-relative ResolveFrom is rewritten to an absolute path rooted at
// projectRoot.
func Normalize(out Output, projectRoot string) (RawResult, error) {
	switch o := out.(type) {
	case RawResult:
		o.Dependencies = finalizeDependencies(o.Dependencies, projectRoot)
		return o, nil
	case FacadeOutput:
		return normalizeFacade(o.Facade, projectRoot)
	default:
		return RawResult{}, nil
	}
}

func normalizeFacade(f Facade, projectRoot string) (RawResult, error) {
	content, err := f.Content()
	if err != nil {
		return RawResult{}, err
	}
	m, err := f.Map()
	if err != nil {
		return RawResult{}, err
	}
	deps, err := f.Dependencies()
	if err != nil {
		return RawResult{}, err
	}

	env := f.Env()
	return RawResult{
		Content:      content,
		Map:          m,
		AST:          f.AST(),
		Type:         f.Type(),
		FilePath:     f.FilePath(),
		Env:          &env,
		IsInline:     f.IsInline(),
		IsIsolated:   f.IsIsolated(),
		Meta:         f.Meta(),
		Pipeline:     f.Pipeline(),
		Symbols:      f.Symbols(),
		UniqueKey:    f.UniqueKey(),
		Query:        f.Query(),
		Dependencies: finalizeDependencies(deps, projectRoot),
	}, nil
}

func finalizeDependencies(deps []Dependency, projectRoot string) []Dependency {
	out := make([]Dependency, len(deps))
	for i, d := range deps {
		d.ID = ""
		d.SourceAssetID = ""
		d.SourcePath = ""
		if d.ResolveFrom != "" && !filepath.IsAbs(d.ResolveFrom) {
			d.ResolveFrom = filepath.Join(projectRoot, d.ResolveFrom)
		}
		out[i] = d
	}
	return out
}
