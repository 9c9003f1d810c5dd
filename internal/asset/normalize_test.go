package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRawResultStripsInternalDependencyFields(t *testing.T) {
	raw := RawResult{
		Content: []byte("x"),
		Type:    "js",
		Dependencies: []Dependency{
			{Specifier: "lodash", ID: "a1", SourceAssetID: "a2", SourcePath: "/src/x.js"},
		},
	}

	out, err := Normalize(raw, "/proj")
	require.NoError(t, err)
	require.Len(t, out.Dependencies, 1)
	assert.Empty(t, out.Dependencies[0].ID)
	assert.Empty(t, out.Dependencies[0].SourceAssetID)
	assert.Empty(t, out.Dependencies[0].SourcePath)
}

func TestNormalizeRewritesRelativeResolveFrom(t *testing.T) {
	raw := RawResult{
		Dependencies: []Dependency{{Specifier: "lodash", ResolveFrom: "src/x.js"}},
	}

	out, err := Normalize(raw, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "/proj/src/x.js", out.Dependencies[0].ResolveFrom)
}

func TestNormalizeLeavesAbsoluteResolveFromAlone(t *testing.T) {
	raw := RawResult{
		Dependencies: []Dependency{{Specifier: "lodash", ResolveFrom: "/elsewhere/x.js"}},
	}

	out, err := Normalize(raw, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/x.js", out.Dependencies[0].ResolveFrom)
}

type fakeFacade struct {
	content []byte
	deps    []Dependency
	env     Env
	typ     string
}

func (f *fakeFacade) Content() ([]byte, error)            { return f.content, nil }
func (f *fakeFacade) Map() ([]byte, error)                { return nil, nil }
func (f *fakeFacade) Dependencies() ([]Dependency, error) { return f.deps, nil }
func (f *fakeFacade) Env() Env                            { return f.env }
func (f *fakeFacade) FilePath() string                    { return "x.js" }
func (f *fakeFacade) IsInline() bool                      { return false }
func (f *fakeFacade) IsIsolated() bool                    { return false }
func (f *fakeFacade) Meta() map[string]interface{}        { return nil }
func (f *fakeFacade) Pipeline() string                    { return "" }
func (f *fakeFacade) Symbols() map[string]string          { return nil }
func (f *fakeFacade) Type() string                        { return f.typ }
func (f *fakeFacade) UniqueKey() string                   { return "" }
func (f *fakeFacade) Query() Query                        { return nil }
func (f *fakeFacade) AST() *ASTHandle                     { return nil }

func TestNormalizeFacadeOutput(t *testing.T) {
	facade := &fakeFacade{
		content: []byte("hi"),
		typ:     "js",
		deps:    []Dependency{{Specifier: "lodash", ID: "internal"}},
	}

	out, err := Normalize(FacadeOutput{Facade: facade}, "/proj")
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), out.Content)
	assert.Equal(t, "js", out.Type)
	assert.Empty(t, out.Dependencies[0].ID)
}
