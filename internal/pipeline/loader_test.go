package pipeline

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/plugin"
	"github.com/glitchwizard/tcore/internal/pluginconfig"
)

type fakeProvider struct {
	byPath map[string][]Resolved
}

func (f *fakeProvider) TransformersFor(path, pipelineName string, isSource bool) ([]Resolved, error) {
	return f.byPath[path], nil
}

func TestLoadBuildsIDFromTransformerNames(t *testing.T) {
	provider := &fakeProvider{byPath: map[string][]Resolved{
		"src/a.ts": {
			{Name: "T1", Transformer: plugin.Transformer{Name: "T1"}},
			{Name: "T2", Transformer: plugin.Transformer{Name: "T2"}},
		},
	}}

	p, err := Load(provider, "src/a.ts", "", true, "/proj/src/a.ts", "/proj", asset.Env{}, nil, invalidation.NewTracker(), nil)
	require.NoError(t, err)
	assert.Equal(t, "T1:T2", p.ID)
	assert.Len(t, p.Entries, 2)
}

func TestLoadRegistersConfigUnderTransformerName(t *testing.T) {
	provider := &fakeProvider{byPath: map[string][]Resolved{
		"src/a.ts": {{
			Name: "T1",
			Transformer: plugin.Transformer{
				Name: "T1",
				LoadConfig: func(f *pluginconfig.Facade, options pluginconfig.Options, logger *log.Logger) error {
					f.SetResultHash("abc")
					return nil
				},
			},
		}},
	}}

	p, err := Load(provider, "src/a.ts", "", true, "/proj/src/a.ts", "/proj", asset.Env{}, nil, invalidation.NewTracker(), nil)
	require.NoError(t, err)
	require.NotNil(t, p.Entries[0].Config)
	assert.Equal(t, "abc", p.Entries[0].Config.ResultHash)
}

func TestEmptyPipelineHasEmptyID(t *testing.T) {
	provider := &fakeProvider{byPath: map[string][]Resolved{}}
	p, err := Load(provider, "src/a.ts", "", true, "/proj/src/a.ts", "/proj", asset.Env{}, nil, invalidation.NewTracker(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", p.ID)
	assert.Empty(t, p.Entries)
}
