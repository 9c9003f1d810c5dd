package cachekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineHashDependsOnDevDepHash(t *testing.T) {
	a, err := PipelineHash([]TransformerHashInput{{Name: "T1", DevDepHash: "h1"}})
	require.NoError(t, err)

	b, err := PipelineHash([]TransformerHashInput{{Name: "T1", DevDepHash: "h2"}})
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "changing a dev-dep hash must change the pipeline hash")
}

func TestPipelineHashDependsOnConfigID(t *testing.T) {
	base := []TransformerHashInput{{Name: "T1", DevDepHash: "h1", Config: &TransformerConfigState{ID: "cfg-1"}}}
	a, err := PipelineHash(base)
	require.NoError(t, err)

	changed := []TransformerHashInput{{Name: "T1", DevDepHash: "h1", Config: &TransformerConfigState{ID: "cfg-2"}}}
	b, err := PipelineHash(changed)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPipelineHashConfigResultHashWins(t *testing.T) {
	in := TransformerHashInput{
		Name: "T1",
		Config: &TransformerConfigState{
			ID:            "cfg-1",
			ResultHash:    "explicit",
			IncludedFiles: []string{"should/be/ignored"},
			Result:        map[string]string{"also": "ignored"},
		},
	}
	a, err := PipelineHash([]TransformerHashInput{in})
	require.NoError(t, err)

	in2 := in
	in2.Config = &TransformerConfigState{ID: "cfg-1", ResultHash: "explicit"}
	b, err := PipelineHash([]TransformerHashInput{in2})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPipelineHashIncludedFilesOrderIndependent(t *testing.T) {
	a, err := PipelineHash([]TransformerHashInput{{
		Name:   "T1",
		Config: &TransformerConfigState{ID: "cfg-1", IncludedFiles: []string{"a.json", "b.json"}},
	}})
	require.NoError(t, err)

	b, err := PipelineHash([]TransformerHashInput{{
		Name:   "T1",
		Config: &TransformerConfigState{ID: "cfg-1", IncludedFiles: []string{"b.json", "a.json"}},
	}})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPipelineHashMissingConfigDevDepHashIsProgrammerError(t *testing.T) {
	_, err := PipelineHash([]TransformerHashInput{{
		Name:             "T1",
		ConfigDevDepHash: []string{""},
	}})
	require.Error(t, err)
}

func TestPipelineHashUnhashableResultRaisesDiagnostic(t *testing.T) {
	_, err := PipelineHash([]TransformerHashInput{{
		Name: "T1",
		Config: &TransformerConfigState{
			ID:     "cfg-1",
			Result: make(chan int),
			Origin: "my-transformer",
		},
	}})
	require.Error(t, err)
}
