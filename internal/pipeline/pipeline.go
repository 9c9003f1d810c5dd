// Package pipeline resolves and represents the ordered sequence of
// transformers that apply to an asset, and the chaining rule that
// decides when a type-changing output asset continues into a different
// pipeline.
package pipeline

import (
	"strings"

	"github.com/glitchwizard/tcore/internal/plugin"
	"github.com/glitchwizard/tcore/internal/pluginconfig"
)

// Entry is one resolved position in a pipeline.
type Entry struct {
	Name          string
	ResolveFrom   string
	Transformer   plugin.Transformer
	Config        *pluginconfig.Config
	ConfigKeyPath string
}

// Pipeline is a resolved, ordered sequence of transformer entries,
// identified by the colon-joined concatenation of their names. It
// carries the generate closure set by whichever transformer most
// recently produced an AST — nil until one does.
type Pipeline struct {
	ID      string
	Entries []Entry

	Generate plugin.PipelineGenerateFunc
}

// BuildID joins transformer names into a pipeline identity.
func BuildID(names []string) string {
	return strings.Join(names, ":")
}

// SetGenerate installs the generate closure produced by the most recent
// transformer call.
func (p *Pipeline) SetGenerate(fn plugin.PipelineGenerateFunc) {
	p.Generate = fn
}
