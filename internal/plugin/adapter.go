package plugin

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/glitchwizard/tcore/internal/asset"
	tcerrors "github.com/glitchwizard/tcore/internal/errors"
	"github.com/glitchwizard/tcore/internal/invalidation"
	"github.com/glitchwizard/tcore/internal/pluginconfig"
	"github.com/glitchwizard/tcore/internal/resolver"
)

// PipelineGenerateFunc materializes content and a source map for an asset
// carrying a dirty AST; the caller clears the AST afterwards. A pipeline keeps exactly one
// of these installed at a time: the one set by the most recent
// transformer call that produced an AST.
type PipelineGenerateFunc func(a *asset.UncommittedAsset) (content []byte, sourceMap []byte, err error)

// WrapResolve builds the resolve closure one transformer call is given:
// it translates between project-relative and absolute paths at the
// package-manager boundary and folds every invalidation the resolution
// produced into tr.
func WrapResolve(pm resolver.PackageManager, projectRoot string, tr *invalidation.Tracker) ResolveFunc {
	return func(from, to string) (string, error) {
		absFrom := filepath.Join(projectRoot, from)

		resolved, err := pm.Resolve(to, absFrom)
		inv := pm.GetInvalidations(to, absFrom)

		for _, f := range inv.InvalidateOnFileChange {
			tr.AddFile(toProjectRelative(projectRoot, f))
		}
		for _, pattern := range inv.InvalidateOnFileCreate {
			tr.AddCreate(pattern, from)
		}

		if err != nil {
			return "", err
		}
		return toProjectRelative(projectRoot, resolved), nil
	}
}

func toProjectRelative(projectRoot, path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil {
		return path
	}
	return rel
}

// Run drives one transformer call against a, following the contract: AST
// reuse against the pipeline's current generate closure, parse if the
// asset has no AST, transform, and installing the next generate closure.
// It returns the transformer's output assets, which the caller normalizes,
// and the generate closure the
// caller should install on the pipeline for the next transformer.
func Run(
	t Transformer,
	a *asset.UncommittedAsset,
	cfg *pluginconfig.Config,
	resolve ResolveFunc,
	currentGenerate PipelineGenerateFunc,
	filePath string,
	logger *log.Logger,
) ([]asset.Output, PipelineGenerateFunc, error) {
	if a.AST != nil && a.AST.IsDirty && !canReuse(t, a.AST, logger) {
		if currentGenerate == nil {
			return nil, nil, tcerrors.Wrap(tcerrors.ErrProgrammer, "asset has a dirty AST but no generate method is installed")
		}
		content, sourceMap, err := currentGenerate(a)
		if err != nil {
			return nil, nil, tcerrors.NewPluginDiagnostic(t.Name, filePath, "generate", err)
		}
		a.Content = content
		a.Map = sourceMap
		a.ClearAST()
	}

	if a.AST == nil && t.Parse != nil {
		ast, err := callParse(t, a, cfg, resolve, logger)
		if err != nil {
			return nil, nil, tcerrors.NewPluginDiagnostic(t.Name, filePath, "parse", err)
		}
		if ast != nil {
			ast.IsDirty = false
			a.AST = ast
		}
	}

	var outputs []asset.Output
	if t.Transform != nil {
		results, err := callTransform(t, a, cfg, resolve, logger)
		if err != nil {
			return nil, nil, tcerrors.NewPluginDiagnostic(t.Name, filePath, "transform", err)
		}
		outputs = results
	} else {
		outputs = []asset.Output{passthrough(a)}
	}

	return outputs, nextGenerate(t, logger), nil
}

func canReuse(t Transformer, ast *asset.ASTHandle, logger *log.Logger) bool {
	if t.CanReuseAST == nil {
		return false
	}
	return t.CanReuseAST(ast, logger)
}

func callParse(t Transformer, a *asset.UncommittedAsset, cfg *pluginconfig.Config, resolve ResolveFunc, logger *log.Logger) (ast *asset.ASTHandle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = tcerrors.Wrap(tcerrors.ErrProgrammer, "parse panicked")
		}
	}()
	return t.Parse(a, cfg, resolve, logger)
}

func callTransform(t Transformer, a *asset.UncommittedAsset, cfg *pluginconfig.Config, resolve ResolveFunc, logger *log.Logger) (results []asset.Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = tcerrors.Wrap(tcerrors.ErrProgrammer, "transform panicked")
		}
	}()
	return t.Transform(a, a.AST, cfg, resolve, logger)
}

func passthrough(a *asset.UncommittedAsset) asset.Output {
	return asset.RawResult{
		Content:      a.Content,
		Map:          a.Map,
		AST:          a.AST,
		Type:         a.Value.Type,
		FilePath:     a.Value.FilePath,
		Pipeline:     a.Value.Pipeline,
		UniqueKey:    a.Value.UniqueKey,
		Query:        a.Value.Query,
		Dependencies: a.Value.Dependencies,
	}
}

// nextGenerate builds the generate closure the pipeline installs after
// this transformer call: it defers to t.Generate when the asset still
// carries an AST, and fails with a programmer error if called on an
// asset whose AST exists but whose transformer has no generate method.
func nextGenerate(t Transformer, logger *log.Logger) PipelineGenerateFunc {
	return func(a *asset.UncommittedAsset) ([]byte, []byte, error) {
		if a.AST == nil {
			return a.Content, a.Map, nil
		}
		if t.Generate == nil {
			return nil, nil, tcerrors.Wrap(tcerrors.ErrProgrammer, "asset has an AST but transformer "+t.Name+" has no generate method")
		}
		return t.Generate(a, a.AST, logger)
	}
}
