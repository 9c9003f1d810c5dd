package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/cache"
	"github.com/glitchwizard/tcore/internal/devdep"
	"github.com/glitchwizard/tcore/internal/output"
	"github.com/glitchwizard/tcore/internal/pipeline"
	"github.com/glitchwizard/tcore/internal/plugin"
	"github.com/glitchwizard/tcore/internal/pluginconfig"
	"github.com/glitchwizard/tcore/internal/reporter"
	"github.com/glitchwizard/tcore/internal/resolver"
	"github.com/glitchwizard/tcore/internal/transform"
	"github.com/glitchwizard/tcore/internal/version"
	"github.com/glitchwizard/tcore/internal/worker"
)

var (
	transformPipelineFlag string
	transformFormatFlag   string
)

// NewTransformCmd creates the transform command.
func NewTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform <path>",
		Short: "Run a single asset through its transformation pipeline",
		Long: `Run loads one file, resolves its pipeline, and prints the resulting assets.

tcore has no package manager or transformer ecosystem of its own — both
are collaborators a host bundler supplies — so this command resolves
every file to a single built-in pass-through transformer. Caching,
dev-dependency accounting, and invalidation tracking all run for real;
only the transform step itself is a stand-in.

Examples:
  tcore transform src/index.ts
  tcore transform src/index.ts --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runTransform,
	}

	cmd.Flags().StringVar(&transformPipelineFlag, "pipeline", "", "Pipeline name to resolve instead of the default")
	cmd.Flags().StringVarP(&transformFormatFlag, "format", "o", "summary",
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidResultFormats(), ", ")))

	return cmd
}

func runTransform(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	format := output.ParseResultFormat(transformFormatFlag)

	cfg := GetConfig()
	projectRoot, err := filepath.Abs(cfg.ProjectRoot)
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	var backend cache.Backend = cache.NewMemory()

	deps := transform.Deps{
		ProjectRoot:     projectRoot,
		Provider:        newPassthroughProvider(),
		PackageManager:  resolver.NewFSResolver(),
		Cache:           backend,
		Reporter:        reporter.NewCLI(),
		ReadFile:        os.ReadFile,
		BuildScope:      worker.NewBuildScope(),
		CachingDisabled: cfg.CacheDisabled,
		BundlerVersion:  version.CacheKeyVersion(),
	}

	var result *transform.Result
	spinnerErr := output.RunWithSpinner(cmd.Context(), func() error {
		var runErr error
		result, runErr = transform.New(deps).Run(transform.Request{
			FilePath: filePath,
			Pipeline: transformPipelineFlag,
			// The built-in transformer is not a package the resolver can
			// find, so its dev-dep hash is supplied up front: tcore's own
			// version.
			KnownDevDepHashes: map[string]string{
				devdep.Key(passthroughTransformer.Name, filePath): version.CacheKeyVersion(),
			},
		})
		return runErr
	}, output.WithTitle(fmt.Sprintf("transforming %s", filePath)))
	err = spinnerErr
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	return printTransformResult(result, format)
}

func printTransformResult(result *transform.Result, format output.ResultFormat) error {
	switch format {
	case output.FormatJSON:
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		output.Println(string(encoded))
	default:
		for _, a := range result.Assets {
			output.Println(fmt.Sprintf("%s (%s, %d bytes)", a.FilePath, a.Type, len(a.Content)))
		}
		if len(result.FileInvalidations) > 0 {
			output.Println(fmt.Sprintf("watching %d file(s) for changes", len(result.FileInvalidations)))
		}
		if len(result.DevDepRequests) > 0 {
			output.Println(fmt.Sprintf("%d dev-dependency record(s)", len(result.DevDepRequests)))
		}
	}
	return nil
}

// passthroughProvider is pipeline.Provider for the transform command: it
// resolves every path to one built-in transformer that copies content
// through unchanged, keeping the asset's type as its file extension. A
// real host supplies its own Provider backed by configured transformer
// packages; this one exists only to drive the engine end to end from the
// command line.
type passthroughProvider struct{}

func newPassthroughProvider() *passthroughProvider {
	return &passthroughProvider{}
}

func (p *passthroughProvider) TransformersFor(path, pipelineName string, isSource bool) ([]pipeline.Resolved, error) {
	return []pipeline.Resolved{{
		Name:        "passthrough",
		ResolveFrom: path,
		Transformer: passthroughTransformer,
	}}, nil
}

var passthroughTransformer = plugin.Transformer{
	Name: "passthrough",
	Transform: func(a *asset.UncommittedAsset, ast *asset.ASTHandle, cfg *pluginconfig.Config, resolve plugin.ResolveFunc, logger *log.Logger) ([]asset.Output, error) {
		return []asset.Output{asset.RawResult{
			Content:  a.Content,
			Type:     a.Value.Type,
			FilePath: a.Value.FilePath,
		}}, nil
	},
}
