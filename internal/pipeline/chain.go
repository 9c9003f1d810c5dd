package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/glitchwizard/tcore/internal/asset"
	"github.com/glitchwizard/tcore/internal/devdep"
	"github.com/glitchwizard/tcore/internal/invalidation"
)

// NextPipeline resolves the pipeline a type-changed asset should chain
// into. originalPath is the stem the emitting asset's path is based on;
// newType is the emitted asset's new extension (without a leading dot).
// It returns ok=false (no chaining — the asset is terminal) when the
// resolved pipeline's identity is unchanged from currentPipelineID,
// since chaining into the same pipeline would loop forever.
func NextPipeline(
	provider Provider,
	currentPipelineID string,
	originalPath, newType string,
	isSource bool,
	filePath, projectRoot string,
	env asset.Env,
	globalOptions map[string]interface{},
	tr *invalidation.Tracker,
	ledger *devdep.Ledger,
) (next *Pipeline, ok bool, err error) {
	stem := strings.TrimSuffix(originalPath, filepath.Ext(originalPath))
	hypotheticalPath := stem + "." + newType

	candidate, err := Load(provider, hypotheticalPath, "", isSource, filePath, projectRoot, env, globalOptions, tr, ledger)
	if err != nil {
		return nil, false, err
	}

	if candidate.ID == currentPipelineID {
		return nil, false, nil
	}

	return candidate, true, nil
}
