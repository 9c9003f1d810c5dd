// Package errors provides the tcore error taxonomy: sentinel errors for
// known conditions, and a structured Diagnostic type for plugin-origin
// failures.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrNotFound indicates a requested asset, specifier, or cache entry
	// was not found. Classified as "environmental" when it demotes to a
	// log rather than failing the transformation (e.g. a missing source map).
	ErrNotFound = errors.New("not found")

	// ErrProgrammer indicates an invariant the core itself is responsible
	// for was violated — a missing dev-dep hash for a declared config
	// dev-dep, or an asset with an AST but no generate method. These never
	// originate from plugin code and always abort the transformation.
	ErrProgrammer = errors.New("programmer error")

	// ErrUnhashable indicates a plugin's config.Result could not be
	// canonically serialized and no resultHash was supplied.
	ErrUnhashable = errors.New("config result is not hashable")
)

// Diagnostic captures a user-facing, plugin-origin failure: any
// transformer failure propagates as a structured diagnostic annotated
// with the originating plugin name and the absolute source path.
type Diagnostic struct {
	// Origin is the transformer (plugin) name that raised the failure.
	Origin string

	// FilePath is the absolute path of the source asset being transformed.
	FilePath string

	// Phase names the pipeline step that failed: loadConfig, parse,
	// transform, generate, or pipelineHash.
	Phase string

	// Message is the specific description.
	Message string

	// Hint provides actionable guidance, when one is available.
	Hint string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "transform error in %q", d.Origin)
	if d.Phase != "" {
		fmt.Fprintf(&b, " (%s)", d.Phase)
	}
	if d.FilePath != "" {
		fmt.Fprintf(&b, " at %s", d.FilePath)
	}
	b.WriteString(": ")
	if d.Message != "" {
		b.WriteString(d.Message)
	} else if d.Cause != nil {
		b.WriteString(d.Cause.Error())
	}
	if d.Hint != "" {
		fmt.Fprintf(&b, "\nhint: %s", d.Hint)
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// NewPluginDiagnostic wraps a plugin-thrown error with its origin, the
// absolute source path, and the pipeline phase in which it occurred.
func NewPluginDiagnostic(origin, filePath, phase string, cause error) error {
	return &Diagnostic{
		Origin:   origin,
		FilePath: filePath,
		Phase:    phase,
		Message:  cause.Error(),
		Cause:    cause,
	}
}

// NewUnhashableConfigDiagnostic builds the diagnostic raised when a plugin's
// config.Result cannot be canonically serialized into a pipeline hash and
// the plugin supplied no explicit resultHash to fall back on.
func NewUnhashableConfigDiagnostic(origin string, cause error) error {
	return &Diagnostic{
		Origin:  origin,
		Phase:   "pipelineHash",
		Message: "config result is not hashable: " + cause.Error(),
		Hint:    "set config.ResultHash explicitly instead of relying on serialization of config.Result",
		Cause:   ErrUnhashable,
	}
}

// Wrap wraps an error with a sentinel error, preserving errors.Is/As.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
