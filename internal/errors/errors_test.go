package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticError(t *testing.T) {
	cause := errors.New("unexpected token")
	diag := NewPluginDiagnostic("tsToJs", "/repo/src/app.ts", "transform", cause)

	var d *Diagnostic
	require.ErrorAs(t, diag, &d)
	assert.Equal(t, "tsToJs", d.Origin)
	assert.Equal(t, "/repo/src/app.ts", d.FilePath)
	assert.Contains(t, diag.Error(), "tsToJs")
	assert.Contains(t, diag.Error(), "unexpected token")
}

func TestDiagnosticUnwrap(t *testing.T) {
	cause := errors.New("boom")
	diag := NewPluginDiagnostic("p", "/f", "parse", cause)
	assert.ErrorIs(t, diag, cause)
}

func TestNewUnhashableConfigDiagnostic(t *testing.T) {
	err := NewUnhashableConfigDiagnostic("cssModules", errors.New("cycle"))
	assert.ErrorIs(t, err, ErrUnhashable)
	assert.Contains(t, err.Error(), "hint:")
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "source map")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "source map")
}
