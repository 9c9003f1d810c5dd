package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glitchwizard/tcore/internal/config"
	tcerrors "github.com/glitchwizard/tcore/internal/errors"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{
			name:     "validation errors",
			err:      config.ValidationErrors{{Field: "cacheDir", Message: "must not be empty"}},
			wantCode: ExitValidationError,
		},
		{
			name:     "not found error",
			err:      tcerrors.ErrNotFound,
			wantCode: ExitNotFound,
		},
		{
			name:     "wrapped not found error",
			err:      tcerrors.Wrap(tcerrors.ErrNotFound, "source map missing"),
			wantCode: ExitNotFound,
		},
		{
			name:     "explicit exit error wins",
			err:      NewExitError(errors.New("custom"), 42),
			wantCode: 42,
		},
		{
			name:     "unknown error returns general error",
			err:      errors.New("unknown error"),
			wantCode: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	originalErr := errors.New("original error")
	exitErr := NewExitError(originalErr, ExitValidationError)

	assert.Equal(t, "original error", exitErr.Error())
	assert.Equal(t, originalErr, errors.Unwrap(exitErr))
	assert.True(t, errors.Is(exitErr, originalErr))
}

func TestExitCodeName(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{ExitSuccess, "Success"},
		{ExitGeneralError, "General Error"},
		{ExitValidationError, "Validation Error"},
		{ExitNotFound, "Not Found"},
		{999, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCodeName(tt.code))
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitGeneralError)
	assert.Equal(t, 2, ExitValidationError)
	assert.Equal(t, 3, ExitNotFound)
}
