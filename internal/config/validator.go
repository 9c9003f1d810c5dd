package config

import (
	"fmt"
	"strings"
)

// ValidationError names one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field that failed validation.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		fmt.Fprintf(&b, "  %s: %s\n", err.Field, err.Message)
	}
	return b.String()
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks cfg's fields for well-formedness. It does not touch
// the filesystem: a non-existent ProjectRoot or CacheDir is a runtime
// concern, not a config-shape concern.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.ProjectRoot) == "" {
		errs = append(errs, ValidationError{Field: "projectRoot", Message: "must not be empty"})
	}
	if strings.TrimSpace(cfg.CacheDir) == "" {
		errs = append(errs, ValidationError{Field: "cacheDir", Message: "must not be empty"})
	}
	if cfg.LogLevel != "" && !validLogLevels[cfg.LogLevel] {
		errs = append(errs, ValidationError{
			Field:   "logLevel",
			Message: "must be one of debug, info, warn, error",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
