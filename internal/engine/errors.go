package engine

import (
	"errors"
	"fmt"
)

// ConfigurationError reports construction parameters the engine cannot run with.
//
// It is the only error the engine produces. It is raised synchronously by New
// and is fatal to engine creation: no partially built engine is returned, and
// the caller must correct the configuration before retrying.
type ConfigurationError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Field names the offending parameter.
	Field string

	// Message is a human-readable description.
	Message string
}

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeInvalidAgentCount indicates agent_count <= 0.
	ErrCodeInvalidAgentCount ConfigErrorCode = "INVALID_AGENT_COUNT"

	// ErrCodeEmptyLayers indicates an empty layer set.
	ErrCodeEmptyLayers ConfigErrorCode = "EMPTY_LAYERS"

	// ErrCodeInvalidRate indicates a negative, NaN or infinite rate.
	ErrCodeInvalidRate ConfigErrorCode = "INVALID_RATE"
)

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func newConfigError(code ConfigErrorCode, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
