// Package errors provides structured error types and exit codes for dist.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the CLI. Mirrored publicly in pkg/dist.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (render failed, I/O failed, etc.)
	ExitConfigError      = 2 // Configuration error (invalid config, etc.)
	ExitEnvironmentError = 3 // Environment error (not a dist project, etc.)
	ExitDriftDetected    = 4 // Generated file on disk is out of date
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindEnvironment
	KindDrift
)

// DistError is the base error type for dist.
type DistError struct {
	Kind    ErrorKind
	Message string
	Path    string // File the error refers to, if any
	Detail  string // Extra context shown on a second line in verbose output
	Cause   error  // Underlying error
}

func (e *DistError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *DistError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *DistError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	case KindDrift:
		return ExitDriftDetected
	default:
		return ExitRuntimeError
	}
}

// Config creates a new configuration error.
func Config(message string) *DistError {
	return &DistError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *DistError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *DistError {
	return &DistError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Wrap wraps an error with additional context. The result has the kind of
// the nearest DistError in err's chain, or KindRuntime if there is none.
func Wrap(err error, message string) *DistError {
	kind := KindRuntime
	var de *DistError
	if stderrors.As(err, &de) {
		kind = de.Kind
	}
	return &DistError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// CheckFileMismatch reports that the file at path differs from what
// generation would produce. Callers can detect it with IsDrift.
func CheckFileMismatch(path string) *DistError {
	return &DistError{
		Kind:    KindDrift,
		Path:    path,
		Message: "file is out of date; run 'dist generate' to update it",
	}
}

// IsDrift reports whether err (or anything it wraps) is a drift error.
func IsDrift(err error) bool {
	for err != nil {
		var de *DistError
		if !stderrors.As(err, &de) {
			return false
		}
		if de.Kind == KindDrift {
			return true
		}
		err = de.Cause
	}
	return false
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if IsDrift(err) {
		return ExitDriftDetected
	}
	var de *DistError
	if stderrors.As(err, &de) {
		return de.ExitCode()
	}
	return ExitRuntimeError
}
