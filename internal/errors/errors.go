// Package errors provides domain-specific error types for the resolvboot application.
//
// This package defines structured errors with error codes and an explicit
// severity, making it possible for the bootstrap orchestrator to decide
// whether a failed operation aborts the run, is logged as a warning, or is
// merely displayed.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeUnsupportedDistro indicates the host matched no known package family.
	ErrCodeUnsupportedDistro ErrorCode = "UNSUPPORTED_DISTRO"

	// ErrCodeCommandFailure indicates an external command returned a non-zero status.
	ErrCodeCommandFailure ErrorCode = "COMMAND_FAILURE"

	// ErrCodeFile indicates a read or write on a managed file failed.
	ErrCodeFile ErrorCode = "FILE_ERROR"

	// ErrCodeServiceNotReady indicates the resolution service did not become
	// active within the readiness budget after a restart.
	ErrCodeServiceNotReady ErrorCode = "SERVICE_NOT_READY"

	// ErrCodeModuleLoad indicates a kernel module failed to load.
	ErrCodeModuleLoad ErrorCode = "MODULE_LOAD_FAILED"

	// ErrCodeSmokeTest indicates the post-configuration DNS query failed.
	ErrCodeSmokeTest ErrorCode = "SMOKE_TEST_FAILED"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Severity classifies how a failed operation affects the run.
type Severity int

const (
	// SeverityFatal aborts the entire run. Side effects of completed stages
	// stay in place; there is no rollback.
	SeverityFatal Severity = iota

	// SeverityWarning is logged and the run continues.
	SeverityWarning

	// SeverityInfo is displayed and has no effect on the run's outcome.
	SeverityInfo
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Error represents a domain-specific error with a code, a severity and an
// optional cause.
type Error struct {
	Severity Severity
	Code     ErrorCode
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified severity, code and message.
func New(severity Severity, code ErrorCode, message string) *Error {
	return &Error{
		Severity: severity,
		Code:     code,
		Message:  message,
		Cause:    nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(severity Severity, code ErrorCode, message string, cause error) *Error {
	return &Error{
		Severity: severity,
		Code:     code,
		Message:  message,
		Cause:    cause,
	}
}

// SeverityOf reports the severity of err. Plain errors that carry no domain
// classification count as fatal: the default execution policy is fail-fast,
// and only explicitly guarded operations may continue.
func SeverityOf(err error) Severity {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Severity
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return SeverityFatal
}

// NewUnsupportedDistroError creates the fatal error for an unrecognized host family.
func NewUnsupportedDistroError(message string) *Error {
	return New(SeverityFatal, ErrCodeUnsupportedDistro, message)
}

// NewCommandError creates a fatal error for a failed external command.
func NewCommandError(message string, cause error) *Error {
	return Wrap(SeverityFatal, ErrCodeCommandFailure, message, cause)
}

// NewFileError creates a fatal error for a failed file operation.
func NewFileError(message string, cause error) *Error {
	return Wrap(SeverityFatal, ErrCodeFile, message, cause)
}

// NewServiceNotReadyError creates a fatal error for a readiness poll that ran
// out of budget.
func NewServiceNotReadyError(message string) *Error {
	return New(SeverityFatal, ErrCodeServiceNotReady, message)
}

// NewModuleLoadError creates a non-fatal warning for a kernel module that
// could not be loaded. The run continues and tuning keys are still persisted.
func NewModuleLoadError(message string, cause error) *Error {
	return Wrap(SeverityWarning, ErrCodeModuleLoad, message, cause)
}

// NewSmokeTestError creates an informational error for a failed DNS smoke
// test. It is displayed only and never changes the run's outcome unless the
// caller promotes it.
func NewSmokeTestError(message string, cause error) *Error {
	return Wrap(SeverityInfo, ErrCodeSmokeTest, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(SeverityFatal, ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(SeverityFatal, ErrCodeValidation, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(SeverityFatal, ErrCodeInternal, message, cause)
}
