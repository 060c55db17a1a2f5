// Package errors provides severity-aware error types.
package errors

import "fmt"

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// QuoteError is a structured error with context.
type QuoteError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Field       string   `json:"field,omitempty"`
	Recoverable bool     `json:"recoverable"`
}

func (e *QuoteError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s (field: %s)", e.Severity, e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// Error codes
const (
	ErrCodeParseFailed      = "PARSE_FAILED"
	ErrCodeInvalidConfig    = "INVALID_CONFIG"
	ErrCodeUnknownProduct   = "UNKNOWN_PRODUCT"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// NewInvalidConfigError creates an error for a configuration value outside the
// closed policy sets.
func NewInvalidConfigError(field, value string) *QuoteError {
	return &QuoteError{
		Code:        ErrCodeInvalidConfig,
		Message:     fmt.Sprintf("unrecognized value %q", value),
		Severity:    SeverityError,
		Field:       field,
		Recoverable: false,
	}
}

// NewParseError creates an error for unreadable input payloads.
func NewParseError(msg string) *QuoteError {
	return &QuoteError{
		Code:        ErrCodeParseFailed,
		Message:     msg,
		Severity:    SeverityError,
		Recoverable: false,
	}
}

// NewStoreUnavailableError creates an error for catalog store failures.
func NewStoreUnavailableError(msg string) *QuoteError {
	return &QuoteError{
		Code:        ErrCodeStoreUnavailable,
		Message:     msg,
		Severity:    SeverityFatal,
		Recoverable: true,
	}
}
