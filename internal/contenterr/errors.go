// Package contenterr defines the error taxonomy of the content pipeline.
//
// Fatal errors (ParseError, Capacity, Config) abort a load. Per-entry errors
// (MissingVisualData, MissingRequiredField, InvalidField) are reported as
// diagnostics and only exclude the offending entry.
package contenterr

import "fmt"

// Code is a machine-readable error code.
type Code string

const (
	CodeParse                Code = "PARSE_ERROR"
	CodeMissingVisualData    Code = "MISSING_VISUAL_DATA"
	CodeMissingRequiredField Code = "MISSING_REQUIRED_FIELD"
	CodeInvalidField         Code = "INVALID_FIELD"
	CodeDuplicateIdentity    Code = "DUPLICATE_IDENTITY"
	CodeMappingUnavailable   Code = "PERSISTENT_MAPPING_UNAVAILABLE"
	CodeCapacity             Code = "CAPACITY_EXCEEDED"
	CodeConfig               Code = "CONFIG_ERROR"
)

// Fatal reports whether errors of this code abort the whole load.
func (c Code) Fatal() bool {
	switch c {
	case CodeParse, CodeCapacity, CodeConfig:
		return true
	default:
		return false
	}
}

// Error is the pipeline error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message for logs
	Metadata map[string]string // Additional context (file, identity, field)
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// With returns a copy of e with the key/value added to its metadata.
func (e *Error) With(key, value string) *Error {
	out := *e
	out.Metadata = make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		out.Metadata[k] = v
	}
	out.Metadata[key] = value
	return &out
}

// Sentinel values usable with errors.Is.
var (
	ErrParse              = New(CodeParse, "parse error")
	ErrMissingVisualData  = New(CodeMissingVisualData, "missing visual data")
	ErrMissingField       = New(CodeMissingRequiredField, "missing required field")
	ErrInvalidField       = New(CodeInvalidField, "invalid field")
	ErrMappingUnavailable = New(CodeMappingUnavailable, "persistent mapping unavailable")
	ErrCapacity           = New(CodeCapacity, "capacity exceeded")
	ErrConfig             = New(CodeConfig, "configuration error")
)

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
