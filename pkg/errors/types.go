// Package errors defines the structured errors returned by the outer surfaces
// of selectsync (config, option sources, bus, CLI). The selection core never
// returns these for expected input; misses are sentinels and detached
// controls are swallowed by the bridge.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrCodeConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Option source errors
	ErrCodeSourceRead   ErrorCode = "SOURCE_READ"
	ErrCodeSourceParse  ErrorCode = "SOURCE_PARSE"
	ErrCodeSourceFormat ErrorCode = "SOURCE_FORMAT"

	// Bound control and view errors
	ErrCodeControlDetached ErrorCode = "CONTROL_DETACHED"
	ErrCodeRender          ErrorCode = "RENDER"

	// Transport errors
	ErrCodeBusPublish ErrorCode = "BUS_PUBLISH"

	// Generic errors
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error is a coded error with optional context and an underlying cause.
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Context    map[string]any
}

// New creates a new structured error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap wraps err with a code and message. Wrapping nil returns nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
		Context:    make(map[string]any),
	}
}

// WithContext adds a key-value pair to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s: %v", k, e.Context[k]))
		}
		sb.WriteString("}")
	}

	if e.Underlying != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Underlying))
	}

	return sb.String()
}

// Unwrap returns the underlying error for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches another *Error carrying the same code, so coded sentinels work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// IsCode reports whether any error in err's chain has the given code.
func IsCode(err error, code ErrorCode) bool {
	var coded *Error
	if !stderrors.As(err, &coded) {
		return false
	}
	return coded.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var coded *Error
	if !stderrors.As(err, &coded) {
		return ErrCodeInternal
	}

	return coded.Code
}
