package funparams

import (
	"fmt"
	"net/http"
)

///////////////////////////////////////////////////////////////////////////////
// Validation Errors
///////////////////////////////////////////////////////////////////////////////

// ErrorType classifies a validation failure.
type ErrorType string

const (
	TypeMissingParameter ErrorType = "missing_parameter"
	TypeInvalidType      ErrorType = "invalid_type"
	TypeInvalidValue     ErrorType = "invalid_value"
)

// ErrorItem describes a single validation failure in the wire shape consumed
// by the boundary adapter.
type ErrorItem struct {
	Type  ErrorType `json:"type"`
	Param string    `json:"param"`
	Title string    `json:"title"`
}

// ErrorResult is the value a parser returns when validation fails. It is
// always returned, never panicked, and bubbles unchanged through every
// decorator and aggregator until a terminal caller renders it.
type ErrorResult struct {
	Status int         `json:"status"`
	Errors []ErrorItem `json:"errors"`
}

// Error implements the error interface so parser results compose with the
// usual (value, error) return convention.
func (e *ErrorResult) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("validation failed with status %d", e.Status)
	}
	item := e.Errors[0]
	return fmt.Sprintf("%s (%s): %s", item.Type, item.Param, item.Title)
}

// NewErrorResult builds a single-item ErrorResult. Extension validators use
// this to produce failures in the same wire shape as the built-in catalog.
func NewErrorResult(typ ErrorType, param Symbol, title string) *ErrorResult {
	return &ErrorResult{
		Status: http.StatusBadRequest,
		Errors: []ErrorItem{{Type: typ, Param: string(param), Title: title}},
	}
}

///////////////////////////////////////////////////////////////////////////////
// Error Catalog
///////////////////////////////////////////////////////////////////////////////

func MissingParameter(param Symbol) *ErrorResult {
	return NewErrorResult(TypeMissingParameter, param,
		fmt.Sprintf("The parameter '%s' is required", param))
}

func NotAValidNumber(param Symbol) *ErrorResult {
	return NewErrorResult(TypeInvalidType, param,
		fmt.Sprintf("The parameter '%s' is not a valid number", param))
}

func ExpectedString(param Symbol) *ErrorResult {
	return NewErrorResult(TypeInvalidType, param,
		fmt.Sprintf("The parameter '%s' must be a string", param))
}

func ExpectedArray(param Symbol) *ErrorResult {
	return NewErrorResult(TypeInvalidType, param,
		fmt.Sprintf("The parameter '%s' must be an array", param))
}

func ExpectedObject(param Symbol) *ErrorResult {
	return NewErrorResult(TypeInvalidType, param,
		fmt.Sprintf("The parameter '%s' must be an object", param))
}

func ExpectedNonEmpty(param Symbol) *ErrorResult {
	return NewErrorResult(TypeInvalidValue, param,
		fmt.Sprintf("The parameter '%s' must not be empty", param))
}

func NotAValidBoolean(param Symbol) *ErrorResult {
	return NewErrorResult(TypeInvalidType, param,
		fmt.Sprintf("The parameter '%s' is not a valid boolean", param))
}

func NotAValidUUID(param Symbol) *ErrorResult {
	return NewErrorResult(TypeInvalidType, param,
		fmt.Sprintf("The parameter '%s' is not a valid UUID", param))
}

func NotAValidTime(param Symbol) *ErrorResult {
	return NewErrorResult(TypeInvalidType, param,
		fmt.Sprintf("The parameter '%s' is not a valid timestamp", param))
}

///////////////////////////////////////////////////////////////////////////////
// Configuration Errors
///////////////////////////////////////////////////////////////////////////////

// ConfigError reports a composition mistake: a parser missing parameter
// metadata, sibling parsers claiming the same parameter, or a continuation
// shape a parser does not support. These are defects in the program, not
// user-input failures, so they are raised via panic at the point the broken
// composition is constructed or invoked.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return "funparams: " + e.msg
}

func configErrorf(format string, args ...any) {
	panic(&ConfigError{msg: fmt.Sprintf(format, args...)})
}
