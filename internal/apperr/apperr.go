// internal/apperr/apperr.go
//
// Package apperr is the error taxonomy shared by every tool in the repo.
// Callers test categories with errors.Is against the Err* sentinels; the
// concrete *Error carries the human-readable message and the cause.
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a failure category.
type Code string

const (
	CodeInputNotFound     Code = "INPUT_NOT_FOUND"
	CodeSchemaMismatch    Code = "SCHEMA_MISMATCH"
	CodeUnsupportedMetric Code = "UNSUPPORTED_METRIC"
	CodeInvalidParameter  Code = "INVALID_PARAMETER"
	CodeParseError        Code = "PARSE_ERROR"
	CodeOutputError       Code = "OUTPUT_ERROR"
	CodeInternal          Code = "INTERNAL"
)

func (c Code) String() string { return string(c) }

// Sentinels for errors.Is. They compare by Code only.
var (
	ErrInputNotFound     = &Error{Code: CodeInputNotFound}
	ErrSchemaMismatch    = &Error{Code: CodeSchemaMismatch}
	ErrUnsupportedMetric = &Error{Code: CodeUnsupportedMetric}
	ErrInvalidParameter  = &Error{Code: CodeInvalidParameter}
	ErrParse             = &Error{Code: CodeParseError}
	ErrOutput            = &Error{Code: CodeOutputError}
	ErrInternal          = &Error{Code: CodeInternal}
)

// Error is the concrete error type.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Cause == nil:
		return e.Code.String()
	case e.Cause == nil:
		return e.Message
	case e.Message == "":
		return e.Cause.Error()
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same Code, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New builds an *Error with a formatted message.
func New(code Code, format string, a ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// Wrap attaches a code and message to cause. A nil cause yields nil.
func Wrap(cause error, code Code, format string, a ...any) error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, a...), Cause: cause}
}

func InputNotFound(format string, a ...any) *Error {
	return New(CodeInputNotFound, format, a...)
}

func SchemaMismatch(format string, a ...any) *Error {
	return New(CodeSchemaMismatch, format, a...)
}

func UnsupportedMetric(format string, a ...any) *Error {
	return New(CodeUnsupportedMetric, format, a...)
}

func InvalidParameter(format string, a ...any) *Error {
	return New(CodeInvalidParameter, format, a...)
}

func Parse(format string, a ...any) *Error {
	return New(CodeParseError, format, a...)
}

// CodeOf returns the Code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ExitCode maps an error to the process exit status used by all tools:
// 0 ok, 2 bad input/usage, 3 output or internal failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch CodeOf(err) {
	case CodeInputNotFound, CodeSchemaMismatch, CodeUnsupportedMetric,
		CodeInvalidParameter, CodeParseError:
		return 2
	default:
		return 3
	}
}
