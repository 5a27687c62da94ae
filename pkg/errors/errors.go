// Package errors provides structured error types for the ascii compiler.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and server
//   - Machine-readable error codes for programmatic handling
//   - Diagnostics that carry the offending input line
//   - Error wrapping with context preservation
//
// # Error Stages
//
// Every error belongs to one of three pipeline stages:
//   - StageParse: syntax-level failures; the input text is malformed
//   - StageLayout: semantic failures; the model cannot be laid out
//   - StageRender: internal invariant violations; a bug, not bad input
//
// # Usage
//
//	err := errors.NewParse(errors.CodeMalformedNode, line, n, "unbalanced bracket in %q", id)
//	if errors.Is(err, errors.CodeMalformedNode) {
//	    // Handle syntax error
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Parse errors (syntax level)
	CodeUnknownKind    Code = "UNKNOWN_DIAGRAM_KIND"
	CodeMalformedNode  Code = "MALFORMED_NODE"
	CodeUnmatchedArrow Code = "UNMATCHED_ARROW"
	CodeDuplicateID    Code = "DUPLICATE_ID"
	CodeEmptyInput     Code = "EMPTY_INPUT"

	// Layout errors (semantic level)
	CodeUnresolvedRef  Code = "UNRESOLVED_REFERENCE"
	CodeSelfMessage    Code = "SELF_MESSAGE"
	CodeNestingDepth   Code = "UNSUPPORTED_NESTING_DEPTH"
	CodeNotConverged   Code = "ROUTING_NOT_CONVERGED"
	CodeEmptyDiagram   Code = "EMPTY_DIAGRAM"

	// Render errors (internal invariant violations)
	CodeGridNotRectangular Code = "GRID_NOT_RECTANGULAR"

	// Everything else
	CodeInternal Code = "INTERNAL_ERROR"
)

// Stage identifies which pipeline stage produced an error.
type Stage int

const (
	// StageParse covers lexing and parsing failures.
	StageParse Stage = iota
	// StageLayout covers model validation and geometry computation failures.
	StageLayout
	// StageRender covers grid invariant violations. These indicate bugs in
	// the layout engine rather than bad input.
	StageRender
)

// String returns the stage name as used in error messages.
func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageLayout:
		return "layout"
	case StageRender:
		return "render"
	}
	return "unknown"
}

// Error is a structured error with a code, stage and optional source line.
type Error struct {
	Code    Code   // Machine-readable error code
	Stage   Stage  // Pipeline stage that produced the error
	Message string // Human-readable message
	Line    string // Offending input line, if known
	LineNum int    // 1-based line number of Line, 0 if unknown
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.LineNum > 0 {
		msg = fmt.Sprintf("%s (line %d: %q)", msg, e.LineNum, e.Line)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewParse creates a parse-stage error carrying the offending line.
func NewParse(code Code, line string, lineNum int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Stage:   StageParse,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		LineNum: lineNum,
	}
}

// NewLayout creates a layout-stage error.
func NewLayout(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Stage:   StageLayout,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewRender creates a render-stage error. Render errors signal internal
// invariant violations and should be treated as bugs.
func NewRender(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Stage:   StageRender,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, stage Stage, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetStage extracts the pipeline stage from an error.
// Returns StageParse and false if the error is not an *Error.
func GetStage(err error) (Stage, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage, true
	}
	return StageParse, false
}

// IsParse reports whether err is a parse-stage error.
func IsParse(err error) bool {
	s, ok := GetStage(err)
	return ok && s == StageParse
}

// IsLayout reports whether err is a layout-stage error.
func IsLayout(err error) bool {
	s, ok := GetStage(err)
	return ok && s == StageLayout
}

// IsRender reports whether err is a render-stage error.
func IsRender(err error) bool {
	s, ok := GetStage(err)
	return ok && s == StageRender
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message with line context but without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.LineNum > 0 {
			return fmt.Sprintf("%s (line %d: %q)", e.Message, e.LineNum, e.Line)
		}
		return e.Message
	}
	return err.Error()
}
