// Package errors defines the error taxonomy for CSVW metadata processing.
//
// All failures are fail-fast: they abort the operation that produced them and
// propagate to the caller unchanged. There is no recovery or partial
// acceptance.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a category of CSVW processing failure.
type Code string

const (
	// ErrLexicalValue indicates a lexical string does not conform to its
	// atomic type's grammar.
	ErrLexicalValue Code = "csvw-invalid-lexical-value"
	// ErrDatatypeConfig indicates a self-contradictory or malformed datatype
	// description (facet combination, bad format pattern).
	ErrDatatypeConfig Code = "csvw-invalid-datatype"
	// ErrConstraint indicates a parsed value violates a length or bound facet.
	ErrConstraint Code = "csvw-constraint-violation"
	// ErrRequiredMissing indicates an empty or null cell in a required column.
	ErrRequiredMissing Code = "csvw-required-column-missing"
	// ErrReferentialIntegrity indicates a foreign key tuple has no matching
	// row in the referenced table.
	ErrReferentialIntegrity Code = "csvw-referential-integrity"
	// ErrUnknownDatatype indicates a base type name absent from the registry.
	ErrUnknownDatatype Code = "csvw-unknown-datatype"
)

// Error describes a CSVW processing failure with optional column and value
// context.
type Error struct {
	Code    Code
	Message string
	Column  string
	Value   string
}

// Error formats the failure for display, including code and context.
func (e *Error) Error() string {
	if e == nil {
		return "csvw error <nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Column != "" {
		fmt.Fprintf(&b, " (column %s)", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (value: %s)", e.Value)
	}
	return b.String()
}

// New builds an Error with a code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf formats a message and builds an Error.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// WithColumn returns a copy of the error annotated with a column name.
func (e *Error) WithColumn(name string) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Column = name
	return &clone
}

// IsCode reports whether err is or wraps an Error with the given code.
func IsCode(err error, code Code) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// AsError extracts an *Error from err if present.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
