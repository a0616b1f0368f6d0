package dn

import (
	"errors"
	"fmt"
)

// Name model errors.
var (
	// ErrInvalidName is returned when a type or value violates the
	// RFC 4514 textual syntax.
	ErrInvalidName = errors.New("dn: invalid name syntax")

	// ErrInvalidRdn is returned when an RDN is structurally invalid.
	ErrInvalidRdn = errors.New("dn: invalid RDN")

	// ErrEmptyType is returned when an attribute type is empty after
	// trimming.
	ErrEmptyType = errors.New("dn: empty attribute type")

	// ErrSchemaViolation is returned when a value is rejected by the
	// syntax of its bound attribute type.
	ErrSchemaViolation = errors.New("dn: value violates attribute syntax")

	// ErrIncomplete is returned when serializing an Ava or Rdn whose
	// required fields are unset.
	ErrIncomplete = errors.New("dn: incomplete instance cannot be serialized")

	// ErrTruncated is returned when decoding runs out of data.
	ErrTruncated = errors.New("dn: truncated serialized data")
)

// SyntaxError reports a textual syntax violation at a byte position.
type SyntaxError struct {
	Input   string // Offending input text
	Pos     int    // Byte offset of the violation, -1 when unknown
	Message string // Human-readable description
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("dn: syntax error at position %d in %q: %s", e.Pos, e.Input, e.Message)
	}
	return fmt.Sprintf("dn: syntax error in %q: %s", e.Input, e.Message)
}

// Is allows SyntaxError to match ErrInvalidName with errors.Is.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidName
}

// newSyntaxError creates a SyntaxError for the given input and position.
func newSyntaxError(input string, pos int, message string) *SyntaxError {
	return &SyntaxError{
		Input:   input,
		Pos:     pos,
		Message: message,
	}
}

// SchemaError wraps a schema validation or normalization failure for a
// specific attribute type.
type SchemaError struct {
	Type string // Attribute type name or OID
	Err  error  // Underlying schema error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("dn: schema error for attribute type %q: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}
