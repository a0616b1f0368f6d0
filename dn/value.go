package dn

import (
	"bytes"
	"strings"

	"github.com/KilimcininKorOglu/ldapdn/schema"
)

// Value wraps a single attribute value in its user-provided and
// normalized representations. A Value is owned by the Ava holding it
// and is immutable after construction.
type Value struct {
	up   []byte // value exactly as provided
	norm []byte // canonical form under the equality matching rule
	hr   bool   // human-readable (string) vs binary
}

// NewStringValue creates a human-readable Value from a string. Without
// a schema the normalized form equals the user-provided form.
func NewStringValue(s string) *Value {
	b := []byte(s)
	return &Value{up: b, norm: b, hr: true}
}

// NewBinaryValue creates a binary Value from raw bytes.
func NewBinaryValue(b []byte) *Value {
	up := make([]byte, len(b))
	copy(up, b)
	return &Value{up: up, norm: up, hr: false}
}

// NewSchemaValue creates a Value bound to an attribute type resolved
// through the given Manager: the value is normalized with the type's
// equality matching rule and validated against the type's syntax.
func NewSchemaValue(sm *schema.Manager, at *schema.AttributeType, raw []byte) (*Value, error) {
	up := make([]byte, len(raw))
	copy(up, raw)

	v := &Value{up: up, norm: up, hr: at.IsHumanReadable()}

	eq, err := sm.EqualityRule(at)
	if err != nil {
		return nil, &SchemaError{Type: at.Name, Err: err}
	}
	if eq != nil {
		norm, err := eq.Normalize(up)
		if err != nil {
			return nil, &SchemaError{Type: at.Name, Err: err}
		}
		v.norm = norm
	}

	syntax, err := sm.SyntaxOf(at)
	if err != nil {
		return nil, &SchemaError{Type: at.Name, Err: err}
	}
	if syntax != nil && !syntax.Validate(v.norm) {
		return nil, &SchemaError{Type: at.Name, Err: ErrSchemaViolation}
	}

	return v, nil
}

// IsHumanReadable reports whether the value is textual.
func (v *Value) IsHumanReadable() bool {
	return v.hr
}

// Bytes returns a copy of the user-provided value bytes.
func (v *Value) Bytes() []byte {
	out := make([]byte, len(v.up))
	copy(out, v.up)
	return out
}

// String returns the user-provided value as a string.
func (v *Value) String() string {
	return string(v.up)
}

// Normalized returns a copy of the normalized value bytes.
func (v *Value) Normalized() []byte {
	out := make([]byte, len(v.norm))
	copy(out, v.norm)
	return out
}

// Clone returns an independent copy of the value.
func (v *Value) Clone() *Value {
	c := &Value{
		up:   make([]byte, len(v.up)),
		norm: make([]byte, len(v.norm)),
		hr:   v.hr,
	}
	copy(c.up, v.up)
	copy(c.norm, v.norm)
	return c
}

// Equal reports whether two values have the same normalized form and
// readability.
func (v *Value) Equal(other *Value) bool {
	if v == other {
		return true
	}
	if other == nil {
		return false
	}
	return v.hr == other.hr && bytes.Equal(v.norm, other.norm)
}

// Compare orders two values. Human-readable values compare as
// normalized strings, binary values bytewise unsigned. A binary and a
// human-readable value holding the same bytes are distinct, consistent
// with Equal: the binary value sorts first.
func (v *Value) Compare(other *Value) int {
	var c int
	if v.hr && other.hr {
		c = strings.Compare(string(v.norm), string(other.norm))
	} else {
		c = bytes.Compare(v.norm, other.norm)
	}
	if c != 0 || v.hr == other.hr {
		return c
	}
	if v.hr {
		return 1
	}
	return -1
}
