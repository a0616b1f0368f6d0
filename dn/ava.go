package dn

import (
	"bytes"
	"hash/fnv"
	"strings"
	"sync/atomic"

	"github.com/KilimcininKorOglu/ldapdn/schema"
)

// Ava is an attribute-value assertion, the type=value atom of a naming
// component. An Ava carries both the user-provided form (verbatim, for
// round-tripping) and the normalized form (for comparison), and may be
// bound to a schema attribute type.
//
// Avas are immutable once constructed; ApplySchema returns a new
// instance rather than mutating the receiver.
type Ava struct {
	upType        string                // attribute type exactly as written
	normType      string                // lower-cased/trimmed type, or the bound type's OID
	value         *Value                // owned value
	upName        string                // exact user-provided type=value text
	attributeType *schema.AttributeType // non-owning schema binding, nil when schema-naive
	sm            *schema.Manager       // manager the binding was resolved against
	h             atomic.Uint32         // cached hash, 0 until computed
}

// NewAva creates an Ava from an attribute type and a string value.
// With a nil Manager the Ava is schema-naive: the normalized type is
// the lower-cased, trimmed type and the value is kept as-is. With a
// Manager the attribute type is resolved, the value validated against
// its syntax, and the normalized type becomes the type's OID.
func NewAva(sm *schema.Manager, upType, upValue string) (*Ava, error) {
	return newAva(sm, upType, []byte(upValue), true)
}

// NewBinaryAva creates an Ava holding a binary (non-human-readable)
// value.
func NewBinaryAva(sm *schema.Manager, upType string, value []byte) (*Ava, error) {
	return newAva(sm, upType, value, false)
}

func newAva(sm *schema.Manager, upType string, raw []byte, hr bool) (*Ava, error) {
	normType := strings.ToLower(strings.TrimSpace(upType))
	if normType == "" {
		return nil, ErrEmptyType
	}

	a := &Ava{
		upType:   upType,
		normType: normType,
	}

	if sm == nil {
		if hr {
			a.value = NewStringValue(string(raw))
		} else {
			a.value = NewBinaryValue(raw)
		}
		a.upName = a.buildName()
		a.h.Store(a.computeHash())
		return a, nil
	}

	at, err := sm.AttributeType(normType)
	if err != nil {
		if !sm.IsRelaxed() {
			return nil, &SchemaError{Type: upType, Err: err}
		}
		// Relaxed mode: stay schema-naive but remember the manager for
		// later resolution attempts during comparison.
		a.sm = sm
		if hr {
			a.value = NewStringValue(string(raw))
		} else {
			a.value = NewBinaryValue(raw)
		}
		a.upName = a.buildName()
		a.h.Store(a.computeHash())
		return a, nil
	}

	value, err := NewSchemaValue(sm, at, raw)
	if err != nil {
		return nil, err
	}

	a.normType = at.OID
	a.value = value
	a.attributeType = at
	a.sm = sm
	a.upName = a.buildName()
	a.h.Store(a.computeHash())
	return a, nil
}

// newRawAva is the parser-internal constructor: all fields arrive
// pre-computed, upName verbatim from the input text.
func newRawAva(upType, normType, upName string, value *Value) *Ava {
	a := &Ava{
		upType:   upType,
		normType: normType,
		value:    value,
		upName:   upName,
	}
	a.h.Store(a.computeHash())
	return a
}

// buildName renders the canonical type=value text for a constructed Ava.
func (a *Ava) buildName() string {
	if !a.value.hr {
		return a.upType + "=#" + hexEncode(a.value.up)
	}
	return a.upType + "=" + EscapeValue(a.value.up)
}

// hexEncode renders bytes as uppercase hex.
func hexEncode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0x0F])
	}
	return sb.String()
}

// ApplySchema late-binds a schema manager to the Ava, returning a new
// instance. The attribute type is resolved from the normalized type,
// the value re-normalized through the type's equality matching rule,
// and the result validated against the type's syntax. In relaxed mode
// a failed resolution leaves the copy schema-naive; in strict mode it
// is an error. The user-provided name is preserved verbatim.
func (a *Ava) ApplySchema(sm *schema.Manager) (*Ava, error) {
	if sm == nil {
		return a.clone(), nil
	}

	at, err := sm.AttributeType(a.normType)
	if err != nil {
		if sm.IsRelaxed() {
			c := a.clone()
			c.sm = sm
			return c, nil
		}
		return nil, &SchemaError{Type: a.upType, Err: err}
	}

	value, err := NewSchemaValue(sm, at, a.value.up)
	if err != nil {
		return nil, err
	}

	c := &Ava{
		upType:        a.upType,
		normType:      at.OID,
		value:         value,
		upName:        a.upName,
		attributeType: at,
		sm:            sm,
	}
	c.h.Store(c.computeHash())
	return c, nil
}

// clone returns a copy of the Ava with the same binding and cached hash.
func (a *Ava) clone() *Ava {
	c := &Ava{
		upType:        a.upType,
		normType:      a.normType,
		value:         a.value.Clone(),
		upName:        a.upName,
		attributeType: a.attributeType,
		sm:            a.sm,
	}
	c.h.Store(a.h.Load())
	return c
}

// GetType returns the attribute type exactly as written.
func (a *Ava) GetType() string {
	return a.upType
}

// GetNormType returns the normalized attribute type: the lower-cased,
// trimmed name, or the bound attribute type's OID.
func (a *Ava) GetNormType() string {
	return a.normType
}

// GetValue returns the attribute value.
func (a *Ava) GetValue() *Value {
	return a.value
}

// AttributeType returns the bound schema descriptor, or nil when the
// Ava is schema-naive.
func (a *Ava) AttributeType() *schema.AttributeType {
	return a.attributeType
}

// IsSchemaAware reports whether the Ava is bound to a schema attribute
// type.
func (a *Ava) IsSchemaAware() bool {
	return a.attributeType != nil
}

// GetName returns the exact user-provided type=value text.
func (a *Ava) GetName() string {
	return a.upName
}

// String returns the exact user-provided type=value text.
func (a *Ava) String() string {
	return a.upName
}

// GetEscaped renders the canonical RFC 4514 text form regardless of how
// the Ava was constructed. Binary values are rendered in the hexstring
// form.
func (a *Ava) GetEscaped() string {
	return a.buildName()
}

// Equal reports whether two Avas assert the same type and value.
// Types compare by resolved attribute type identity when either side is
// schema-bound, by normalized name otherwise. Values compare through
// the equality matching rule when available.
func (a *Ava) Equal(other *Ava) bool {
	if a == other {
		return true
	}
	if other == nil {
		return false
	}

	if a.attributeType != nil || other.attributeType != nil {
		sm := a.sm
		if sm == nil {
			sm = other.sm
		}
		atA, atB := a.attributeType, other.attributeType
		if atA == nil && sm != nil {
			atA, _ = sm.AttributeType(a.normType)
		}
		if atB == nil && sm != nil {
			atB, _ = sm.AttributeType(other.normType)
		}
		if atA != nil && atB != nil {
			if atA != atB {
				return false
			}
		} else if a.normType != other.normType {
			return false
		}
	} else if a.normType != other.normType {
		return false
	}

	if a.attributeType != nil && a.sm != nil {
		eq, err := a.sm.EqualityRule(a.attributeType)
		if err == nil && eq != nil {
			if cmp, cerr := eq.Compare(a.value.up, other.value.up); cerr == nil {
				return cmp == 0
			}
		}
		if !a.value.hr {
			return bytes.Equal(a.value.up, other.value.up)
		}
		return a.value.String() == other.value.String()
	}

	return a.value.Equal(other.value)
}

// Compare orders two Avas: by normalized type first, then by value.
// Schema-bound Avas use the attribute type's ordering matching rule
// when one is declared, falling back to bytewise comparison for binary
// values.
func (a *Ava) Compare(other *Ava) int {
	if c := strings.Compare(a.normType, other.normType); c != 0 {
		return c
	}

	if a.attributeType != nil && a.sm != nil {
		ord, err := a.sm.OrderingRule(a.attributeType)
		if err == nil && ord != nil {
			if cmp, cerr := ord.Compare(a.value.up, other.value.up); cerr == nil {
				return cmp
			}
		}
		if !a.value.hr {
			return bytes.Compare(a.value.up, other.value.up)
		}
	}

	return a.value.Compare(other.value)
}

// Hash returns the cached hash of the Ava, computing it on first use.
// Concurrent callers may race to compute the same value; the result is
// deterministic so redundant computation is harmless.
func (a *Ava) Hash() uint32 {
	if h := a.h.Load(); h != 0 {
		return h
	}
	h := a.computeHash()
	a.h.Store(h)
	return h
}

// computeHash folds the normalized type and normalized value into a
// 32-bit hash (seed 37, multiplier 17).
func (a *Ava) computeHash() uint32 {
	h := uint32(37)
	h = h*17 + hashBytes([]byte(a.normType))
	h = h*17 + hashBytes(a.value.norm)
	return h
}

// hashBytes hashes a byte slice with FNV-1a.
func hashBytes(b []byte) uint32 {
	f := fnv.New32a()
	f.Write(b)
	return f.Sum32()
}
