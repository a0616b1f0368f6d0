package dn

import (
	"strings"
	"sync/atomic"

	"github.com/KilimcininKorOglu/ldapdn/schema"
)

// Rdn is a relative distinguished name: an ordered, deduplicated
// collection of one or more Avas forming a single naming component.
//
// The overwhelmingly common case is a single-valued RDN, which is held
// in a dedicated field to avoid allocating collections. Adding a second
// Ava promotes the Rdn to the multi-valued representation: a flat list
// kept in ascending Ava order plus per-type buckets for lookup.
//
// Rdns are immutable after construction. Exact duplicates offered on
// any insertion path are silently ignored.
type Rdn struct {
	upName   string            // exact user-provided text
	normName string            // canonical type=value list, '+'-joined in ascending order
	ava      *Ava              // single-valued fast representation
	avas     []*Ava            // multi-valued flat list, ascending Ava order
	buckets  map[string][]*Ava // normalized type -> Avas sharing that type, ascending
	nbAvas   int               // count; selects the active representation
	sm       *schema.Manager   // manager the Rdn was resolved against, nil when naive
	h        atomic.Uint32     // cached hash, 0 until computed
}

// NewRdn builds an Rdn from one or more Avas. With a non-nil Manager
// every Ava is (re-)bound to the schema first. Exact duplicates are
// silently dropped; at least one Ava must remain.
func NewRdn(sm *schema.Manager, avas ...*Ava) (*Rdn, error) {
	if len(avas) == 0 {
		return nil, ErrInvalidRdn
	}

	r := &Rdn{sm: sm}
	for _, a := range avas {
		if a == nil {
			return nil, ErrInvalidRdn
		}
		if sm != nil {
			bound, err := a.ApplySchema(sm)
			if err != nil {
				return nil, err
			}
			a = bound
		}
		r.addAva(a)
	}

	r.upName = r.joinNames()
	r.finalize()
	return r, nil
}

// addAva merges an Ava into the collection, keeping ascending order and
// silently ignoring exact duplicates. Parser-internal: the Rdn must not
// yet be published.
func (r *Rdn) addAva(a *Ava) {
	switch r.nbAvas {
	case 0:
		r.ava = a
		r.nbAvas = 1
	case 1:
		if r.ava.Equal(a) {
			return
		}
		// Promote to the multi-valued representation.
		first := r.ava
		r.ava = nil
		r.avas = []*Ava{first}
		r.buckets = map[string][]*Ava{first.GetNormType(): {first}}
		if r.insertOrdered(a) {
			r.nbAvas = 2
		} else {
			// The ordered insert found a duplicate; keep the
			// single-valued form so the count matches the stored Avas.
			r.ava = first
			r.avas = nil
			r.buckets = nil
		}
	default:
		if r.insertOrdered(a) {
			r.nbAvas++
		}
	}
}

// insertOrdered inserts an Ava into the flat list and its type bucket
// at the position given by Ava.Compare. Returns false when an exact
// match already exists.
func (r *Rdn) insertOrdered(a *Ava) bool {
	pos := len(r.avas)
	for i, existing := range r.avas {
		cmp := a.Compare(existing)
		if cmp == 0 {
			return false
		}
		if cmp < 0 {
			pos = i
			break
		}
	}
	r.avas = append(r.avas, nil)
	copy(r.avas[pos+1:], r.avas[pos:])
	r.avas[pos] = a

	bucket := r.buckets[a.GetNormType()]
	bpos := len(bucket)
	for i, existing := range bucket {
		if a.Compare(existing) < 0 {
			bpos = i
			break
		}
	}
	bucket = append(bucket, nil)
	copy(bucket[bpos+1:], bucket[bpos:])
	bucket[bpos] = a
	r.buckets[a.GetNormType()] = bucket
	return true
}

// setUpName records the verbatim user-provided text. Parser-internal.
func (r *Rdn) setUpName(s string) {
	r.upName = s
}

// clear resets the Rdn to empty so a parser can retry after a failed
// fast-path attempt. Parser-internal.
func (r *Rdn) clear() {
	r.upName = ""
	r.normName = ""
	r.ava = nil
	r.avas = nil
	r.buckets = nil
	r.nbAvas = 0
	r.h.Store(0)
}

// finalize computes the normalized name and the cached hash. Called
// once construction is complete, before the Rdn is published.
func (r *Rdn) finalize() {
	r.normName = r.buildNormName()
	r.h.Store(r.computeHash())
}

// joinNames renders the canonical user-provided text from the contained
// Avas, for Rdns not built by a parser.
func (r *Rdn) joinNames() string {
	if r.nbAvas == 1 {
		return r.ava.GetName()
	}
	parts := make([]string, len(r.avas))
	for i, a := range r.avas {
		parts[i] = a.GetName()
	}
	return strings.Join(parts, "+")
}

// buildNormName walks the Avas in ascending order joining
// type=normalizedValue with '+'.
func (r *Rdn) buildNormName() string {
	switch r.nbAvas {
	case 0:
		return ""
	case 1:
		return normAvaName(r.ava)
	default:
		parts := make([]string, len(r.avas))
		for i, a := range r.avas {
			parts[i] = normAvaName(a)
		}
		return strings.Join(parts, "+")
	}
}

// normAvaName renders the normalized type=value text of one Ava.
func normAvaName(a *Ava) string {
	if !a.value.hr {
		return a.normType + "=#" + hexEncode(a.value.norm)
	}
	return a.normType + "=" + EscapeValue(a.value.norm)
}

// Size returns the number of Avas in the Rdn.
func (r *Rdn) Size() int {
	return r.nbAvas
}

// GetAva returns the first Ava in ascending order, or nil for an empty
// Rdn.
func (r *Rdn) GetAva() *Ava {
	switch r.nbAvas {
	case 0:
		return nil
	case 1:
		return r.ava
	default:
		return r.avas[0]
	}
}

// Avas returns the contained Avas in ascending order.
func (r *Rdn) Avas() []*Ava {
	switch r.nbAvas {
	case 0:
		return nil
	case 1:
		return []*Ava{r.ava}
	default:
		out := make([]*Ava, len(r.avas))
		copy(out, r.avas)
		return out
	}
}

// GetValue returns the value of the first Ava carrying the given
// attribute type (name or OID), or the empty string when the type is
// not present.
func (r *Rdn) GetValue(attributeType string) string {
	norm := strings.ToLower(strings.TrimSpace(attributeType))
	if r.sm != nil {
		if at, err := r.sm.AttributeType(norm); err == nil {
			norm = at.OID
		}
	}

	switch r.nbAvas {
	case 0:
		return ""
	case 1:
		if r.ava.GetNormType() == norm {
			return r.ava.GetValue().String()
		}
	default:
		if bucket := r.buckets[norm]; len(bucket) > 0 {
			return bucket[0].GetValue().String()
		}
	}
	return ""
}

// GetName returns the exact user-provided text of the Rdn.
func (r *Rdn) GetName() string {
	return r.upName
}

// String returns the exact user-provided text of the Rdn.
func (r *Rdn) String() string {
	return r.upName
}

// GetNormName returns the canonical normalized form: ascending
// type=normalizedValue pairs joined by '+'.
func (r *Rdn) GetNormName() string {
	return r.normName
}

// GetEscaped renders the canonical RFC 4514 escaped text regardless of
// how the Rdn was constructed.
func (r *Rdn) GetEscaped() string {
	switch r.nbAvas {
	case 0:
		return ""
	case 1:
		return r.ava.GetEscaped()
	default:
		parts := make([]string, len(r.avas))
		for i, a := range r.avas {
			parts[i] = a.GetEscaped()
		}
		return strings.Join(parts, "+")
	}
}

// Equal reports whether two Rdns contain the same assertions. For
// multi-valued Rdns the comparison is order-insensitive: every Ava of
// the other Rdn must match one in this Rdn's buckets.
func (r *Rdn) Equal(other *Rdn) bool {
	if r == other {
		return true
	}
	if other == nil || r.nbAvas != other.nbAvas {
		return false
	}

	switch r.nbAvas {
	case 0:
		return true
	case 1:
		return r.ava.Equal(other.ava)
	default:
		for _, o := range other.avas {
			if !r.containsAva(o) {
				return false
			}
		}
		return true
	}
}

// containsAva checks the per-type buckets for an Ava equal to the given
// one.
func (r *Rdn) containsAva(o *Ava) bool {
	for _, a := range r.buckets[o.GetNormType()] {
		if a.Equal(o) {
			return true
		}
	}
	return false
}

// Compare orders two Rdns: by Ava count first, then by delegation for
// single-valued Rdns. Multi-valued schema-bound Rdns compare by their
// precomputed normalized names; naive ones positionally, both sides
// being in canonical ascending order.
func (r *Rdn) Compare(other *Rdn) int {
	if other == nil {
		if r.nbAvas == 0 {
			return 0
		}
		return 1
	}
	if r.nbAvas != other.nbAvas {
		return r.nbAvas - other.nbAvas
	}

	switch r.nbAvas {
	case 0:
		return 0
	case 1:
		return r.ava.Compare(other.ava)
	default:
		if r.sm != nil && other.sm != nil {
			return strings.Compare(r.normName, other.normName)
		}
		for i, a := range r.avas {
			if c := a.Compare(other.avas[i]); c != 0 {
				return c
			}
		}
		return 0
	}
}

// ApplySchema re-normalizes every contained Ava against a new schema
// context and returns the resulting Rdn. The user-provided text is
// preserved verbatim; the normalized name is rebuilt. This never
// mutates the receiver.
func (r *Rdn) ApplySchema(sm *schema.Manager) (*Rdn, error) {
	c := &Rdn{sm: sm}
	for _, a := range r.Avas() {
		bound, err := a.ApplySchema(sm)
		if err != nil {
			return nil, err
		}
		c.addAva(bound)
	}
	c.upName = r.upName
	c.finalize()
	return c, nil
}

// Clone returns an independent copy of the Rdn in the same schema
// context.
func (r *Rdn) Clone() *Rdn {
	c := &Rdn{sm: r.sm}
	for _, a := range r.Avas() {
		c.addAva(a.clone())
	}
	c.upName = r.upName
	c.finalize()
	return c
}

// Hash returns the cached hash of the Rdn, computing it on first use.
func (r *Rdn) Hash() uint32 {
	if h := r.h.Load(); h != 0 {
		return h
	}
	h := r.computeHash()
	r.h.Store(h)
	return h
}

// computeHash folds the contained Ava hashes in ascending order
// (seed 37, multiplier 17).
func (r *Rdn) computeHash() uint32 {
	h := uint32(37)
	for _, a := range r.Avas() {
		h = h*17 + a.Hash()
	}
	return h
}
