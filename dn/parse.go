package dn

import (
	"strings"

	"github.com/KilimcininKorOglu/ldapdn/schema"
)

// ParseRdn parses the RFC 4514 textual form of a relative distinguished
// name. A fast linear parser handles the common unquoted, unescaped,
// single-valued case; anything it finds too complex is retried with the
// full grammar parser after clearing partial state. The entire input
// must be consumed.
//
// With a non-nil Manager the result is schema-bound: attribute types
// resolve to their OIDs and values are validated and normalized. A
// strict-mode Manager rejects unknown attribute types; a relaxed-mode
// Manager leaves them schema-naive.
func ParseRdn(sm *schema.Manager, s string) (*Rdn, error) {
	if strings.TrimSpace(s) == "" {
		return nil, newSyntaxError(s, 0, "empty RDN")
	}

	r := &Rdn{}
	if !parseRdnFast(s, r) {
		r.clear()
		if err := parseRdnGrammar(s, r); err != nil {
			return nil, err
		}
	}

	if sm != nil {
		return r.ApplySchema(sm)
	}
	return r, nil
}

// ParseAva parses a single type=value assertion. Multi-valued input is
// rejected.
func ParseAva(sm *schema.Manager, s string) (*Ava, error) {
	r, err := ParseRdn(sm, s)
	if err != nil {
		return nil, err
	}
	if r.Size() != 1 {
		return nil, newSyntaxError(s, -1, "expected a single attribute-value assertion")
	}
	return r.GetAva(), nil
}

// parseRdnFast is the fast-path parser: a single linear scan covering
// the single-valued, unquoted, unescaped common case. It returns false
// when the input needs the full grammar (multi-valued, quoted, escaped,
// hexstring, or boundary whitespace in the value).
func parseRdnFast(s string, r *Rdn) bool {
	eq := strings.IndexByte(s, '=')
	if eq <= 0 {
		return false
	}

	upType := strings.Trim(s[:eq], " ")
	if upType == "" || !schema.ValidateOID([]byte(upType)) {
		return false
	}

	value := s[eq+1:]
	if len(value) > 0 && (value[0] == ' ' || value[0] == '#' || value[len(value)-1] == ' ') {
		return false
	}
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\', '"', '+', ',', ';', '<', '>', '=':
			return false
		}
	}

	r.addAva(newRawAva(upType, strings.ToLower(upType), s, NewStringValue(value)))
	r.setUpName(s)
	r.finalize()
	return true
}
