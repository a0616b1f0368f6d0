package schema

import (
	"bytes"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Matching rule errors.
var (
	// ErrNormalization is returned when a value cannot be normalized by
	// a matching rule (e.g. a non-integer value under integerMatch).
	ErrNormalization = errors.New("schema: value cannot be normalized by matching rule")
)

// Normalizer converts a value to its canonical form under a matching rule.
type Normalizer func(value []byte) ([]byte, error)

// Comparator compares two normalized values, returning a negative
// number, zero, or a positive number as a sorts before, equal to, or
// after b.
type Comparator func(a, b []byte) int

// MatchingRule defines how attribute values are compared for equality,
// ordering, and substring matching. Unlike a bare schema description,
// a MatchingRule carries the executable normalizer and comparator the
// name model invokes during AVA comparison.
type MatchingRule struct {
	OID        string
	Name       string
	Names      []string // Aliases
	Desc       string
	Syntax     string // Syntax OID this rule applies to
	Obsolete   bool
	Normalizer Normalizer
	Comparator Comparator
}

// NewMatchingRule creates a new MatchingRule with the given OID and name.
func NewMatchingRule(oid, name string) *MatchingRule {
	return &MatchingRule{
		OID:   oid,
		Name:  name,
		Names: []string{name},
	}
}

// Normalize applies the rule's normalizer to the value. Rules without
// a normalizer return the value unchanged.
func (mr *MatchingRule) Normalize(value []byte) ([]byte, error) {
	if mr.Normalizer == nil {
		return value, nil
	}
	return mr.Normalizer(value)
}

// Compare compares two values after normalizing both. Rules without a
// comparator fall back to a bytewise unsigned comparison.
func (mr *MatchingRule) Compare(a, b []byte) (int, error) {
	na, err := mr.Normalize(a)
	if err != nil {
		return 0, err
	}
	nb, err := mr.Normalize(b)
	if err != nil {
		return 0, err
	}
	if mr.Comparator == nil {
		return bytes.Compare(na, nb), nil
	}
	return mr.Comparator(na, nb), nil
}

// Standard matching rule OIDs (RFC 4517).
const (
	MatchObjectIdentifier      = "2.5.13.0"
	MatchDistinguishedName     = "2.5.13.1"
	MatchCaseIgnore            = "2.5.13.2"
	MatchCaseIgnoreOrdering    = "2.5.13.3"
	MatchCaseExact             = "2.5.13.5"
	MatchCaseExactOrdering     = "2.5.13.6"
	MatchNumericString         = "2.5.13.8"
	MatchBoolean               = "2.5.13.13"
	MatchInteger               = "2.5.13.14"
	MatchIntegerOrdering       = "2.5.13.15"
	MatchOctetString           = "2.5.13.17"
	MatchTelephoneNumber       = "2.5.13.20"
	MatchGeneralizedTime       = "2.5.13.27"
	MatchGeneralizedTimeOrder  = "2.5.13.28"
	MatchCaseIgnoreIA5         = "1.3.6.1.4.1.1466.109.114.2"
	MatchCaseExactIA5          = "1.3.6.1.4.1.1466.109.114.1"
	MatchUUID                  = "1.3.6.1.1.16.2"
	MatchUUIDOrdering          = "1.3.6.1.1.16.3"
)

// NormalizeCaseIgnore trims leading/trailing spaces, collapses internal
// space runs to a single space, and lower-cases the result. This is the
// RFC 4518 string preparation used by caseIgnoreMatch, reduced to the
// ASCII/space handling the naming attributes need.
func NormalizeCaseIgnore(value []byte) ([]byte, error) {
	norm, err := NormalizeCaseExact(value)
	if err != nil {
		return nil, err
	}
	return bytes.ToLower(norm), nil
}

// NormalizeCaseExact trims leading/trailing spaces and collapses
// internal space runs to a single space, preserving case.
func NormalizeCaseExact(value []byte) ([]byte, error) {
	trimmed := bytes.Trim(value, " ")
	out := make([]byte, 0, len(trimmed))
	space := false
	for _, b := range trimmed {
		if b == ' ' {
			space = true
			continue
		}
		if space {
			out = append(out, ' ')
			space = false
		}
		out = append(out, b)
	}
	return out, nil
}

// NormalizeInteger strips spaces and redundant leading zeros from an
// integer value. A value that is not a valid integer string is an error.
func NormalizeInteger(value []byte) ([]byte, error) {
	s := strings.TrimSpace(string(value))
	if !ValidateInteger([]byte(s)) {
		return nil, ErrNormalization
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
		neg = false
	}
	if neg {
		s = "-" + s
	}
	return []byte(s), nil
}

// CompareInteger compares two normalized integer values numerically.
func CompareInteger(a, b []byte) int {
	sa, sb := string(a), string(b)
	negA := strings.HasPrefix(sa, "-")
	negB := strings.HasPrefix(sb, "-")
	if negA != negB {
		if negA {
			return -1
		}
		return 1
	}
	sa = strings.TrimPrefix(sa, "-")
	sb = strings.TrimPrefix(sb, "-")
	cmp := 0
	if len(sa) != len(sb) {
		if len(sa) < len(sb) {
			cmp = -1
		} else {
			cmp = 1
		}
	} else {
		cmp = strings.Compare(sa, sb)
	}
	if negA {
		return -cmp
	}
	return cmp
}

// NormalizeNumericString removes all spaces from a numeric string.
func NormalizeNumericString(value []byte) ([]byte, error) {
	out := make([]byte, 0, len(value))
	for _, b := range value {
		if b != ' ' {
			out = append(out, b)
		}
	}
	return out, nil
}

// NormalizeTelephoneNumber removes spaces and hyphens, the characters
// RFC 4517 declares insignificant for telephoneNumberMatch.
func NormalizeTelephoneNumber(value []byte) ([]byte, error) {
	out := make([]byte, 0, len(value))
	for _, b := range value {
		if b != ' ' && b != '-' {
			out = append(out, b)
		}
	}
	return out, nil
}

// NormalizeBoolean upper-cases and trims a boolean value.
func NormalizeBoolean(value []byte) ([]byte, error) {
	norm := bytes.ToUpper(bytes.TrimSpace(value))
	if !ValidateBoolean(norm) {
		return nil, ErrNormalization
	}
	return norm, nil
}

// NormalizeOID lower-cases and trims an OID or descriptor name.
func NormalizeOID(value []byte) ([]byte, error) {
	return bytes.ToLower(bytes.TrimSpace(value)), nil
}

// NormalizeUUID parses a UUID value and renders it in the canonical
// lower-case hyphenated form.
func NormalizeUUID(value []byte) ([]byte, error) {
	u, err := uuid.ParseBytes(bytes.TrimSpace(value))
	if err != nil {
		return nil, ErrNormalization
	}
	return []byte(u.String()), nil
}

// defaultMatchingRules returns the standard matching rules with their
// executable normalizers and comparators bound.
func defaultMatchingRules() []*MatchingRule {
	rules := []*MatchingRule{
		{OID: MatchObjectIdentifier, Name: "objectIdentifierMatch", Syntax: SyntaxOID, Normalizer: NormalizeOID},
		{OID: MatchDistinguishedName, Name: "distinguishedNameMatch", Syntax: SyntaxDN, Normalizer: NormalizeCaseIgnore},
		{OID: MatchCaseIgnore, Name: "caseIgnoreMatch", Syntax: SyntaxDirectoryString, Normalizer: NormalizeCaseIgnore},
		{OID: MatchCaseIgnoreOrdering, Name: "caseIgnoreOrderingMatch", Syntax: SyntaxDirectoryString, Normalizer: NormalizeCaseIgnore},
		{OID: MatchCaseExact, Name: "caseExactMatch", Syntax: SyntaxDirectoryString, Normalizer: NormalizeCaseExact},
		{OID: MatchCaseExactOrdering, Name: "caseExactOrderingMatch", Syntax: SyntaxDirectoryString, Normalizer: NormalizeCaseExact},
		{OID: MatchNumericString, Name: "numericStringMatch", Syntax: SyntaxNumericString, Normalizer: NormalizeNumericString},
		{OID: MatchBoolean, Name: "booleanMatch", Syntax: SyntaxBoolean, Normalizer: NormalizeBoolean},
		{OID: MatchInteger, Name: "integerMatch", Syntax: SyntaxInteger, Normalizer: NormalizeInteger, Comparator: CompareInteger},
		{OID: MatchIntegerOrdering, Name: "integerOrderingMatch", Syntax: SyntaxInteger, Normalizer: NormalizeInteger, Comparator: CompareInteger},
		{OID: MatchOctetString, Name: "octetStringMatch", Syntax: SyntaxOctetString},
		{OID: MatchTelephoneNumber, Name: "telephoneNumberMatch", Syntax: SyntaxTelephoneNumber, Normalizer: NormalizeTelephoneNumber},
		{OID: MatchGeneralizedTime, Name: "generalizedTimeMatch", Syntax: SyntaxGeneralizedTime},
		{OID: MatchGeneralizedTimeOrder, Name: "generalizedTimeOrderingMatch", Syntax: SyntaxGeneralizedTime},
		{OID: MatchCaseIgnoreIA5, Name: "caseIgnoreIA5Match", Syntax: SyntaxIA5String, Normalizer: NormalizeCaseIgnore},
		{OID: MatchCaseExactIA5, Name: "caseExactIA5Match", Syntax: SyntaxIA5String, Normalizer: NormalizeCaseExact},
		{OID: MatchUUID, Name: "UUIDMatch", Syntax: SyntaxUUID, Normalizer: NormalizeUUID},
		{OID: MatchUUIDOrdering, Name: "UUIDOrderingMatch", Syntax: SyntaxUUID, Normalizer: NormalizeUUID},
	}
	for _, mr := range rules {
		mr.Names = []string{mr.Name}
	}
	return rules
}
