package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution errors.
var (
	// ErrAttributeTypeNotFound is returned when a name or OID does not
	// resolve to a registered attribute type.
	ErrAttributeTypeNotFound = errors.New("schema: attribute type not found")

	// ErrMatchingRuleNotFound is returned when a name or OID does not
	// resolve to a registered matching rule.
	ErrMatchingRuleNotFound = errors.New("schema: matching rule not found")

	// ErrSyntaxNotFound is returned when an OID does not resolve to a
	// registered syntax.
	ErrSyntaxNotFound = errors.New("schema: syntax not found")
)

// Mode controls how the Manager reacts to resolution failures.
type Mode int

const (
	// Strict mode reports unknown attribute types as errors. This is
	// the mode a validating directory server runs in.
	Strict Mode = iota

	// Relaxed mode tolerates unknown attribute types: resolution still
	// returns ErrAttributeTypeNotFound, but callers are expected to
	// fall back to schema-naive handling instead of failing.
	Relaxed
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Relaxed:
		return "relaxed"
	default:
		return "unknown"
	}
}

// Manager is the schema registry the name model resolves attribute
// types, matching rules, and syntaxes against. Lookup keys are
// case-insensitive and alias-aware; both "cn" and "commonName" and the
// OID "2.5.4.3" resolve to the same descriptor.
//
// A Manager is read-mostly: registration happens at construction or
// load time, after which concurrent readers need no synchronization.
type Manager struct {
	mode           Mode
	attributeTypes map[string]*AttributeType
	matchingRules  map[string]*MatchingRule
	syntaxes       map[string]*Syntax
}

// NewManager creates a Manager in the given mode, seeded with the
// built-in core schema (RFC 4512/4519 naming attributes, RFC 4517
// matching rules and syntaxes).
func NewManager(mode Mode) *Manager {
	m := NewEmptyManager(mode)
	m.loadDefaults()
	return m
}

// NewEmptyManager creates a Manager in the given mode with no
// definitions registered. Mainly useful for tests and for building a
// schema purely from LDIF.
func NewEmptyManager(mode Mode) *Manager {
	return &Manager{
		mode:           mode,
		attributeTypes: make(map[string]*AttributeType),
		matchingRules:  make(map[string]*MatchingRule),
		syntaxes:       make(map[string]*Syntax),
	}
}

// Mode returns the resolution mode of this Manager.
func (m *Manager) Mode() Mode {
	return m.mode
}

// IsRelaxed returns true if the Manager tolerates resolution failures.
func (m *Manager) IsRelaxed() bool {
	return m.mode == Relaxed
}

// RegisterAttributeType registers an attribute type under its OID and
// all of its names.
func (m *Manager) RegisterAttributeType(at *AttributeType) {
	if at.OID != "" {
		m.attributeTypes[strings.ToLower(at.OID)] = at
	}
	for _, name := range at.Names {
		m.attributeTypes[strings.ToLower(name)] = at
	}
}

// RegisterMatchingRule registers a matching rule under its OID and all
// of its names.
func (m *Manager) RegisterMatchingRule(mr *MatchingRule) {
	if mr.OID != "" {
		m.matchingRules[strings.ToLower(mr.OID)] = mr
	}
	for _, name := range mr.Names {
		m.matchingRules[strings.ToLower(name)] = mr
	}
}

// RegisterSyntax registers a syntax under its OID.
func (m *Manager) RegisterSyntax(s *Syntax) {
	if s.OID != "" {
		m.syntaxes[s.OID] = s
	}
}

// AttributeType resolves a name or OID to an attribute type descriptor.
func (m *Manager) AttributeType(nameOrOID string) (*AttributeType, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrOID))
	if at, ok := m.attributeTypes[key]; ok {
		return at, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrAttributeTypeNotFound, nameOrOID)
}

// HasAttributeType reports whether a name or OID resolves to a
// registered attribute type.
func (m *Manager) HasAttributeType(nameOrOID string) bool {
	_, err := m.AttributeType(nameOrOID)
	return err == nil
}

// MatchingRule resolves a name or OID to a matching rule.
func (m *Manager) MatchingRule(nameOrOID string) (*MatchingRule, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrOID))
	if mr, ok := m.matchingRules[key]; ok {
		return mr, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMatchingRuleNotFound, nameOrOID)
}

// Syntax resolves an OID to a syntax definition.
func (m *Manager) Syntax(oid string) (*Syntax, error) {
	if s, ok := m.syntaxes[oid]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrSyntaxNotFound, oid)
}

// EqualityRule resolves the equality matching rule of an attribute
// type, walking the superior chain when the type declares none of its
// own. Returns nil without error when no rule is declared anywhere in
// the chain.
func (m *Manager) EqualityRule(at *AttributeType) (*MatchingRule, error) {
	return m.ruleFor(at, func(at *AttributeType) string { return at.Equality })
}

// OrderingRule resolves the ordering matching rule of an attribute
// type, walking the superior chain. Returns nil without error when no
// rule is declared.
func (m *Manager) OrderingRule(at *AttributeType) (*MatchingRule, error) {
	return m.ruleFor(at, func(at *AttributeType) string { return at.Ordering })
}

// SyntaxOf resolves the effective syntax of an attribute type, walking
// the superior chain. Returns nil without error when no syntax is
// declared.
func (m *Manager) SyntaxOf(at *AttributeType) (*Syntax, error) {
	const maxDepth = 16
	for depth := 0; at != nil && depth < maxDepth; depth++ {
		if at.Syntax != "" {
			return m.Syntax(at.Syntax)
		}
		if at.Superior == "" {
			break
		}
		sup, err := m.AttributeType(at.Superior)
		if err != nil {
			return nil, err
		}
		at = sup
	}
	return nil, nil
}

// ruleFor walks the superior chain resolving the first declared rule
// name via the selector. The depth limit guards against definition
// cycles in loaded schemas.
func (m *Manager) ruleFor(at *AttributeType, selector func(*AttributeType) string) (*MatchingRule, error) {
	const maxDepth = 16
	for depth := 0; at != nil && depth < maxDepth; depth++ {
		if name := selector(at); name != "" {
			return m.MatchingRule(name)
		}
		if at.Superior == "" {
			break
		}
		sup, err := m.AttributeType(at.Superior)
		if err != nil {
			return nil, err
		}
		at = sup
	}
	return nil, nil
}

// loadDefaults registers the built-in syntaxes, matching rules, and
// attribute types.
func (m *Manager) loadDefaults() {
	for _, s := range defaultSyntaxes() {
		m.RegisterSyntax(s)
	}
	for _, mr := range defaultMatchingRules() {
		m.RegisterMatchingRule(mr)
	}
	for _, def := range defaultAttributeTypes {
		at, err := ParseAttributeTypeDescription(def)
		if err != nil {
			// Built-in definitions are fixed strings; a parse failure
			// here is a programming error.
			panic("schema: invalid built-in attribute type: " + err.Error())
		}
		m.RegisterAttributeType(at)
	}
}
