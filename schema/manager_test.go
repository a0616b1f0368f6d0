package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager(Strict)

	at, err := m.AttributeType("cn")
	require.NoError(t, err)
	assert.Equal(t, "2.5.4.3", at.OID)
	assert.Equal(t, "cn", at.Name)

	// Aliases and OIDs resolve to the same descriptor.
	byAlias, err := m.AttributeType("commonName")
	require.NoError(t, err)
	byOID, err := m.AttributeType("2.5.4.3")
	require.NoError(t, err)
	assert.Same(t, at, byAlias)
	assert.Same(t, at, byOID)
}

func TestManagerLookupCaseInsensitive(t *testing.T) {
	m := NewManager(Strict)

	for _, key := range []string{"CN", "cn", "CommonName", "  cn  "} {
		at, err := m.AttributeType(key)
		require.NoError(t, err, "key %q", key)
		assert.Equal(t, "2.5.4.3", at.OID)
	}
}

func TestManagerUnknownLookups(t *testing.T) {
	m := NewManager(Strict)

	_, err := m.AttributeType("nosuch")
	assert.ErrorIs(t, err, ErrAttributeTypeNotFound)

	_, err = m.MatchingRule("nosuchRule")
	assert.ErrorIs(t, err, ErrMatchingRuleNotFound)

	_, err = m.Syntax("9.9.9")
	assert.ErrorIs(t, err, ErrSyntaxNotFound)

	assert.False(t, m.HasAttributeType("nosuch"))
	assert.True(t, m.HasAttributeType("ou"))
}

func TestManagerMode(t *testing.T) {
	assert.Equal(t, Strict, NewManager(Strict).Mode())
	assert.False(t, NewManager(Strict).IsRelaxed())
	assert.True(t, NewManager(Relaxed).IsRelaxed())
	assert.Equal(t, "strict", Strict.String())
	assert.Equal(t, "relaxed", Relaxed.String())
}

func TestEqualityRuleWalksSuperiorChain(t *testing.T) {
	m := NewManager(Strict)

	// cn declares no EQUALITY of its own; it inherits caseIgnoreMatch
	// from name.
	at, err := m.AttributeType("cn")
	require.NoError(t, err)
	assert.False(t, at.HasEqualityMatching())

	eq, err := m.EqualityRule(at)
	require.NoError(t, err)
	require.NotNil(t, eq)
	assert.Equal(t, MatchCaseIgnore, eq.OID)
}

func TestOrderingRule(t *testing.T) {
	m := NewManager(Strict)

	at, err := m.AttributeType("uidNumber")
	require.NoError(t, err)

	ord, err := m.OrderingRule(at)
	require.NoError(t, err)
	require.NotNil(t, ord)
	assert.Equal(t, MatchIntegerOrdering, ord.OID)

	// userPassword has no ordering rule anywhere.
	pw, err := m.AttributeType("userPassword")
	require.NoError(t, err)
	ord, err = m.OrderingRule(pw)
	require.NoError(t, err)
	assert.Nil(t, ord)
}

func TestSyntaxOfWalksSuperiorChain(t *testing.T) {
	m := NewManager(Strict)

	// member SUP distinguishedName SYNTAX DN.
	at, err := m.AttributeType("member")
	require.NoError(t, err)

	syn, err := m.SyntaxOf(at)
	require.NoError(t, err)
	require.NotNil(t, syn)
	assert.Equal(t, SyntaxDN, syn.OID)
}

func TestRuleForCycleGuard(t *testing.T) {
	m := NewEmptyManager(Strict)
	m.RegisterAttributeType(&AttributeType{OID: "1.1", Name: "a", Names: []string{"a"}, Superior: "b"})
	m.RegisterAttributeType(&AttributeType{OID: "1.2", Name: "b", Names: []string{"b"}, Superior: "a"})

	at, err := m.AttributeType("a")
	require.NoError(t, err)

	// A definition cycle must terminate, not loop forever.
	eq, err := m.EqualityRule(at)
	require.NoError(t, err)
	assert.Nil(t, eq)
}

func TestRegisterOverride(t *testing.T) {
	m := NewManager(Strict)

	custom := NewAttributeType("9.9.9.1", "myAttr")
	custom.Equality = "caseExactMatch"
	custom.Syntax = SyntaxDirectoryString
	m.RegisterAttributeType(custom)

	at, err := m.AttributeType("myAttr")
	require.NoError(t, err)
	assert.Same(t, custom, at)
}
