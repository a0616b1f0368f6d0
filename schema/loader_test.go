package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSubschema = `# Subschema subentry
dn: cn=schema
objectClass: subschema
ldapSyntaxes: ( 1.3.6.1.4.1.1466.115.121.1.15 DESC 'Directory String' )
matchingRules: ( 2.5.13.2 NAME 'caseIgnoreMatch'
  SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )
attributeTypes: ( 9.9.9.1 NAME 'deptCode' DESC 'Department code'
  EQUALITY caseIgnoreMatch
  SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 SINGLE-VALUE )
attributeTypes: ( 9.9.9.2 NAME ( 'badge' 'badgeNumber' )
  EQUALITY integerMatch SYNTAX 1.3.6.1.4.1.1466.115.121.1.27 )
`

func TestLoadLDIF(t *testing.T) {
	m := NewManager(Strict)
	require.NoError(t, m.LoadLDIF(strings.NewReader(sampleSubschema)))

	dept, err := m.AttributeType("deptCode")
	require.NoError(t, err)
	assert.Equal(t, "9.9.9.1", dept.OID)
	assert.Equal(t, "caseIgnoreMatch", dept.Equality)
	assert.True(t, dept.SingleValue)

	badge, err := m.AttributeType("badgeNumber")
	require.NoError(t, err)
	assert.Equal(t, "9.9.9.2", badge.OID)
	assert.Equal(t, "badge", badge.Name)
}

func TestLoadLDIFBindsBuiltinBehavior(t *testing.T) {
	m := NewManager(Strict)
	require.NoError(t, m.LoadLDIF(strings.NewReader(sampleSubschema)))

	// The reloaded caseIgnoreMatch keeps the built-in normalizer.
	mr, err := m.MatchingRule("caseIgnoreMatch")
	require.NoError(t, err)
	require.NotNil(t, mr.Normalizer)

	norm, err := mr.Normalize([]byte("  AbC "))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(norm))

	// And the reloaded syntax keeps its validator.
	syn, err := m.Syntax(SyntaxDirectoryString)
	require.NoError(t, err)
	require.NotNil(t, syn.Validator)
	assert.False(t, syn.Validate([]byte{}))
}

func TestLoadLDIFIntoEmptyManager(t *testing.T) {
	m := NewEmptyManager(Relaxed)
	require.NoError(t, m.LoadLDIF(strings.NewReader(sampleSubschema)))

	assert.True(t, m.HasAttributeType("deptCode"))
	assert.False(t, m.HasAttributeType("cn"), "no built-ins were seeded")

	// Without a built-in under the same OID the rule stays inert.
	mr, err := m.MatchingRule("caseIgnoreMatch")
	require.NoError(t, err)
	assert.Nil(t, mr.Normalizer)
}

func TestLoadLDIFBadDefinition(t *testing.T) {
	m := NewManager(Strict)
	err := m.LoadLDIF(strings.NewReader("attributeTypes: ( 9.9 NAME 'broken )\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedString)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.ldif")
	require.NoError(t, os.WriteFile(path, []byte(sampleSubschema), 0o600))

	m := NewManager(Strict)
	require.NoError(t, m.LoadFile(path))
	assert.True(t, m.HasAttributeType("deptCode"))
}

func TestLoadFileMissing(t *testing.T) {
	m := NewManager(Strict)
	err := m.LoadFile(filepath.Join(t.TempDir(), "nope.ldif"))
	assert.ErrorIs(t, err, ErrSchemaFileNotFound)
}
