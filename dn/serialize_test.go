package dn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/ldapdn/schema"
)

func TestAvaSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ava  func(t *testing.T) *Ava
	}{
		{"plain", func(t *testing.T) *Ava { return mustAva(t, nil, "cn", "Test") }},
		{"escaped value", func(t *testing.T) *Ava { return mustAva(t, nil, "cn", "a,b") }},
		{"unicode value", func(t *testing.T) *Ava { return mustAva(t, nil, "cn", "Küche") }},
		{"binary value", func(t *testing.T) *Ava {
			a, err := NewBinaryAva(nil, "userPassword", []byte{0x00, 0xFF, 0x42})
			require.NoError(t, err)
			return a
		}},
		{"parsed", func(t *testing.T) *Ava {
			a, err := ParseAva(nil, `CN=Smith\, John`)
			require.NoError(t, err)
			return a
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.ava(t)
			data, err := a.MarshalBinary()
			require.NoError(t, err)

			got, err := UnmarshalAva(data, nil)
			require.NoError(t, err)

			assert.True(t, a.Equal(got))
			assert.Equal(t, a.GetName(), got.GetName())
			assert.Equal(t, a.GetType(), got.GetType())
			assert.Equal(t, a.GetNormType(), got.GetNormType())
			assert.Equal(t, a.GetValue().Bytes(), got.GetValue().Bytes())
			assert.Equal(t, a.Hash(), got.Hash())
		})
	}
}

func TestAvaSerializeSchemaRebind(t *testing.T) {
	sm := schema.NewManager(schema.Strict)
	a, err := NewAva(sm, "CN", "Test User")
	require.NoError(t, err)

	data, err := a.MarshalBinary()
	require.NoError(t, err)

	// Deserializing against a manager re-resolves the binding and
	// re-normalizes the value.
	got, err := UnmarshalAva(data, sm)
	require.NoError(t, err)
	assert.True(t, got.IsSchemaAware())
	assert.Equal(t, "2.5.4.3", got.GetNormType())
	assert.True(t, a.Equal(got))

	// Without a manager the instance comes back schema-naive but keeps
	// the serialized normalized type.
	naive, err := UnmarshalAva(data, nil)
	require.NoError(t, err)
	assert.False(t, naive.IsSchemaAware())
	assert.Equal(t, "2.5.4.3", naive.GetNormType())
}

func TestAvaSerializeStrictUnknownType(t *testing.T) {
	a, err := NewAva(nil, "nosuch", "x")
	require.NoError(t, err)

	data, err := a.MarshalBinary()
	require.NoError(t, err)

	_, err = UnmarshalAva(data, schema.NewManager(schema.Strict))
	assert.ErrorIs(t, err, schema.ErrAttributeTypeNotFound)

	got, err := UnmarshalAva(data, schema.NewManager(schema.Relaxed))
	require.NoError(t, err)
	assert.False(t, got.IsSchemaAware())
}

func TestAvaSerializeIncomplete(t *testing.T) {
	e := NewEncoder()
	err := (&Ava{}).Serialize(e)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Zero(t, e.Len(), "nothing partial is written")
}

func TestRdnSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"single", "cn=Test"},
		{"multi", "ou=test 1+cn=test 2"},
		{"escaped", `cn=Smith\, John`},
		{"binary", "userPassword=#DEADBEEF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRdn(nil, tt.input)
			require.NoError(t, err)

			data, err := r.MarshalBinary()
			require.NoError(t, err)

			got, err := UnmarshalRdn(data, nil)
			require.NoError(t, err)

			assert.True(t, r.Equal(got))
			assert.Equal(t, r.Size(), got.Size())
			assert.Equal(t, r.GetName(), got.GetName())
			assert.Equal(t, r.GetNormName(), got.GetNormName())
			assert.Equal(t, r.Hash(), got.Hash())
		})
	}
}

func TestRdnSerializeMixedRepresentation(t *testing.T) {
	// A two-valued RDN whose Avas differ only in representation must
	// write a count the payload actually contains and decode back equal.
	str := mustAva(t, nil, "cn", "ab")
	bin, err := NewBinaryAva(nil, "cn", []byte("ab"))
	require.NoError(t, err)

	r, err := NewRdn(nil, str, bin)
	require.NoError(t, err)
	require.Equal(t, 2, r.Size())

	data, err := r.MarshalBinary()
	require.NoError(t, err)

	got, err := UnmarshalRdn(data, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Size())
	assert.True(t, r.Equal(got))
	assert.Equal(t, r.Hash(), got.Hash())
}

func TestRdnSerializeMultiValuedLookup(t *testing.T) {
	r, err := ParseRdn(nil, "ou=beta+cn=alpha")
	require.NoError(t, err)

	data, err := r.MarshalBinary()
	require.NoError(t, err)

	got, err := UnmarshalRdn(data, nil)
	require.NoError(t, err)

	// The per-type buckets must be rebuilt on the way in.
	assert.Equal(t, "alpha", got.GetValue("cn"))
	assert.Equal(t, "beta", got.GetValue("ou"))
}

func TestRdnSerializeEmpty(t *testing.T) {
	e := NewEncoder()
	err := (&Rdn{}).Serialize(e)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Zero(t, e.Len())
}

func TestDecoderTruncated(t *testing.T) {
	r, err := ParseRdn(nil, "cn=Test")
	require.NoError(t, err)
	data, err := r.MarshalBinary()
	require.NoError(t, err)

	// Every prefix of a valid encoding must fail cleanly, never panic.
	for i := 0; i < len(data); i++ {
		_, err := UnmarshalRdn(data[:i], nil)
		require.Error(t, err, "prefix length %d", i)
		assert.ErrorIs(t, err, ErrTruncated, "prefix length %d", i)
	}
}

func TestDecoderBogusLength(t *testing.T) {
	// Count of 1, then a blob claiming more bytes than remain.
	data := []byte{0, 0, 0, 1, 0xFF, 0xFF, 0xFF, 0xFF, 'x'}
	_, err := UnmarshalRdn(data, nil)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestEncoderReuse(t *testing.T) {
	a := mustAva(t, nil, "cn", "one")
	b := mustAva(t, nil, "cn", "two")

	e := NewEncoder()
	require.NoError(t, a.Serialize(e))
	first := e.Len()
	require.NoError(t, b.Serialize(e))
	assert.Greater(t, e.Len(), first)

	d := NewDecoder(e.Bytes())
	gotA, err := DeserializeAva(d, nil)
	require.NoError(t, err)
	gotB, err := DeserializeAva(d, nil)
	require.NoError(t, err)
	assert.Zero(t, d.Remaining())

	assert.True(t, a.Equal(gotA))
	assert.True(t, b.Equal(gotB))

	e.Reset()
	assert.Zero(t, e.Len())
}
