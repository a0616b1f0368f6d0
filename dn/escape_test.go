package dn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
		want  string
	}{
		{"empty", []byte{}, ""},
		{"plain", []byte("testValue"), "testValue"},
		{"comma", []byte("a,b"), `a\,b`},
		{"plus", []byte("a+b"), `a\+b`},
		{"semicolon", []byte("a;b"), `a\;b`},
		{"angle brackets", []byte("<ab>"), `\<ab\>`},
		{"quote", []byte(`a"b`), `a\"b`},
		{"backslash", []byte(`a\b`), `a\\b`},
		{"equals", []byte("a=b"), `a\=b`},
		{"leading hash", []byte("#abc"), `\#abc`},
		{"interior hash", []byte("a#c"), "a#c"},
		{"leading space", []byte(" abc"), `\ abc`},
		{"trailing space", []byte("abc "), `abc\ `},
		{"interior space", []byte("a c"), "a c"},
		{"only space", []byte(" "), `\ `},
		{"nul byte", []byte{0x00}, `\00`},
		{"control byte", []byte{0x1F}, `\1F`},
		{"delete byte", []byte{0x7F}, `\7F`},
		{"two byte utf8", []byte{0xC2, 0xA1}, "¡"},
		{"three byte utf8", []byte{0xE0, 0xA4, 0x8E}, "ऎ"},
		{"four byte utf8", []byte{0xF0, 0x9F, 0x98, 0x80}, "\U0001f600"},
		{"stray continuation", []byte{0x80}, `\80`},
		{"truncated sequence", []byte{0xC2}, `\C2`},
		{"overlong two byte lead", []byte{0xC0, 0xAF}, `\C0\AF`},
		{"overlong three byte", []byte{0xE0, 0x9F, 0x80}, `\E0\9F\80`},
		{"utf16 surrogate", []byte{0xED, 0xA0, 0x80}, `\ED\A0\80`},
		{"beyond plane 16", []byte{0xF4, 0x90, 0x80, 0x80}, `\F4\90\80\80`},
		{"mixed", []byte("Lučić, J."), `Lučić\, J.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeValue(tt.value))
		})
	}
}

func TestUnescapeValue(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []byte
	}{
		{"empty", "", []byte{}},
		{"plain", "testValue", []byte("testValue")},
		{"escaped comma", `a\,b`, []byte("a,b")},
		{"escaped backslash", `a\\b`, []byte(`a\b`)},
		{"escaped hash", `\#abc`, []byte("#abc")},
		{"escaped leading space", `\ abc`, []byte(" abc")},
		{"hex escape", `\41\42`, []byte("AB")},
		{"hex escape lowercase", `\4a`, []byte("J")},
		{"quoted literal", `"a,b+c"`, []byte("a,b+c")},
		{"hexstring", "#4869", []byte("Hi")},
		{"hexstring lowercase", "#4a4b", []byte("JK")},
		{"interior space", "a c", []byte("a c")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnescapeValue(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnescapeValueErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unescaped comma", "a,b"},
		{"unescaped plus", "a+b"},
		{"unescaped semicolon", "a;b"},
		{"unescaped less than", "a<b"},
		{"unescaped greater than", "a>b"},
		{"unescaped quote", `a"b`},
		{"leading space", " abc"},
		{"trailing space", "abc "},
		{"dangling backslash", `abc\`},
		{"invalid escape", `a\zb`},
		{"half hex pair", `a\4`},
		{"odd hexstring", "#486"},
		{"empty hexstring", "#"},
		{"bad hex digit", "#48ZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnescapeValue(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

// Escaping then unescaping must return the original bytes for any
// input, including malformed UTF-8 and binary garbage.
func TestEscapeRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("simple"),
		[]byte("a,b+c;d<e>f\"g\\h=i"),
		[]byte("#leading"),
		[]byte(" padded "),
		{0x00, 0x01, 0x7F},
		{0xC2, 0xA1, 0x80, 0xFF},
		{0xE0, 0xA4, 0x8E},
		{0xED, 0xA0, 0x80},
		[]byte("café au lait"),
	}

	for _, in := range inputs {
		got, err := UnescapeValue(EscapeValue(in))
		require.NoError(t, err, "input %x", in)
		assert.Equal(t, in, got, "input %x", in)
	}
}
