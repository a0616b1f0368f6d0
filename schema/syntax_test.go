package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDirectoryString(t *testing.T) {
	assert.True(t, ValidateDirectoryString([]byte("hello")))
	assert.True(t, ValidateDirectoryString([]byte("héllo")))
	assert.False(t, ValidateDirectoryString([]byte{}))
	assert.False(t, ValidateDirectoryString([]byte{0xFF, 0xFE}), "not UTF-8")
}

func TestValidateInteger(t *testing.T) {
	valid := []string{"0", "42", "-42", "+7", "007"}
	invalid := []string{"", "-", "+", "4.2", "abc", "4 2"}

	for _, v := range valid {
		assert.True(t, ValidateInteger([]byte(v)), "input %q", v)
	}
	for _, v := range invalid {
		assert.False(t, ValidateInteger([]byte(v)), "input %q", v)
	}
}

func TestValidateBoolean(t *testing.T) {
	assert.True(t, ValidateBoolean([]byte("TRUE")))
	assert.True(t, ValidateBoolean([]byte("FALSE")))
	assert.False(t, ValidateBoolean([]byte("true")))
	assert.False(t, ValidateBoolean([]byte("1")))
}

func TestValidateIA5String(t *testing.T) {
	assert.True(t, ValidateIA5String([]byte("ascii only")))
	assert.True(t, ValidateIA5String([]byte{}))
	assert.False(t, ValidateIA5String([]byte("café")))
}

func TestValidatePrintableString(t *testing.T) {
	assert.True(t, ValidatePrintableString([]byte("John Smith (Dev)")))
	assert.True(t, ValidatePrintableString([]byte("a+b=c?")))
	assert.False(t, ValidatePrintableString([]byte{}))
	assert.False(t, ValidatePrintableString([]byte("semi;colon")))
}

func TestValidateNumericString(t *testing.T) {
	assert.True(t, ValidateNumericString([]byte("123 456")))
	assert.False(t, ValidateNumericString([]byte("12a")))
	assert.False(t, ValidateNumericString([]byte{}))
}

func TestValidateTelephoneNumber(t *testing.T) {
	assert.True(t, ValidateTelephoneNumber([]byte("+1 (555) 867-5309")))
	assert.False(t, ValidateTelephoneNumber([]byte("call me")))
	assert.False(t, ValidateTelephoneNumber([]byte{}))
}

func TestValidateOID(t *testing.T) {
	valid := []string{"cn", "commonName", "a-b-c", "2.5.4.3", "0.9.2342.19200300.100.1.25", "1"}
	invalid := []string{"", "-cn", "9cn.", "2..5", ".2.5", "2.5.", "cn_x", "2.5.4a"}

	for _, v := range valid {
		assert.True(t, ValidateOID([]byte(v)), "input %q", v)
	}
	for _, v := range invalid {
		assert.False(t, ValidateOID([]byte(v)), "input %q", v)
	}
}

func TestValidateUUID(t *testing.T) {
	assert.True(t, ValidateUUID([]byte("550e8400-e29b-41d4-a716-446655440000")))
	assert.False(t, ValidateUUID([]byte("550e8400")))
}

func TestSyntaxValidateWithoutValidator(t *testing.T) {
	s := NewSyntax("9.9", "Anything", nil)
	assert.True(t, s.Validate([]byte{0xFF}))
}
