package schema

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

// Syntax represents an LDAP syntax definition. Syntaxes define the
// format and validation rules for attribute values.
type Syntax struct {
	OID       string            // Object Identifier (e.g., "1.3.6.1.4.1.1466.115.121.1.15")
	Desc      string            // Human-readable description (e.g., "Directory String")
	Validator func([]byte) bool // Function to validate values against this syntax
}

// NewSyntax creates a new Syntax with the given OID, description, and
// optional validator.
func NewSyntax(oid, desc string, validator func([]byte) bool) *Syntax {
	return &Syntax{
		OID:       oid,
		Desc:      desc,
		Validator: validator,
	}
}

// Validate checks if the given value conforms to this syntax.
// Returns true if the value is valid or if no validator is defined.
func (s *Syntax) Validate(value []byte) bool {
	if s.Validator == nil {
		return true
	}
	return s.Validator(value)
}

// Common LDAP syntax OIDs (RFC 4517).
const (
	// SyntaxDirectoryString is the OID for Directory String syntax (UTF-8 string).
	SyntaxDirectoryString = "1.3.6.1.4.1.1466.115.121.1.15"

	// SyntaxDN is the OID for Distinguished Name syntax.
	SyntaxDN = "1.3.6.1.4.1.1466.115.121.1.12"

	// SyntaxInteger is the OID for Integer syntax.
	SyntaxInteger = "1.3.6.1.4.1.1466.115.121.1.27"

	// SyntaxBoolean is the OID for Boolean syntax.
	SyntaxBoolean = "1.3.6.1.4.1.1466.115.121.1.7"

	// SyntaxOctetString is the OID for Octet String syntax (binary data).
	SyntaxOctetString = "1.3.6.1.4.1.1466.115.121.1.40"

	// SyntaxGeneralizedTime is the OID for Generalized Time syntax.
	SyntaxGeneralizedTime = "1.3.6.1.4.1.1466.115.121.1.24"

	// SyntaxOID is the OID for OID syntax.
	SyntaxOID = "1.3.6.1.4.1.1466.115.121.1.38"

	// SyntaxTelephoneNumber is the OID for Telephone Number syntax.
	SyntaxTelephoneNumber = "1.3.6.1.4.1.1466.115.121.1.50"

	// SyntaxIA5String is the OID for IA5 String syntax (ASCII).
	SyntaxIA5String = "1.3.6.1.4.1.1466.115.121.1.26"

	// SyntaxPrintableString is the OID for Printable String syntax.
	SyntaxPrintableString = "1.3.6.1.4.1.1466.115.121.1.44"

	// SyntaxNumericString is the OID for Numeric String syntax.
	SyntaxNumericString = "1.3.6.1.4.1.1466.115.121.1.36"

	// SyntaxBitString is the OID for Bit String syntax.
	SyntaxBitString = "1.3.6.1.4.1.1466.115.121.1.6"

	// SyntaxCertificate is the OID for Certificate syntax (binary).
	SyntaxCertificate = "1.3.6.1.4.1.1466.115.121.1.8"

	// SyntaxJPEG is the OID for JPEG syntax (binary).
	SyntaxJPEG = "1.3.6.1.4.1.1466.115.121.1.28"

	// SyntaxUUID is the OID for UUID syntax.
	SyntaxUUID = "1.3.6.1.1.16.1"
)

// ValidateDirectoryString validates a Directory String: a non-empty,
// well-formed UTF-8 string.
func ValidateDirectoryString(value []byte) bool {
	return len(value) > 0 && utf8.Valid(value)
}

// ValidateInteger validates an Integer value string, with an optional
// leading sign.
func ValidateInteger(value []byte) bool {
	if len(value) == 0 {
		return false
	}
	start := 0
	if value[0] == '-' || value[0] == '+' {
		start = 1
		if len(value) == 1 {
			return false
		}
	}
	for i := start; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateBoolean validates a Boolean value ("TRUE" or "FALSE").
func ValidateBoolean(value []byte) bool {
	s := string(value)
	return s == "TRUE" || s == "FALSE"
}

// ValidateOctetString validates an Octet String. Any byte sequence is
// valid.
func ValidateOctetString(value []byte) bool {
	return true
}

// ValidateIA5String validates an IA5 String: all bytes in the ASCII range.
func ValidateIA5String(value []byte) bool {
	for _, b := range value {
		if b > 127 {
			return false
		}
	}
	return true
}

// ValidatePrintableString validates a Printable String.
func ValidatePrintableString(value []byte) bool {
	if len(value) == 0 {
		return false
	}
	for _, b := range value {
		if !isPrintableChar(b) {
			return false
		}
	}
	return true
}

// isPrintableChar checks if a byte is in the PrintableString character set:
// A-Z, a-z, 0-9, space, and '()+,-./:=?
func isPrintableChar(b byte) bool {
	if b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' {
		return true
	}
	switch b {
	case ' ', '\'', '(', ')', '+', ',', '-', '.', '/', ':', '=', '?':
		return true
	}
	return false
}

// ValidateNumericString validates a Numeric String: digits and spaces only.
func ValidateNumericString(value []byte) bool {
	if len(value) == 0 {
		return false
	}
	for _, b := range value {
		if b != ' ' && (b < '0' || b > '9') {
			return false
		}
	}
	return true
}

// ValidateTelephoneNumber validates a Telephone Number.
func ValidateTelephoneNumber(value []byte) bool {
	if len(value) == 0 {
		return false
	}
	for _, b := range value {
		if b >= '0' && b <= '9' {
			continue
		}
		switch b {
		case ' ', '-', '(', ')', '+', '.':
			continue
		}
		return false
	}
	return true
}

// ValidateOID validates a numeric OID or a descriptor name
// (letter followed by letters, digits, and hyphens).
func ValidateOID(value []byte) bool {
	if len(value) == 0 {
		return false
	}
	b := value[0]
	if b >= '0' && b <= '9' {
		return validNumericOID(string(value))
	}
	if !(b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z') {
		return false
	}
	for _, c := range value[1:] {
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' {
			continue
		}
		return false
	}
	return true
}

// validNumericOID checks a dotted-numeric OID: digit runs separated by
// single dots, no leading or trailing dot.
func validNumericOID(s string) bool {
	lastDot := true // a dot is not allowed first
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			lastDot = false
		case c == '.':
			if lastDot {
				return false
			}
			lastDot = true
		default:
			return false
		}
	}
	return !lastDot
}

// ValidateUUID validates a UUID value in any textual form accepted by
// RFC 4122.
func ValidateUUID(value []byte) bool {
	_, err := uuid.ParseBytes(value)
	return err == nil
}

// defaultSyntaxes returns the standard syntaxes with validators bound.
func defaultSyntaxes() []*Syntax {
	return []*Syntax{
		NewSyntax(SyntaxDirectoryString, "Directory String", ValidateDirectoryString),
		NewSyntax(SyntaxDN, "DN", ValidateDirectoryString),
		NewSyntax(SyntaxInteger, "INTEGER", ValidateInteger),
		NewSyntax(SyntaxBoolean, "Boolean", ValidateBoolean),
		NewSyntax(SyntaxOctetString, "Octet String", ValidateOctetString),
		NewSyntax(SyntaxGeneralizedTime, "Generalized Time", nil),
		NewSyntax(SyntaxOID, "OID", ValidateOID),
		NewSyntax(SyntaxTelephoneNumber, "Telephone Number", ValidateTelephoneNumber),
		NewSyntax(SyntaxIA5String, "IA5 String", ValidateIA5String),
		NewSyntax(SyntaxPrintableString, "Printable String", ValidatePrintableString),
		NewSyntax(SyntaxNumericString, "Numeric String", ValidateNumericString),
		NewSyntax(SyntaxBitString, "Bit String", nil),
		NewSyntax(SyntaxCertificate, "Certificate", ValidateOctetString),
		NewSyntax(SyntaxJPEG, "JPEG", ValidateOctetString),
		NewSyntax(SyntaxUUID, "UUID", ValidateUUID),
	}
}
