package dn

import (
	"fmt"
	"strings"

	ber "github.com/go-asn1-ber/asn1-ber"
)

// BER bridge for the RFC 4514 section 2.4 hexstring form: an attribute
// value that cannot be rendered as a UTF-8 string is written as '#'
// followed by the hex of its BER encoding. The directory convention is
// a universal primitive OCTET STRING wrapping the raw value bytes.

// BerEncodeValue wraps the user-provided bytes of a value in a BER
// OCTET STRING.
func BerEncodeValue(v *Value) []byte {
	p := ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString,
		string(v.up), "attribute value")
	return p.Bytes()
}

// BerDecodeValue unwraps a BER OCTET STRING into a binary value.
func BerDecodeValue(data []byte) (*Value, error) {
	p, err := ber.DecodePacketErr(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	if p.ClassType != ber.ClassUniversal || p.Tag != ber.TagOctetString {
		return nil, fmt.Errorf("%w: unexpected BER tag %d", ErrInvalidName, p.Tag)
	}
	return NewBinaryValue(p.Data.Bytes()), nil
}

// BerHexName renders the type and the BER-wrapped value in the
// hexstring form: type=#hex(BER(value)).
func (a *Ava) BerHexName() string {
	return a.upType + "=#" + hexEncode(BerEncodeValue(a.value))
}

// ParseBerHexValue decodes a '#'-prefixed hexstring whose payload is a
// BER OCTET STRING, returning the wrapped value.
func ParseBerHexValue(text string) (*Value, error) {
	if !strings.HasPrefix(text, "#") {
		return nil, fmt.Errorf("%w: hexstring must start with '#'", ErrInvalidName)
	}
	raw, err := decodeHexString(text)
	if err != nil {
		return nil, err
	}
	return BerDecodeValue(raw)
}
