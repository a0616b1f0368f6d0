package dn

import (
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// EscapeValue renders raw attribute-value bytes in the RFC 4514 escaped
// text form.
//
// Classification per byte:
//   - ',' '+' ';' '<' '>' '"' '\' '=' are always backslash-escaped
//   - '#' is escaped only in leading position
//   - space is escaped only in leading or trailing position
//   - control bytes 0x00-0x1F and 0x7F become backslash plus two hex digits
//   - other printable ASCII is copied verbatim
//   - a well-formed UTF-8 multi-byte sequence is copied verbatim as a
//     unit; a malformed lead or stray continuation byte is hex-escaped
//     alone, one byte at a time
func EscapeValue(value []byte) string {
	var sb strings.Builder
	sb.Grow(len(value))

	for i := 0; i < len(value); {
		b := value[i]

		switch {
		case b == ',' || b == '+' || b == ';' || b == '<' || b == '>' || b == '"' || b == '\\' || b == '=':
			sb.WriteByte('\\')
			sb.WriteByte(b)
			i++
		case b == '#':
			if i == 0 {
				sb.WriteByte('\\')
			}
			sb.WriteByte(b)
			i++
		case b == ' ':
			if i == 0 || i == len(value)-1 {
				sb.WriteByte('\\')
			}
			sb.WriteByte(b)
			i++
		case b < 0x20 || b == 0x7F:
			writeHexEscape(&sb, b)
			i++
		case b < 0x80:
			sb.WriteByte(b)
			i++
		default:
			n := utf8SequenceLen(value, i)
			if n == 0 {
				// Solitary or malformed octet: escape just this byte.
				writeHexEscape(&sb, b)
				i++
				break
			}
			sb.Write(value[i : i+n])
			i += n
		}
	}

	return sb.String()
}

// writeHexEscape writes a byte as backslash plus two uppercase hex digits.
func writeHexEscape(sb *strings.Builder, b byte) {
	sb.WriteByte('\\')
	sb.WriteByte(hexDigits[b>>4])
	sb.WriteByte(hexDigits[b&0x0F])
}

// utf8SequenceLen returns the length of the well-formed UTF-8 sequence
// starting at value[i], or 0 when the bytes do not form one. The
// continuation ranges follow RFC 3629: the first continuation byte of
// each lead class has a tighter range so that overlong encodings and
// surrogate code points are rejected.
func utf8SequenceLen(value []byte, i int) int {
	lead := value[i]

	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		if i+1 < len(value) && isContinuation(value[i+1], 0x80, 0xBF) {
			return 2
		}
	case lead == 0xE0:
		if i+2 < len(value) && isContinuation(value[i+1], 0xA0, 0xBF) && isContinuation(value[i+2], 0x80, 0xBF) {
			return 3
		}
	case lead >= 0xE1 && lead <= 0xEC || lead == 0xEE || lead == 0xEF:
		if i+2 < len(value) && isContinuation(value[i+1], 0x80, 0xBF) && isContinuation(value[i+2], 0x80, 0xBF) {
			return 3
		}
	case lead == 0xED:
		if i+2 < len(value) && isContinuation(value[i+1], 0x80, 0x9F) && isContinuation(value[i+2], 0x80, 0xBF) {
			return 3
		}
	case lead == 0xF0:
		if i+3 < len(value) && isContinuation(value[i+1], 0x90, 0xBF) && isContinuation(value[i+2], 0x80, 0xBF) && isContinuation(value[i+3], 0x80, 0xBF) {
			return 4
		}
	case lead >= 0xF1 && lead <= 0xF3:
		if i+3 < len(value) && isContinuation(value[i+1], 0x80, 0xBF) && isContinuation(value[i+2], 0x80, 0xBF) && isContinuation(value[i+3], 0x80, 0xBF) {
			return 4
		}
	case lead == 0xF4:
		if i+3 < len(value) && isContinuation(value[i+1], 0x80, 0x8F) && isContinuation(value[i+2], 0x80, 0xBF) && isContinuation(value[i+3], 0x80, 0xBF) {
			return 4
		}
	}

	return 0
}

// isContinuation checks a continuation byte against its allowed range.
func isContinuation(b, lo, hi byte) bool {
	return b >= lo && b <= hi
}

// UnescapeValue converts RFC 4514 escaped text back to the raw value
// bytes.
//
// Three forms are recognized:
//   - a value wholly wrapped in double quotes is returned literally,
//     minus the quotes (RFC 2253 legacy form)
//   - a value starting with '#' followed by an even number of hex
//     digits decodes to the binary value they spell
//   - otherwise a single forward scan resolves backslash escapes
//     (special character, space, or two hex digits) and copies
//     everything else verbatim
func UnescapeValue(text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}

	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return []byte(text[1 : len(text)-1]), nil
	}

	if text[0] == '#' {
		return decodeHexString(text)
	}

	out := make([]byte, 0, len(text))
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if escaped {
			switch {
			case isEscapable(c):
				out = append(out, c)
			case isHexDigit(c):
				if i+1 >= len(text) || !isHexDigit(text[i+1]) {
					return nil, newSyntaxError(text, i, "invalid hex pair in escape sequence")
				}
				out = append(out, hexValue(c)<<4|hexValue(text[i+1]))
				i++
			default:
				return nil, newSyntaxError(text, i, "invalid escaped character")
			}
			escaped = false
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case ',', '+', ';', '<', '>', '"':
			return nil, newSyntaxError(text, i, "unescaped special character")
		case ' ':
			if i == 0 || i == len(text)-1 {
				return nil, newSyntaxError(text, i, "unescaped leading or trailing space")
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}

	if escaped {
		return nil, newSyntaxError(text, len(text)-1, "dangling backslash")
	}

	return out, nil
}

// decodeHexString decodes the '#' hexstring form of a value.
func decodeHexString(text string) ([]byte, error) {
	hex := text[1:]
	if len(hex) == 0 {
		return nil, newSyntaxError(text, 0, "empty hex string")
	}
	if len(hex)%2 != 0 {
		return nil, newSyntaxError(text, 0, "odd-length hex string")
	}

	out := make([]byte, 0, len(hex)/2)
	for i := 0; i < len(hex); i += 2 {
		hi, lo := hex[i], hex[i+1]
		if !isHexDigit(hi) || !isHexDigit(lo) {
			return nil, newSyntaxError(text, i+1, "malformed hex digit")
		}
		out = append(out, hexValue(hi)<<4|hexValue(lo))
	}
	return out, nil
}

// isEscapable reports whether a character may follow a backslash as a
// single-character escape.
func isEscapable(c byte) bool {
	switch c {
	case ' ', '#', '=', '"', '+', ',', ';', '<', '>', '\\':
		return true
	}
	return false
}

// isHexDigit reports whether c is an ASCII hex digit.
func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// hexValue returns the numeric value of an ASCII hex digit.
func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
