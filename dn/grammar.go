package dn

import (
	"strings"
)

// rdnParser is the full recursive-descent parser for the RFC 4514 RDN
// grammar:
//
//	relativeDistinguishedName = attributeTypeAndValue *( PLUS attributeTypeAndValue )
//	attributeTypeAndValue     = attributeType EQUALS attributeValue
//	attributeType             = descr / numericoid
//	attributeValue            = string / hexstring / quotedstring (legacy RFC 2253)
//
// The parser is invoked when the fast path reports the input too
// complex; it shares no state with the fast path.
type rdnParser struct {
	input string
	pos   int
}

// parseRdnGrammar parses a complete RDN into r, requiring the full
// input to be consumed.
func parseRdnGrammar(s string, r *Rdn) error {
	p := &rdnParser{input: s}

	for {
		ava, err := p.parseAttributeTypeAndValue()
		if err != nil {
			return err
		}
		r.addAva(ava)

		p.skipSpaces()
		if p.eof() {
			break
		}
		if p.peek() != '+' {
			return newSyntaxError(s, p.pos, "unexpected character after attribute value")
		}
		p.pos++
	}

	r.setUpName(s)
	r.finalize()
	return nil
}

// parseAttributeTypeAndValue parses one type=value assertion.
func (p *rdnParser) parseAttributeTypeAndValue() (*Ava, error) {
	p.skipSpaces()
	start := p.pos

	upType, err := p.parseAttributeType()
	if err != nil {
		return nil, err
	}

	p.skipSpaces()
	if p.eof() || p.peek() != '=' {
		return nil, newSyntaxError(p.input, p.pos, "expected '=' after attribute type")
	}
	p.pos++
	p.skipSpaces()

	value, err := p.parseAttributeValue()
	if err != nil {
		return nil, err
	}

	upName := strings.TrimRight(p.input[start:p.pos], " ")
	return newRawAva(upType, strings.ToLower(upType), upName, value), nil
}

// parseAttributeType parses a descr (keystring) or a numericoid.
func (p *rdnParser) parseAttributeType() (string, error) {
	if p.eof() {
		return "", newSyntaxError(p.input, p.pos, "expected attribute type")
	}

	start := p.pos
	c := p.peek()

	switch {
	case isAlpha(c):
		for !p.eof() && isKeyChar(p.peek()) {
			p.pos++
		}
	case isDigit(c):
		lastDot := true
		for !p.eof() {
			c := p.peek()
			if isDigit(c) {
				lastDot = false
				p.pos++
				continue
			}
			if c == '.' {
				if lastDot {
					return "", newSyntaxError(p.input, p.pos, "malformed numeric OID")
				}
				lastDot = true
				p.pos++
				continue
			}
			break
		}
		if lastDot {
			return "", newSyntaxError(p.input, p.pos, "malformed numeric OID")
		}
	default:
		return "", newSyntaxError(p.input, p.pos, "invalid leading character in attribute type")
	}

	return p.input[start:p.pos], nil
}

// parseAttributeValue parses the value in any of its three forms.
func (p *rdnParser) parseAttributeValue() (*Value, error) {
	if p.eof() {
		return NewStringValue(""), nil
	}

	switch p.peek() {
	case '#':
		return p.parseHexValue()
	case '"':
		return p.parseQuotedValue()
	default:
		return p.parseStringValue()
	}
}

// parseHexValue parses the '#' hexstring form into a binary value.
func (p *rdnParser) parseHexValue() (*Value, error) {
	start := p.pos
	p.pos++ // '#'
	for !p.eof() && isHexDigit(p.peek()) {
		p.pos++
	}

	raw, err := decodeHexString(p.input[start:p.pos])
	if err != nil {
		return nil, err
	}
	return NewBinaryValue(raw), nil
}

// parseQuotedValue parses the RFC 2253 legacy quoted form: the content
// between the quotes is taken literally.
func (p *rdnParser) parseQuotedValue() (*Value, error) {
	p.pos++ // opening '"'
	start := p.pos

	for !p.eof() && p.peek() != '"' {
		if p.peek() == '\\' {
			p.pos++ // escaped character inside quotes
			if p.eof() {
				return nil, newSyntaxError(p.input, p.pos, "dangling backslash in quoted value")
			}
		}
		p.pos++
	}
	if p.eof() {
		return nil, newSyntaxError(p.input, p.pos, "unterminated quoted value")
	}

	content := p.input[start:p.pos]
	p.pos++ // closing '"'

	raw, err := UnescapeValue(`"` + content + `"`)
	if err != nil {
		return nil, err
	}
	return NewStringValue(string(raw)), nil
}

// parseStringValue parses the regular escaped-string form, stopping at
// an unescaped '+' or end of input. Trailing unescaped spaces are
// insignificant and excluded from the value.
func (p *rdnParser) parseStringValue() (*Value, error) {
	start := p.pos
	end := p.pos // one past the last significant character

	for !p.eof() {
		c := p.peek()
		if c == '+' {
			break
		}
		if c == ',' || c == ';' || c == '<' || c == '>' || c == '"' {
			return nil, newSyntaxError(p.input, p.pos, "unescaped special character in value")
		}
		if c == '\\' {
			p.pos++
			if p.eof() {
				return nil, newSyntaxError(p.input, p.pos, "dangling backslash")
			}
			p.pos++
			end = p.pos
			continue
		}
		p.pos++
		if c != ' ' {
			end = p.pos
		}
	}

	text := p.input[start:end]
	raw, err := UnescapeValue(text)
	if err != nil {
		return nil, err
	}
	return NewStringValue(string(raw)), nil
}

// skipSpaces advances past insignificant space characters.
func (p *rdnParser) skipSpaces() {
	for !p.eof() && p.peek() == ' ' {
		p.pos++
	}
}

// peek returns the current byte without consuming it.
func (p *rdnParser) peek() byte {
	return p.input[p.pos]
}

// eof reports whether the input is exhausted.
func (p *rdnParser) eof() bool {
	return p.pos >= len(p.input)
}

// isAlpha reports whether c is an ASCII letter.
func isAlpha(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isKeyChar reports whether c may appear in a descr after the leading
// letter.
func isKeyChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '-'
}
