package schema

import (
	"errors"
	"strings"
)

// Description parser errors.
var (
	ErrInvalidDescription = errors.New("schema: invalid definition")
	ErrMissingOID         = errors.New("schema: missing OID in definition")
	ErrUnterminatedString = errors.New("schema: unterminated quoted string")
	ErrUnterminatedParens = errors.New("schema: unterminated parentheses")
)

// ParseAttributeTypeDescription parses an RFC 4512 attribute type
// description.
//
// Format: ( OID NAME 'name' EQUALITY rule SYNTAX syntaxOID SINGLE-VALUE ... )
func ParseAttributeTypeDescription(s string) (*AttributeType, error) {
	tokens, err := descriptionTokens(s)
	if err != nil {
		return nil, err
	}

	at := &AttributeType{
		OID:   tokens[0],
		Usage: UserApplications,
	}

	for i := 1; i < len(tokens); i++ {
		keyword := strings.ToUpper(tokens[i])
		switch keyword {
		case "NAME":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			names := parseNames(arg)
			if len(names) > 0 {
				at.Name = names[0]
				at.Names = names
			}
		case "DESC":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			at.Desc = unquote(arg)
		case "OBSOLETE":
			at.Obsolete = true
		case "SUP":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			at.Superior = unquote(arg)
		case "EQUALITY":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			at.Equality = unquote(arg)
		case "ORDERING":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			at.Ordering = unquote(arg)
		case "SUBSTR":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			at.Substring = unquote(arg)
		case "SYNTAX":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			at.Syntax = parseSyntaxOID(arg)
		case "SINGLE-VALUE":
			at.SingleValue = true
		case "NO-USER-MODIFICATION":
			at.NoUserMod = true
		case "USAGE":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			at.Usage = parseUsage(arg)
		}
	}

	return at, nil
}

// ParseMatchingRuleDescription parses an RFC 4512 matching rule
// description. The returned rule carries no normalizer or comparator;
// callers bind behavior by OID after parsing.
//
// Format: ( OID NAME 'name' SYNTAX syntaxOID )
func ParseMatchingRuleDescription(s string) (*MatchingRule, error) {
	tokens, err := descriptionTokens(s)
	if err != nil {
		return nil, err
	}

	mr := &MatchingRule{OID: tokens[0]}

	for i := 1; i < len(tokens); i++ {
		keyword := strings.ToUpper(tokens[i])
		switch keyword {
		case "NAME":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			names := parseNames(arg)
			if len(names) > 0 {
				mr.Name = names[0]
				mr.Names = names
			}
		case "DESC":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			mr.Desc = unquote(arg)
		case "OBSOLETE":
			mr.Obsolete = true
		case "SYNTAX":
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			mr.Syntax = parseSyntaxOID(arg)
		}
	}

	return mr, nil
}

// ParseSyntaxDescription parses an RFC 4512 LDAP syntax description.
//
// Format: ( OID DESC 'description' )
func ParseSyntaxDescription(s string) (*Syntax, error) {
	tokens, err := descriptionTokens(s)
	if err != nil {
		return nil, err
	}

	syn := &Syntax{OID: tokens[0]}

	for i := 1; i < len(tokens); i++ {
		if strings.ToUpper(tokens[i]) == "DESC" {
			arg, err := descriptionArg(tokens, &i)
			if err != nil {
				return nil, err
			}
			syn.Desc = unquote(arg)
		}
	}

	return syn, nil
}

// descriptionTokens strips the outer parentheses of a definition and
// tokenizes the content. The first token is always the OID.
func descriptionTokens(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, ErrInvalidDescription
	}
	tokens, err := tokenize(strings.TrimSpace(s[1 : len(s)-1]))
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrMissingOID
	}
	return tokens, nil
}

// descriptionArg advances past a keyword and returns its argument token.
func descriptionArg(tokens []string, i *int) (string, error) {
	*i++
	if *i >= len(tokens) {
		return "", ErrInvalidDescription
	}
	return tokens[*i], nil
}

// tokenize splits a definition body into tokens, treating quoted
// strings and parenthesized groups as single tokens.
func tokenize(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuote := false
	parenDepth := 0

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inQuote {
			current.WriteByte(ch)
			if ch == '\'' {
				inQuote = false
			}
			continue
		}

		switch ch {
		case '\'':
			inQuote = true
			current.WriteByte(ch)
		case '(':
			if parenDepth > 0 {
				current.WriteByte(ch)
			}
			parenDepth++
		case ')':
			parenDepth--
			if parenDepth > 0 {
				current.WriteByte(ch)
			} else if parenDepth == 0 && current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		case ' ', '\t', '\n', '\r':
			if parenDepth > 0 {
				current.WriteByte(ch)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		case '$':
			if parenDepth > 0 {
				current.WriteByte(ch)
			}
		default:
			current.WriteByte(ch)
		}
	}

	if inQuote {
		return nil, ErrUnterminatedString
	}
	if parenDepth != 0 {
		return nil, ErrUnterminatedParens
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}

// parseNames parses a NAME value, either a single quoted string or a
// parenthesized list: 'cn' or ( 'cn' 'commonName' ).
func parseNames(s string) []string {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "'") {
		var names []string
		inQuote := false
		var current strings.Builder

		for i := 0; i < len(s); i++ {
			ch := s[i]
			if ch == '\'' {
				if inQuote && current.Len() > 0 {
					names = append(names, current.String())
					current.Reset()
				}
				inQuote = !inQuote
			} else if inQuote {
				current.WriteByte(ch)
			}
		}
		return names
	}

	return []string{s}
}

// unquote removes surrounding single quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// parseSyntaxOID extracts the OID from a syntax specification,
// dropping a length constraint like "1.3.6.1.4.1.1466.115.121.1.15{256}".
func parseSyntaxOID(s string) string {
	s = unquote(s)
	if idx := strings.Index(s, "{"); idx != -1 {
		return s[:idx]
	}
	return s
}

// parseUsage parses an attribute usage keyword.
func parseUsage(s string) AttributeUsage {
	switch strings.ToLower(unquote(s)) {
	case "userapplications":
		return UserApplications
	case "directoryoperation":
		return DirectoryOperation
	case "distributedoperation":
		return DistributedOperation
	case "dsaoperation":
		return DSAOperation
	default:
		return UserApplications
	}
}
