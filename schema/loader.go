package schema

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Loader errors.
var (
	// ErrSchemaFileNotFound is returned when the schema file does not exist.
	ErrSchemaFileNotFound = errors.New("schema: file not found")
)

// LoadFile loads schema definitions from an LDIF file at the given path
// into the Manager.
func (m *Manager) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrSchemaFileNotFound
		}
		return err
	}
	defer file.Close()

	return m.LoadLDIF(file)
}

// LoadLDIF loads schema definitions from an LDIF-formatted subschema
// entry (RFC 4512 section 4.2) into the Manager. Matching rules parsed
// from LDIF are bound to the built-in normalizer and comparator
// registered under the same OID, when one exists.
//
// Example entry:
//
//	dn: cn=schema
//	attributeTypes: ( 2.5.4.3 NAME 'cn' SUP name )
//	matchingRules: ( 2.5.13.2 NAME 'caseIgnoreMatch' SYNTAX 1.3.6.1.4.1.1466.115.121.1.15 )
//	ldapSyntaxes: ( 1.3.6.1.4.1.1466.115.121.1.15 DESC 'Directory String' )
func (m *Manager) LoadLDIF(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var attr string
	var value strings.Builder
	line := 0

	flush := func() error {
		if attr == "" {
			return nil
		}
		def := strings.TrimSpace(value.String())
		name := attr
		attr = ""
		value.Reset()
		if def == "" {
			return nil
		}
		return m.registerDefinition(name, def)
	}

	for scanner.Scan() {
		line++
		text := scanner.Text()

		// LDIF continuation lines start with a single space.
		if strings.HasPrefix(text, " ") {
			value.WriteString(strings.TrimPrefix(text, " "))
			continue
		}

		if err := flush(); err != nil {
			return fmt.Errorf("schema: line %d: %w", line-1, err)
		}

		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		idx := strings.Index(text, ":")
		if idx == -1 {
			continue
		}
		attr = strings.TrimSpace(text[:idx])
		value.Reset()
		value.WriteString(strings.TrimSpace(text[idx+1:]))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return fmt.Errorf("schema: line %d: %w", line, err)
	}

	return nil
}

// registerDefinition parses and registers one schema definition by its
// LDIF attribute name. Unrecognized attributes (objectClasses, dn,
// objectClass) are skipped; the name model has no use for them.
func (m *Manager) registerDefinition(attr, def string) error {
	switch strings.ToLower(attr) {
	case "attributetypes":
		at, err := ParseAttributeTypeDescription(def)
		if err != nil {
			return err
		}
		m.RegisterAttributeType(at)
	case "matchingrules":
		mr, err := ParseMatchingRuleDescription(def)
		if err != nil {
			return err
		}
		// Bind the executable behavior of the built-in rule with the
		// same OID, if we have one.
		if builtin, lookupErr := m.MatchingRule(mr.OID); lookupErr == nil {
			mr.Normalizer = builtin.Normalizer
			mr.Comparator = builtin.Comparator
		}
		m.RegisterMatchingRule(mr)
	case "ldapsyntaxes":
		syn, err := ParseSyntaxDescription(def)
		if err != nil {
			return err
		}
		// Preserve the validator of a built-in syntax with the same OID.
		if builtin, lookupErr := m.Syntax(syn.OID); lookupErr == nil {
			syn.Validator = builtin.Validator
		}
		m.RegisterSyntax(syn)
	}
	return nil
}
