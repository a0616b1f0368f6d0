// Package schema provides the directory schema registry consumed by the
// name model: attribute types, matching rules, and syntaxes.
//
// # Overview
//
// The package implements the subset of RFC 4512 needed to bind naming
// components (AVAs and RDNs) to a schema:
//
//   - Attribute type definitions with equality/ordering matching rules
//   - Matching rules with executable normalizers and comparators
//   - Syntax definitions with value validators
//   - A Manager resolving names and OIDs in strict or relaxed mode
//
// # Manager
//
// A Manager is the registry the dn package resolves attribute types
// against:
//
//	sm := schema.NewManager(schema.Strict)
//	at, err := sm.AttributeType("cn")
//	// at.OID == "2.5.4.3"
//
// In Strict mode an unknown attribute type is an error; in Relaxed mode
// resolution failures are reported as ErrAttributeTypeNotFound so the
// caller can fall back to schema-naive handling.
//
// # Matching rules
//
// Matching rules carry executable behavior, not just metadata. The
// equality rule of an attribute type normalizes values before
// comparison; the ordering rule provides a three-way comparator:
//
//	mr, _ := sm.MatchingRule("caseIgnoreMatch")
//	norm, _ := mr.Normalize([]byte("  Alice  Smith "))
//	// norm == []byte("alice smith")
//
// # Loading definitions
//
// The built-in core schema (RFC 4512/4519 naming attributes) is loaded
// by NewManager. Additional definitions can be parsed from RFC 4512
// description strings or an LDIF subschema entry:
//
//	at, err := schema.ParseAttributeTypeDescription(
//	    `( 2.5.4.3 NAME ( 'cn' 'commonName' ) SUP name )`)
//
//	err = sm.LoadLDIF(file)
package schema
