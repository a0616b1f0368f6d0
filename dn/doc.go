// Package dn implements the naming atoms of LDAP distinguished names:
// attribute-value assertions (AVAs) and relative distinguished names
// (RDNs) as specified in RFC 4514 and RFC 2253.
//
// # Overview
//
// An AVA is a single type=value pair; an RDN is one or more AVAs joined
// by '+'. The package provides:
//
//   - Byte-exact escaping and unescaping of attribute values
//   - The Ava value object with user-provided and normalized forms
//   - The Rdn ordered, deduplicated AVA collection
//   - A two-tier RDN parser (fast path plus full RFC 4514 grammar)
//   - A compact binary codec for storage and caching layers
//
// # Parsing
//
// ParseRdn parses the textual form, optionally binding the result to a
// schema:
//
//	rdn, err := dn.ParseRdn(nil, "ou=test 1+cn=test 2")
//	// rdn.Size() == 2, iteration in ascending normalized order
//
//	sm := schema.NewManager(schema.Strict)
//	rdn, err = dn.ParseRdn(sm, "CN=Alice")
//	// rdn.GetNormName() == "2.5.4.3=alice"
//
// The user-provided text is preserved verbatim: rdn.String() returns
// exactly the parsed input, while rdn.GetEscaped() renders the
// canonical RFC 4514 form.
//
// # Schema binding
//
// An Ava or Rdn constructed without a schema can be re-bound later:
//
//	bound, err := ava.ApplySchema(sm)
//
// Binding resolves the attribute type, validates the value against the
// type's syntax, and normalizes it with the type's equality matching
// rule. With a relaxed-mode Manager, unresolvable types leave the value
// schema-naive instead of failing.
//
// # Immutability
//
// Ava and Rdn are immutable after construction. Operations that look
// like mutation (ApplySchema, Clone) return new instances. Fully
// constructed values are safe for concurrent readers; the lazily
// computed hash is published through an atomic and may be recomputed
// redundantly but never inconsistently.
package dn
