package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage information to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `ldapdn - LDAP name component toolkit

Usage:
  ldapdn <command> [options]

Commands:
  parse       Parse an RDN and print its components
  normalize   Print the canonical normalized form of an RDN
  escape      Escape a raw value for use in a DN
  unescape    Convert escaped DN text back to the raw value
  compare     Compare two RDNs for equality
  version     Show version information

Schema options (parse, normalize, compare):
  -schema string
        Schema mode: strict, relaxed, none (default "none")
  -ldif string
        Load additional schema definitions from an LDIF subschema file
  -v    Verbose logging

Use "ldapdn <command> -h" for more information about a command.

Examples:
  ldapdn parse 'ou=People+cn=John Smith'
  ldapdn normalize -schema strict 'CN=John  Smith'
  ldapdn escape 'Smith, John'
  ldapdn compare -schema strict 'cn=Test' 'commonName=TEST'
`)
}
