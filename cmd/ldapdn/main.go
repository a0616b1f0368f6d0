// Package main provides the entry point for the ldapdn CLI, a tool for
// parsing, normalizing, and comparing LDAP name components.
package main

import (
	"fmt"
	"os"
)

func main() {
	exitCode := run(os.Args)
	os.Exit(exitCode)
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string) int {
	if len(args) < 2 {
		printUsage(os.Stdout)
		return 1
	}

	switch args[1] {
	case "parse":
		return parseCmd(args[2:])
	case "normalize":
		return normalizeCmd(args[2:])
	case "escape":
		return escapeCmd(args[2:])
	case "unescape":
		return unescapeCmd(args[2:])
	case "compare":
		return compareCmd(args[2:])
	case "version":
		return versionCmd(args[2:])
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[1])
		fmt.Fprintln(os.Stderr, "Run 'ldapdn help' for usage.")
		return 1
	}
}
