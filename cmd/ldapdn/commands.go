// Package main provides CLI commands for the ldapdn tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/KilimcininKorOglu/ldapdn/dn"
	"github.com/KilimcininKorOglu/ldapdn/schema"
)

// schemaFlags holds the flags shared by every command that resolves
// names against a schema.
type schemaFlags struct {
	mode    *string
	ldif    *string
	verbose *bool
}

func addSchemaFlags(fs *flag.FlagSet) *schemaFlags {
	return &schemaFlags{
		mode:    fs.String("schema", "none", "Schema mode: strict, relaxed, none"),
		ldif:    fs.String("ldif", "", "Load additional schema definitions from an LDIF file"),
		verbose: fs.Bool("v", false, "Verbose logging"),
	}
}

// manager builds the schema Manager the flags describe, or nil for
// schema-naive operation.
func (sf *schemaFlags) manager(log *zap.Logger) (*schema.Manager, error) {
	var mode schema.Mode
	switch *sf.mode {
	case "none":
		if *sf.ldif != "" {
			return nil, fmt.Errorf("-ldif requires -schema strict or relaxed")
		}
		return nil, nil
	case "strict":
		mode = schema.Strict
	case "relaxed":
		mode = schema.Relaxed
	default:
		return nil, fmt.Errorf("invalid schema mode %q", *sf.mode)
	}

	sm := schema.NewManager(mode)
	if *sf.ldif != "" {
		if err := sm.LoadFile(*sf.ldif); err != nil {
			return nil, err
		}
		log.Debug("loaded schema definitions", zap.String("path", *sf.ldif))
	}
	log.Debug("schema manager ready", zap.String("mode", mode.String()))
	return sm, nil
}

// newLogger builds the CLI logger. Errors always reach the user via
// stderr prints; the logger carries the diagnostic detail behind -v.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// parseCmd parses an RDN and prints its components.
func parseCmd(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	sf := addSchemaFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one RDN argument")
		return 1
	}

	log := newLogger(*sf.verbose)
	defer log.Sync()

	sm, err := sf.manager(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	r, err := dn.ParseRdn(sm, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		return 1
	}

	fmt.Printf("Name:       %s\n", r.GetName())
	fmt.Printf("Normalized: %s\n", r.GetNormName())
	fmt.Printf("Escaped:    %s\n", r.GetEscaped())
	fmt.Printf("Values:     %d\n", r.Size())
	for _, a := range r.Avas() {
		schemaNote := ""
		if at := a.AttributeType(); at != nil {
			schemaNote = fmt.Sprintf("  [%s, OID %s]", at.Name, at.OID)
		}
		fmt.Printf("  %s = %q%s\n", a.GetNormType(), a.GetValue().String(), schemaNote)
	}
	return 0
}

// normalizeCmd prints the canonical normalized form of an RDN.
func normalizeCmd(args []string) int {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	sf := addSchemaFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one RDN argument")
		return 1
	}

	log := newLogger(*sf.verbose)
	defer log.Sync()

	sm, err := sf.manager(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	r, err := dn.ParseRdn(sm, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		return 1
	}

	fmt.Println(r.GetNormName())
	return 0
}

// escapeCmd escapes a raw value for use in a DN.
func escapeCmd(args []string) int {
	fs := flag.NewFlagSet("escape", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one value argument")
		return 1
	}

	fmt.Println(dn.EscapeValue([]byte(fs.Arg(0))))
	return 0
}

// unescapeCmd converts escaped DN text back to the raw value.
func unescapeCmd(args []string) int {
	fs := flag.NewFlagSet("unescape", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one text argument")
		return 1
	}

	raw, err := dn.UnescapeValue(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unescape failed: %v\n", err)
		return 1
	}

	fmt.Printf("%s\n", raw)
	return 0
}

// compareCmd compares two RDNs for equality. Exit code 0 means equal,
// 1 means different, 2 means an input failed to parse.
func compareCmd(args []string) int {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	sf := addSchemaFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly two RDN arguments")
		return 2
	}

	log := newLogger(*sf.verbose)
	defer log.Sync()

	sm, err := sf.manager(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	a, err := dn.ParseRdn(sm, fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed for %q: %v\n", fs.Arg(0), err)
		return 2
	}
	b, err := dn.ParseRdn(sm, fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed for %q: %v\n", fs.Arg(1), err)
		return 2
	}

	if a.Equal(b) {
		fmt.Println("equal")
		return 0
	}
	fmt.Println("different")
	return 1
}
