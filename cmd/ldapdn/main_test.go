package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_NoArgs(t *testing.T) {
	assert.Equal(t, 1, run([]string{"ldapdn"}))
}

func TestRun_Help(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"help command", []string{"ldapdn", "help"}},
		{"short flag", []string{"ldapdn", "-h"}},
		{"long flag", []string{"ldapdn", "--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, run(tt.args))
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	assert.Equal(t, 1, run([]string{"ldapdn", "unknown"}))
}

func TestRun_Version(t *testing.T) {
	assert.Equal(t, 0, run([]string{"ldapdn", "version"}))
	assert.Equal(t, 0, run([]string{"ldapdn", "version", "-short"}))
}

func TestRun_Parse(t *testing.T) {
	assert.Equal(t, 0, run([]string{"ldapdn", "parse", "cn=Test"}))
	assert.Equal(t, 0, run([]string{"ldapdn", "parse", "-schema", "strict", "cn=Test"}))
	assert.Equal(t, 1, run([]string{"ldapdn", "parse", "cn=a,b"}))
	assert.Equal(t, 1, run([]string{"ldapdn", "parse"}))
	assert.Equal(t, 1, run([]string{"ldapdn", "parse", "-schema", "bogus", "cn=Test"}))
}

func TestRun_Normalize(t *testing.T) {
	assert.Equal(t, 0, run([]string{"ldapdn", "normalize", "-schema", "strict", "CN=Test"}))
	assert.Equal(t, 1, run([]string{"ldapdn", "normalize", "-schema", "strict", "nosuch=x"}))
}

func TestRun_EscapeUnescape(t *testing.T) {
	assert.Equal(t, 0, run([]string{"ldapdn", "escape", "Smith, John"}))
	assert.Equal(t, 0, run([]string{"ldapdn", "unescape", `Smith\, John`}))
	assert.Equal(t, 1, run([]string{"ldapdn", "unescape", "a,b"}))
}

func TestRun_Compare(t *testing.T) {
	assert.Equal(t, 0, run([]string{"ldapdn", "compare", "-schema", "strict", "cn=Test", "commonName=TEST"}))
	assert.Equal(t, 1, run([]string{"ldapdn", "compare", "cn=a", "cn=b"}))
	assert.Equal(t, 2, run([]string{"ldapdn", "compare", "cn=a"}))
	assert.Equal(t, 2, run([]string{"ldapdn", "compare", "cn=a,b", "cn=c"}))
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	assert.Contains(t, buf.String(), "ldapdn")
	assert.Contains(t, buf.String(), "compare")
}
