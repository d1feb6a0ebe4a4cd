package nfa

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteDOT(t *testing.T) {
	n, err := NewDefaultCompiler().Compile("[a-cx]|d*")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteDOT(&buf, n); err != nil {
		t.Fatalf("WriteDOT error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"digraph NFA {",
		"q1 [shape=doublecircle];",
		`[label="ε"]`,
		`[label="a-c,x"]`,
		`[label="d"]`,
		"_start -> q0;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("DOT output not closed:\n%s", out)
	}
}

func TestDotLabel(t *testing.T) {
	tests := []struct {
		chars []byte
		want  string
	}{
		{[]byte("a"), "a"},
		{[]byte("cab"), "a-c"},
		{[]byte("axyz"), "a,x-z"},
		{[]byte{'"'}, `\"`},
		{[]byte{'\\'}, `\\`},
		{[]byte{'\n'}, "0x0a"},
		{[]byte{0x7f}, "0x7f"},
	}
	for _, tt := range tests {
		if got := dotLabel(tt.chars); got != tt.want {
			t.Errorf("dotLabel(%q) = %q, want %q", tt.chars, got, tt.want)
		}
	}
}
