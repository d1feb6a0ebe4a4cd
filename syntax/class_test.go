package syntax

import (
	"errors"
	"testing"
)

func classToken(text string) Token {
	return Token{Kind: Class, Text: text}
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		text string
		in   string
		out  string
	}{
		{"[abc]", "abc", "dA"},
		{"[a-c]", "abc", "d`"},
		{"[a-cx-z]", "abcxyz", "dw"},
		{"[-a]", "-a", "b"},
		{"[a-]", "-a", "b"},
		{"[^a-c]", "dZ\x00\x7f", "abc"},
		{`[\d_]`, "059_", "a"},
		{`[\-x]`, "-x", "a"},
		{`[\n]`, "\n", "n"},
		{"[.]", ".", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			set, err := ParseClass(classToken(tt.text))
			if err != nil {
				t.Fatalf("ParseClass(%q) error: %v", tt.text, err)
			}
			for i := 0; i < len(tt.in); i++ {
				if !set.Contains(tt.in[i]) {
					t.Errorf("%s should contain %q", tt.text, tt.in[i])
				}
			}
			for i := 0; i < len(tt.out); i++ {
				if set.Contains(tt.out[i]) {
					t.Errorf("%s should not contain %q", tt.text, tt.out[i])
				}
			}
		})
	}
}

func TestParseClass_NegationIsComplement(t *testing.T) {
	pos, err := ParseClass(classToken("[a-c]"))
	if err != nil {
		t.Fatal(err)
	}
	neg, err := ParseClass(classToken("[^a-c]"))
	if err != nil {
		t.Fatal(err)
	}
	for c := 0; c <= MaxChar; c++ {
		if pos.Contains(byte(c)) == neg.Contains(byte(c)) {
			t.Errorf("char %d: [a-c]=%v [^a-c]=%v", c, pos.Contains(byte(c)), neg.Contains(byte(c)))
		}
	}
	if pos.Len()+neg.Len() != MaxChar+1 {
		t.Errorf("sizes %d + %d != 128", pos.Len(), neg.Len())
	}
}

func TestParseClass_Errors(t *testing.T) {
	tests := []string{
		"[]",
		"[^]",
		"[z-a]",
		"[abc",
		`[a\]`,
		`[a-\d]`,
		"[é]",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := ParseClass(classToken(text))
			if !errors.Is(err, ErrInvalidExpression) {
				t.Errorf("ParseClass(%q) error = %v, want ErrInvalidExpression", text, err)
			}
		})
	}
}

func TestAtom(t *testing.T) {
	tests := []struct {
		tok  Token
		size int
		has  byte
	}{
		{Token{Kind: Literal, Text: "a"}, 1, 'a'},
		{Token{Kind: Escape, Text: `\.`}, 1, '.'},
		{Token{Kind: Escape, Text: `\n`}, 1, '\n'},
		{Token{Kind: Escape, Text: `\d`}, 10, '7'},
		{Token{Kind: Escape, Text: `\w`}, 63, '_'},
		{Token{Kind: Escape, Text: `\s`}, 6, ' '},
		{Token{Kind: Escape, Text: `\D`}, 118, 'x'},
	}
	for _, tt := range tests {
		set, err := Atom(tt.tok)
		if err != nil {
			t.Errorf("Atom(%q) error: %v", tt.tok.Text, err)
			continue
		}
		if set.Len() != tt.size {
			t.Errorf("Atom(%q).Len() = %d, want %d", tt.tok.Text, set.Len(), tt.size)
		}
		if !set.Contains(tt.has) {
			t.Errorf("Atom(%q) should contain %q", tt.tok.Text, tt.has)
		}
	}
}

func TestAtom_Errors(t *testing.T) {
	bad := []Token{
		{Kind: Escape, Text: `\`},
		{Kind: Literal, Text: ""},
		{Kind: Literal, Text: "é"},
		{Kind: Meta, Text: "*"},
	}
	for _, tok := range bad {
		if _, err := Atom(tok); !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("Atom(%q) error = %v, want ErrInvalidExpression", tok.Text, err)
		}
	}
}

func TestChar(t *testing.T) {
	if c, ok := Char(Token{Kind: Escape, Text: `\*`}); !ok || c != '*' {
		t.Errorf(`Char(\*) = %q, %v`, c, ok)
	}
	if _, ok := Char(Token{Kind: Escape, Text: `\d`}); ok {
		t.Error(`Char(\d) should report false`)
	}
	if _, ok := Char(Token{Kind: Class, Text: "[a]"}); ok {
		t.Error("Char([a]) should report false")
	}
}

func TestCharSet_Single(t *testing.T) {
	var s CharSet
	s.Add('z')
	if c, ok := s.Single(); !ok || c != 'z' {
		t.Errorf("Single() = %q, %v", c, ok)
	}
	s.Add('\x01')
	if _, ok := s.Single(); ok {
		t.Error("two-member set reported single")
	}
	s.Add(200)
	if s.Len() != 2 {
		t.Errorf("non-ASCII Add changed the set: Len = %d", s.Len())
	}
	if got := string(s.Chars()); got != "\x01z" {
		t.Errorf("Chars() = %q", got)
	}
}
