package syntax

import (
	"errors"
	"testing"
)

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// TestTokenize tests the lexical rules for every token kind
func TestTokenize(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
		kinds   []Kind
	}{
		{"", []string{}, []Kind{}},
		{"abc", []string{"a", "b", "c"}, []Kind{Literal, Literal, Literal}},
		{`a\.b`, []string{"a", `\.`, "b"}, []Kind{Literal, Escape, Literal}},
		{"[a-c]x", []string{"[a-c]", "x"}, []Kind{Class, Literal}},
		{"a{2,3}", []string{"a", "{2,3}"}, []Kind{Literal, Repeat}},
		{"(a|b)*", []string{"(", "a", "|", "b", ")", "*"}, []Kind{Meta, Literal, Meta, Literal, Meta, Meta}},
		{"^a.$", []string{"^", "a", ".", "$"}, []Kind{Meta, Literal, Meta, Meta}},
		{"[(]", []string{"[(]"}, []Kind{Class}},
		{"a]}", []string{"a", "]", "}"}, []Kind{Literal, Literal, Literal}},
		{`\`, []string{`\`}, []Kind{Escape}},
		{"[abc", []string{"[abc"}, []Kind{Class}},
		{"a{2", []string{"a", "{2"}, []Kind{Literal, Repeat}},
		{"é", []string{"é"}, []Kind{Literal}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := Tokenize(tt.pattern)
			gotTexts := texts(got)
			if len(gotTexts) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tt.pattern, gotTexts, tt.want)
			}
			for i := range tt.want {
				if gotTexts[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, gotTexts[i], tt.want[i])
				}
				if got[i].Kind != tt.kinds[i] {
					t.Errorf("token %d kind = %v, want %v", i, got[i].Kind, tt.kinds[i])
				}
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens := Tokenize(`a[bc]\d{1}`)
	wantPos := []int{0, 1, 5, 7}
	if len(tokens) != len(wantPos) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(wantPos))
	}
	for i, tok := range tokens {
		if tok.Pos != wantPos[i] {
			t.Errorf("token %q at %d, want %d", tok.Text, tok.Pos, wantPos[i])
		}
	}
}

func TestToken_Terminated(t *testing.T) {
	tests := []struct {
		tok  Token
		want bool
	}{
		{Token{Kind: Class, Text: "[a]"}, true},
		{Token{Kind: Class, Text: "[a"}, false},
		{Token{Kind: Class, Text: "["}, false},
		{Token{Kind: Repeat, Text: "{1}"}, true},
		{Token{Kind: Repeat, Text: "{1"}, false},
		{Token{Kind: Literal, Text: "a"}, true},
	}
	for _, tt := range tests {
		if got := tt.tok.Terminated(); got != tt.want {
			t.Errorf("%q.Terminated() = %v, want %v", tt.tok.Text, got, tt.want)
		}
	}
}

func TestToken_IsQuantifier(t *testing.T) {
	for _, tok := range Tokenize("*+?{3}") {
		if !tok.IsQuantifier() {
			t.Errorf("%q should be a quantifier", tok.Text)
		}
	}
	for _, tok := range Tokenize(`a|()\*[*]`) {
		if tok.IsQuantifier() {
			t.Errorf("%q should not be a quantifier", tok.Text)
		}
	}
}

func TestError_Is(t *testing.T) {
	err := Errorf(3, "bad %s", "thing")
	if !errors.Is(err, ErrInvalidExpression) {
		t.Fatalf("errors.Is(%v, ErrInvalidExpression) = false", err)
	}
	want := "invalid expression at offset 3: bad thing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noPos := &Error{Pos: -1, Msg: "x"}
	if noPos.Error() != "invalid expression: x" {
		t.Errorf("Error() = %q", noPos.Error())
	}
}
