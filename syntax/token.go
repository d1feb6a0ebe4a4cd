package syntax

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind uint8

const (
	// Literal is a single ordinary character.
	Literal Kind = iota

	// Escape is a backslash followed by one character, e.g. `\.` or `\d`.
	Escape

	// Class is a bracket expression including its delimiters, e.g. `[a-z]`.
	Class

	// Repeat is a brace expression including its delimiters, e.g. `{2,3}`.
	Repeat

	// Meta is one of the single-character operators | * + ? ^ $ . ( )
	Meta
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Escape:
		return "Escape"
	case Class:
		return "Class"
	case Repeat:
		return "Repeat"
	case Meta:
		return "Meta"
	default:
		return "Unknown"
	}
}

const metaChars = "|*+?^$.()"

// Token is one lexical unit of a pattern.
type Token struct {
	Kind Kind
	Text string // raw text, delimiters included
	Pos  int    // byte offset of Text in the pattern
}

// Is reports whether t is the meta operator op.
func (t Token) Is(op byte) bool {
	return t.Kind == Meta && len(t.Text) == 1 && t.Text[0] == op
}

// IsQuantifier reports whether t is *, +, ? or a brace expression.
func (t Token) IsQuantifier() bool {
	return t.Is('*') || t.Is('+') || t.Is('?') || t.Kind == Repeat
}

// Terminated reports whether a Class or Repeat token has its closing
// delimiter. It is always true for other kinds.
func (t Token) Terminated() bool {
	switch t.Kind {
	case Class:
		return len(t.Text) >= 2 && t.Text[len(t.Text)-1] == ']'
	case Repeat:
		return len(t.Text) >= 2 && t.Text[len(t.Text)-1] == '}'
	default:
		return true
	}
}

// String returns the raw token text.
func (t Token) String() string {
	return t.Text
}

// Tokenize splits pattern into tokens, left to right:
//
//   - `\` plus the next character is one Escape token
//   - `[` runs to the first `]` as one Class token
//   - `{` runs to the first `}` as one Repeat token
//   - | * + ? ^ $ . ( ) are Meta tokens
//   - anything else is a one-character Literal token
//
// An unmatched `[` or `{` consumes the rest of the pattern.
func Tokenize(pattern string) []Token {
	tokens := make([]Token, 0, len(pattern))
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\\':
			end := i + 1
			if end < len(pattern) {
				_, size := utf8.DecodeRuneInString(pattern[end:])
				end += size
			}
			tokens = append(tokens, Token{Kind: Escape, Text: pattern[i:end], Pos: i})
			i = end
		case c == '[' || c == '{':
			closer, kind := byte(']'), Class
			if c == '{' {
				closer, kind = '}', Repeat
			}
			end := len(pattern)
			if j := strings.IndexByte(pattern[i+1:], closer); j >= 0 {
				end = i + 1 + j + 1
			}
			tokens = append(tokens, Token{Kind: kind, Text: pattern[i:end], Pos: i})
			i = end
		case strings.IndexByte(metaChars, c) >= 0:
			tokens = append(tokens, Token{Kind: Meta, Text: pattern[i : i+1], Pos: i})
			i++
		default:
			_, size := utf8.DecodeRuneInString(pattern[i:])
			tokens = append(tokens, Token{Kind: Literal, Text: pattern[i : i+size], Pos: i})
			i += size
		}
	}
	return tokens
}
