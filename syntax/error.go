// Package syntax splits pattern text into tokens and parses the structured
// tokens (bracket and brace expressions) that the NFA compiler consumes.
//
// The tokenizer never fails: unterminated bracket and brace expressions are
// absorbed to the end of the pattern and reported by Token.Terminated. All
// structural checks happen when tokens are interpreted, and every such
// failure is reported as ErrInvalidExpression.
package syntax

import (
	"errors"
	"fmt"
)

// ErrInvalidExpression is the single error kind for malformed patterns.
// Every compile-time failure wraps it.
var ErrInvalidExpression = errors.New("invalid expression")

// Error describes where and why a pattern is malformed.
type Error struct {
	Pos int    // byte offset of the offending token, -1 if unknown
	Msg string // short description
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%v at offset %d: %s", ErrInvalidExpression, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%v: %s", ErrInvalidExpression, e.Msg)
}

// Unwrap returns ErrInvalidExpression so errors.Is works on every syntax error.
func (e *Error) Unwrap() error {
	return ErrInvalidExpression
}

// Errorf builds an *Error for the token at pos.
func Errorf(pos int, format string, args ...any) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
