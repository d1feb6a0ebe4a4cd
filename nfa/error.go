// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// for whole-string pattern acceptance.
//
// Patterns are tokenized by package syntax and compiled into an arena of
// states joined by epsilon and single-character transitions. Groups and
// repeated bodies are compiled as standalone sub-automata and spliced into
// the parent arena by re-basing their handles. The Simulator walks the
// automaton with a current-state set expanded by epsilon-closure after every
// character.
package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/thompson/syntax"
)

// Common NFA errors
var (
	// ErrInvalidExpression is the error kind for every malformed pattern.
	ErrInvalidExpression = syntax.ErrInvalidExpression

	// ErrTooComplex indicates the pattern exceeds the compiler's nesting or
	// state limits. It wraps ErrInvalidExpression.
	ErrTooComplex = fmt.Errorf("%w: pattern too complex", ErrInvalidExpression)

	// ErrInvalidConfig indicates invalid configuration was provided
	ErrInvalidConfig = errors.New("invalid NFA configuration")
)

// CompileError wraps compilation errors with the offending pattern
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents a malformed arena detected by Builder.Build
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns ErrInvalidExpression: a malformed arena reaching Compile
// is reported like any other compile failure.
func (e *BuildError) Unwrap() error {
	return ErrInvalidExpression
}
