// Package thompson compiles a small regular-expression language into a
// Thompson NFA and decides whether whole input strings are accepted.
//
// Acceptance is whole-string: an input is accepted only if some path through
// the automaton consumes all of it and ends in the accepting state. There is
// no substring search and no capture extraction.
//
// Supported syntax:
//   - Literal characters and `\` escapes (`\d \w \s` and their negations,
//     `\n \t \r \f \v`, any other escaped character stands for itself)
//   - `.` for any ASCII character
//   - Alternation `a|b`, grouping `( )`
//   - Quantifiers `*`, `+`, `?` and bounded repetition `{m}`, `{m,}`, `{m,n}`
//   - Bracket expressions `[a-z]`, `[^0-9]`
//   - `^` at the start and `$` at the end of a branch
//
// Basic usage:
//
//	a, err := thompson.Compile(`(ab|cd)*e{1,3}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(a.Matches("abcdee")) // true
//
// A compiled Automaton is immutable and safe for concurrent use.
package thompson

import (
	"unsafe"

	"github.com/coregx/thompson/literal"
	"github.com/coregx/thompson/nfa"
	"github.com/coregx/thompson/prefilter"
	"github.com/coregx/thompson/syntax"
)

// Errors returned by Compile. Every compile failure satisfies
// errors.Is(err, ErrInvalidExpression).
var (
	ErrInvalidExpression = nfa.ErrInvalidExpression
	ErrTooComplex        = nfa.ErrTooComplex
	ErrInvalidConfig     = nfa.ErrInvalidConfig
)

// CompileError carries the pattern that failed to compile.
type CompileError = nfa.CompileError

// Automaton is a compiled pattern.
//
// Example:
//
//	a := thompson.MustCompile(`[a-c]+`)
//	a.Matches("abc") // true
//	a.Matches("abd") // false
type Automaton struct {
	pattern string
	config  Config
	nfa     *nfa.NFA
	sim     *nfa.Simulator

	// exact holds the accepted strings when the pattern is a plain literal
	// alternation; the automaton is not consulted then.
	exact map[string]struct{}

	// filter rejects inputs holding none of the required literals.
	filter *prefilter.Tracker
}

// Compile compiles pattern with DefaultConfig.
//
// Example:
//
//	a, err := thompson.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Automaton, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// Example:
//
//	var isHex = thompson.MustCompile(`0x[0-9a-f]+`)
func MustCompile(pattern string) *Automaton {
	a, err := Compile(pattern)
	if err != nil {
		panic("thompson: Compile(`" + pattern + "`): " + err.Error())
	}
	return a
}

// CompileWithConfig compiles pattern with config.
func CompileWithConfig(pattern string, config Config) (*Automaton, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiler := nfa.NewCompiler(config.compilerConfig())
	n, err := compiler.Compile(pattern)
	if err != nil {
		return nil, err
	}

	a := &Automaton{
		pattern: pattern,
		config:  config,
		nfa:     n,
		sim:     nfa.NewSimulator(n),
	}
	if config.Prefilter {
		a.buildPrefilter()
	}
	return a, nil
}

// buildPrefilter derives the literal fast paths. A failure only disables
// them; the automaton alone is always correct.
func (a *Automaton) buildPrefilter() {
	seq := literal.Extract(syntax.Tokenize(a.pattern))
	pf, err := prefilter.NewBuilder(seq).Build()
	if err != nil {
		a.tracef("prefilter disabled: %v", err)
		return
	}
	if pf == nil {
		return
	}

	if pf.IsComplete() {
		a.exact = make(map[string]struct{}, seq.Len())
		for i := 0; i < seq.Len(); i++ {
			a.exact[string(seq.Get(i).Bytes)] = struct{}{}
		}
		a.tracef("pattern %q is %d plain literals", a.pattern, seq.Len())
		return
	}

	config := prefilter.DefaultTrackerConfig()
	config.OnRetire = func(tr *prefilter.Tracker) {
		checks, rejects, efficiency, _ := tr.Stats()
		a.tracef("prefilter over %d literals retired: %d of %d inputs rejected (%.2f)",
			tr.Inner().Literals(), rejects, checks, efficiency)
	}
	a.filter = prefilter.NewTrackerWithConfig(pf, config)
	a.tracef("prefilter over %d literals", pf.Literals())
}

func (a *Automaton) tracef(format string, args ...any) {
	if a.config.Logger != nil {
		a.config.Logger.Debugf(format, args...)
	}
}

// Matches reports whether the whole of input is accepted.
func (a *Automaton) Matches(input string) bool {
	if a.exact != nil {
		_, ok := a.exact[input]
		return ok
	}
	if a.filter != nil && a.filter.Reject(unsafe.Slice(unsafe.StringData(input), len(input))) {
		return false
	}
	return a.sim.MatchString(input)
}

// Match reports whether the whole of input is accepted.
func (a *Automaton) Match(input []byte) bool {
	if a.exact != nil {
		_, ok := a.exact[string(input)]
		return ok
	}
	if a.filter != nil && a.filter.Reject(input) {
		return false
	}
	return a.sim.Match(input)
}

// Pattern returns the source text used to compile the automaton.
func (a *Automaton) Pattern() string {
	return a.pattern
}

// String returns the source text used to compile the automaton.
func (a *Automaton) String() string {
	return a.pattern
}

// NFA returns the underlying automaton, for inspection or code generation.
func (a *Automaton) NFA() *nfa.NFA {
	return a.nfa
}

// States returns the number of NFA states.
func (a *Automaton) States() int {
	return a.nfa.States()
}

// Prefiltered reports whether a literal fast path is in use.
func (a *Automaton) Prefiltered() bool {
	return a.exact != nil || a.filter.IsActive()
}
