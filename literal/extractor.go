package literal

import (
	"github.com/coregx/thompson/syntax"
)

// ExtractorConfig configures literal extraction limits.
type ExtractorConfig struct {
	// MaxLiterals limits the number of top-level branches. Patterns with more
	// branches yield an empty Seq. Default: 64.
	MaxLiterals int

	// MaxLiteralLen truncates longer runs; a truncated literal is never
	// complete. Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor finds the longest run of consecutive required characters in
// every top-level branch of a tokenized pattern.
//
// A character is required when its atom is a single character that is not
// made optional by *, ? or a {0,n} repetition. A + or {m,n} with m >= 1 keeps
// the character but ends the run, since the repeated copies may follow.
// Groups, classes with more than one member, '.' and shorthand escapes end
// the current run.
//
// Example:
//
//	seq := literal.Extract(syntax.Tokenize("ab*cde|x+yz"))
//	// seq = ["yz", "cde"], shortest first
type Extractor struct {
	config ExtractorConfig
}

// New creates a new literal extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Extract runs the default extractor over tokens.
func Extract(tokens []syntax.Token) *Seq {
	return New(DefaultConfig()).Extract(tokens)
}

// Extract returns one required literal per top-level branch, or an empty Seq
// if any branch has none. Malformed token streams yield an empty Seq; the
// compiler reports them.
func (e *Extractor) Extract(tokens []syntax.Token) *Seq {
	branches, ok := splitTop(tokens)
	if !ok || len(branches) > e.config.MaxLiterals {
		return NewSeq()
	}

	lits := make([]Literal, 0, len(branches))
	for _, branch := range branches {
		lit, ok := e.branch(branch)
		if !ok {
			return NewSeq()
		}
		lits = append(lits, lit)
	}
	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

// branch scans one alternative. It reports false when no character of the
// branch is required.
func (e *Extractor) branch(tokens []syntax.Token) (Literal, bool) {
	var best, run []byte
	complete := true
	flush := func() {
		if len(run) > len(best) {
			best = run
		}
		run = nil
	}

	for i := 0; i < len(tokens); {
		t := tokens[i]
		if (t.Is('^') && i == 0) || (t.Is('$') && i == len(tokens)-1) {
			i++
			continue
		}

		next := i + 1
		if t.Is('(') {
			next = groupEnd(tokens, i)
		}
		c, single := atomChar(t, i)

		if next < len(tokens) && tokens[next].IsQuantifier() {
			complete = false
			if single && required(tokens[next]) {
				run = append(run, c)
			}
			flush()
			i = next + 1
			continue
		}

		if single {
			run = append(run, c)
		} else {
			complete = false
			flush()
		}
		i = next
	}
	flush()

	if len(best) == 0 {
		return Literal{}, false
	}
	if len(best) > e.config.MaxLiteralLen {
		best = best[:e.config.MaxLiteralLen]
		complete = false
	}
	return NewLiteral(best, complete), true
}

// atomChar returns the character consumed by the atom at tokens[i], if it
// consumes exactly one.
func atomChar(t syntax.Token, i int) (byte, bool) {
	switch {
	case t.Is('^') && i > 0:
		return '^', true
	case t.Kind == syntax.Class:
		set, err := syntax.ParseClass(t)
		if err != nil {
			return 0, false
		}
		return set.Single()
	default:
		return syntax.Char(t)
	}
}

// required reports whether quantifier q keeps at least one copy of its atom.
func required(q syntax.Token) bool {
	switch {
	case q.Is('+'):
		return true
	case q.Kind == syntax.Repeat:
		minCount, _, err := syntax.ParseRepeat(q)
		return err == nil && minCount >= 1
	default:
		return false
	}
}

// groupEnd returns the index just past the ')' balancing tokens[i].
func groupEnd(tokens []syntax.Token, i int) int {
	depth := 0
	for j := i; j < len(tokens); j++ {
		switch {
		case tokens[j].Is('('):
			depth++
		case tokens[j].Is(')'):
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(tokens)
}

// splitTop splits tokens at '|' outside parentheses. It reports false for
// unbalanced parentheses.
func splitTop(tokens []syntax.Token) ([][]syntax.Token, bool) {
	var branches [][]syntax.Token
	depth, from := 0, 0
	for i, t := range tokens {
		switch {
		case t.Is('('):
			depth++
		case t.Is(')'):
			depth--
			if depth < 0 {
				return nil, false
			}
		case t.Is('|') && depth == 0:
			branches = append(branches, tokens[from:i])
			from = i + 1
		}
	}
	if depth != 0 {
		return nil, false
	}
	return append(branches, tokens[from:]), true
}
