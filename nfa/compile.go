package nfa

import (
	"fmt"

	"github.com/coregx/thompson/syntax"
)

// Logger receives construction traces. *logger.ConsoleLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
}

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// LegacyDot compiles '.' as a free epsilon move that consumes nothing,
	// the behavior of the engine this package replaces. By default '.'
	// consumes exactly one character in 0-127.
	LegacyDot bool

	// MaxRecursionDepth limits group nesting to prevent stack overflow
	// Default: 100
	MaxRecursionDepth int

	// MaxRepeat limits the counts of a bounded repetition {m,n}
	// Default: 1000
	MaxRepeat int

	// MaxStates limits the size of any arena built during compilation
	// Default: 1 << 20
	MaxStates int

	// Logger, when non-nil, receives construction traces
	Logger Logger
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 100,
		MaxRepeat:         1000,
		MaxStates:         1 << 20,
	}
}

// Validate rejects negative limits.
func (c CompilerConfig) Validate() error {
	if c.MaxRecursionDepth < 0 || c.MaxRepeat < 0 || c.MaxStates < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Compiler compiles pattern tokens into Thompson NFAs.
// A Compiler is not safe for concurrent use; the NFAs it returns are.
type Compiler struct {
	config CompilerConfig
	depth  int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration.
// Zero limits are replaced by their defaults.
func NewCompiler(config CompilerConfig) *Compiler {
	def := DefaultCompilerConfig()
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = def.MaxRecursionDepth
	}
	if config.MaxRepeat == 0 {
		config.MaxRepeat = def.MaxRepeat
	}
	if config.MaxStates == 0 {
		config.MaxStates = def.MaxStates
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile tokenizes and compiles pattern. Every failure wraps
// ErrInvalidExpression inside a *CompileError.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	n, err := c.CompileTokens(syntax.Tokenize(pattern))
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return n, nil
}

// CompileTokens compiles an already tokenized pattern.
func (c *Compiler) CompileTokens(tokens []syntax.Token) (*NFA, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	c.depth = 0
	n, err := c.build(tokens)
	if err != nil {
		return nil, err
	}
	c.tracef("compiled %d tokens into %v", len(tokens), n)
	return n, nil
}

func (c *Compiler) tracef(format string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Debugf(format, args...)
	}
}

// build compiles tokens into a standalone automaton. It is re-entered for
// every group and for every copy of a repeated body; the caller splices
// the result into its own arena.
func (c *Compiler) build(tokens []syntax.Token) (*NFA, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrTooComplex, c.config.MaxRecursionDepth)
	}

	branches, err := splitBranches(tokens)
	if err != nil {
		return nil, err
	}

	b := NewBuilderWithCapacity(2*len(tokens) + 2)
	start := b.AddState()
	end := b.AddState()
	b.SetStart(start)
	b.SetEnd(end)

	for _, branch := range branches {
		entry := start
		if len(branches) > 1 {
			entry = b.AddState()
			b.AddEpsilon(start, entry)
		}
		frontier, err := c.sequence(b, entry, end, branch)
		if err != nil {
			return nil, err
		}
		for _, s := range frontier {
			if s != end {
				b.AddEpsilon(s, end)
			}
		}
	}
	if len(branches) > 1 {
		c.tracef("alternation of %d branches", len(branches))
	}

	return b.Build()
}

// splitBranches splits tokens at every '|' outside parentheses and checks
// that parentheses balance.
func splitBranches(tokens []syntax.Token) ([][]syntax.Token, error) {
	var branches [][]syntax.Token
	depth, from := 0, 0
	open := -1
	for i, t := range tokens {
		switch {
		case t.Is('('):
			if depth == 0 {
				open = t.Pos
			}
			depth++
		case t.Is(')'):
			if depth == 0 {
				return nil, syntax.Errorf(t.Pos, "unmatched )")
			}
			depth--
		case t.Is('|') && depth == 0:
			branches = append(branches, tokens[from:i])
			from = i + 1
		}
	}
	if depth != 0 {
		return nil, syntax.Errorf(open, "missing )")
	}
	return append(branches, tokens[from:]), nil
}

// sequence wires one branch after entry and returns the final frontier: the
// states the next fragment would attach to.
func (c *Compiler) sequence(b *Builder, entry, end StateID, tokens []syntax.Token) ([]StateID, error) {
	frontier := []StateID{entry}
	for i := 0; i < len(tokens); {
		t := tokens[i]
		switch {
		case t.Is('^') && i == 0:
			s := b.AddState()
			link(b, frontier, s)
			frontier = []StateID{s}
			i++
			continue
		case t.Is('$'):
			if i != len(tokens)-1 {
				return nil, syntax.Errorf(t.Pos, "$ must be the last token")
			}
			link(b, frontier, end)
			return []StateID{end}, nil
		case t.IsQuantifier():
			return nil, syntax.Errorf(t.Pos, "missing operand for %s", t.Text)
		}

		next := atomEnd(tokens, i)
		atom := tokens[i:next]
		if next < len(tokens) && tokens[next].IsQuantifier() {
			q := tokens[next]
			if next+1 < len(tokens) && tokens[next+1].IsQuantifier() {
				return nil, syntax.Errorf(tokens[next+1].Pos, "nested quantifier %s%s", q.Text, tokens[next+1].Text)
			}
			var err error
			if frontier, err = c.quantify(b, frontier, atom, q); err != nil {
				return nil, err
			}
			i = next + 1
			continue
		}

		in, out, err := c.fragment(b, atom)
		if err != nil {
			return nil, err
		}
		link(b, frontier, in)
		frontier = []StateID{out}
		i = next
	}
	return frontier, nil
}

// atomEnd returns the index just past the atom starting at tokens[i]. A group
// spans to its balancing ')'; everything else is one token.
func atomEnd(tokens []syntax.Token, i int) int {
	if !tokens[i].Is('(') {
		return i + 1
	}
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

// link adds an epsilon transition from every frontier state to target.
func link(b *Builder, frontier []StateID, target StateID) {
	for _, s := range frontier {
		b.AddEpsilon(s, target)
	}
}

// fragment compiles one atom into a fresh (in, out) pair with no incoming
// edges, so quantifiers can wire loops and bypasses around it.
func (c *Compiler) fragment(b *Builder, atom []syntax.Token) (in, out StateID, err error) {
	t := atom[0]
	switch {
	case t.Is('('):
		if len(atom) < 2 || !atom[len(atom)-1].Is(')') {
			return InvalidState, InvalidState, syntax.Errorf(t.Pos, "missing )")
		}
		sub, err := c.build(atom[1 : len(atom)-1])
		if err != nil {
			return InvalidState, InvalidState, err
		}
		c.tracef("group at offset %d: splicing %d states", t.Pos, sub.States())
		in, out = b.Splice(sub)
	case t.Is('.'):
		in, out = b.AddState(), b.AddState()
		if c.config.LegacyDot {
			b.AddEpsilon(in, out)
		} else {
			b.AddSet(in, out, syntax.Any)
		}
	case t.Is('^'):
		// Not in first position: an ordinary character.
		in, out = b.AddState(), b.AddState()
		b.AddChar(in, out, '^')
	case t.Kind == syntax.Class:
		set, err := syntax.ParseClass(t)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		in, out = b.AddState(), b.AddState()
		b.AddSet(in, out, set)
	case t.Kind == syntax.Literal, t.Kind == syntax.Escape:
		set, err := syntax.Atom(t)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		in, out = b.AddState(), b.AddState()
		b.AddSet(in, out, set)
	default:
		return InvalidState, InvalidState, syntax.Errorf(t.Pos, "unexpected %s", t.Text)
	}

	if b.States() > c.config.MaxStates {
		return InvalidState, InvalidState, fmt.Errorf("%w: more than %d states", ErrTooComplex, c.config.MaxStates)
	}
	return in, out, nil
}

// quantify applies q to atom. The operand must hang off a single state.
//
//	a*   prev -> in, prev -> out, out -> in
//	a+   prev -> in, out -> in
//	a?   prev -> in, prev -> out
func (c *Compiler) quantify(b *Builder, frontier []StateID, atom []syntax.Token, q syntax.Token) ([]StateID, error) {
	if len(frontier) != 1 {
		return nil, syntax.Errorf(q.Pos, "%s requires a single preceding fragment", q.Text)
	}
	prev := frontier[0]

	if q.Kind == syntax.Repeat {
		return c.repeat(b, prev, atom, q)
	}

	in, out, err := c.fragment(b, atom)
	if err != nil {
		return nil, err
	}
	b.AddEpsilon(prev, in)
	switch {
	case q.Is('*'):
		b.AddEpsilon(prev, out)
		b.AddEpsilon(out, in)
	case q.Is('+'):
		b.AddEpsilon(out, in)
	case q.Is('?'):
		b.AddEpsilon(prev, out)
	}
	return []StateID{out}, nil
}

// repeat compiles atom{m,n}. The body is rebuilt for every copy: m copies
// are chained, then n-m optional copies each fan in to one shared post
// state. {m,} ends with a starred copy instead.
func (c *Compiler) repeat(b *Builder, prev StateID, atom []syntax.Token, q syntax.Token) ([]StateID, error) {
	minCount, maxCount, err := syntax.ParseRepeat(q)
	if err != nil {
		return nil, err
	}
	if minCount > c.config.MaxRepeat || maxCount > c.config.MaxRepeat {
		return nil, syntax.Errorf(q.Pos, "repetition count exceeds %d", c.config.MaxRepeat)
	}
	c.tracef("repetition %s at offset %d", q.Text, q.Pos)

	cur := prev
	for k := 0; k < minCount; k++ {
		in, out, err := c.fragment(b, atom)
		if err != nil {
			return nil, err
		}
		b.AddEpsilon(cur, in)
		cur = out
	}

	switch {
	case maxCount == syntax.Unbounded:
		in, out, err := c.fragment(b, atom)
		if err != nil {
			return nil, err
		}
		b.AddEpsilon(cur, in)
		b.AddEpsilon(cur, out)
		b.AddEpsilon(out, in)
		cur = out
	case maxCount > minCount:
		post := b.AddState()
		for k := minCount; k < maxCount; k++ {
			in, out, err := c.fragment(b, atom)
			if err != nil {
				return nil, err
			}
			b.AddEpsilon(cur, post)
			b.AddEpsilon(cur, in)
			cur = out
		}
		b.AddEpsilon(cur, post)
		cur = post
	case minCount == 0:
		// {0} and {0,0}: the atom must still be well-formed.
		if _, _, err := c.fragment(NewBuilder(), atom); err != nil {
			return nil, err
		}
	}
	return []StateID{cur}, nil
}
