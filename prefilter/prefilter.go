// Package prefilter rejects inputs that cannot be accepted before the NFA is
// simulated.
//
// Every accepted input contains at least one of the literals extracted by
// package literal, one per top-level branch. A prefilter searches the input
// for those literals and reports whether any occurs:
//   - One literal → substring search
//   - Several literals → Aho-Corasick automaton
//
// A false result proves the input is rejected. A true result proves nothing
// and the automaton must still decide.
package prefilter

import (
	"bytes"
	"fmt"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/thompson/literal"
)

// Prefilter reports whether an input may be accepted.
type Prefilter interface {
	// IsMatch reports whether haystack contains one of the literals.
	// False means no branch can accept haystack.
	IsMatch(haystack []byte) bool

	// IsComplete reports whether every branch is a plain literal, so that
	// whole-string acceptance reduces to equality with one of them.
	IsComplete() bool

	// Literals returns the number of literals searched for.
	Literals() int
}

// Builder constructs a prefilter from extracted literals.
type Builder struct {
	seq *literal.Seq
}

// NewBuilder creates a new prefilter builder from an extracted literal sequence.
func NewBuilder(seq *literal.Seq) *Builder {
	return &Builder{seq: seq}
}

// Build constructs the prefilter for the literals.
//
// Returns nil, nil if no prefilter applies: the sequence is empty or some
// literal is empty, which would make every input a candidate.
func (b *Builder) Build() (Prefilter, error) {
	seq := b.seq
	if seq.IsEmpty() {
		return nil, nil
	}
	for i := 0; i < seq.Len(); i++ {
		if seq.Get(i).Len() == 0 {
			return nil, nil
		}
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		return &memmemPrefilter{needle: lit.Bytes, complete: lit.Complete}, nil
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building Aho-Corasick automaton for %d literals: %w", seq.Len(), err)
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		count:    seq.Len(),
		complete: seq.AllComplete(),
	}, nil
}

// memmemPrefilter searches for a single literal.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func (p *memmemPrefilter) IsMatch(haystack []byte) bool {
	return bytes.Contains(haystack, p.needle)
}

func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memmemPrefilter) Literals() int {
	return 1
}

// ahoCorasickPrefilter searches for any of several literals in one pass.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	count    int
	complete bool
}

func (p *ahoCorasickPrefilter) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

func (p *ahoCorasickPrefilter) Literals() int {
	return p.count
}
