// Package literal extracts the literal byte runs that every accepted input
// must contain.
//
// A pattern is accepted only if one of its top-level branches accepts, so the
// extracted Seq holds one required run per branch. An input that contains
// none of them can be rejected without running the automaton.
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte run extracted from one branch of a pattern.
//
// Complete is true when the branch accepts exactly Bytes and nothing else,
// for example `abc` or `^a\.b$`.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals, one per top-level branch.
// An empty Seq means some branch requires no literal at all.
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete reports whether every branch is a plain literal. In that case
// whole-string acceptance is equality with one of the literals.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Contains reports whether some literal equals b.
func (s *Seq) Contains(b []byte) bool {
	if s == nil {
		return false
	}
	for _, lit := range s.literals {
		if bytes.Equal(lit.Bytes, b) {
			return true
		}
	}
	return false
}

// Minimize drops literals that another literal already covers for substring
// filtering: if "ab" occurs in "xaby", any input containing "xaby" also
// contains "ab", so only "ab" is needed. The kept literal then stands for a
// branch that is not a plain literal, so it loses Complete. Complete
// literals are never dropped because AllComplete relies on them. Exact
// duplicates are merged.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for i := range kept {
			if bytes.Equal(kept[i].Bytes, cur.Bytes) {
				kept[i].Complete = kept[i].Complete && cur.Complete
				redundant = true
				break
			}
			if !cur.Complete && bytes.Contains(cur.Bytes, kept[i].Bytes) {
				kept[i].Complete = false
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}
