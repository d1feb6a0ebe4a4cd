package nfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/thompson/syntax"
)

// buildAB returns an automaton accepting exactly "ab": 0 -a-> 1 -b-> 2.
func buildAB(t *testing.T) *NFA {
	t.Helper()
	b := NewBuilder()
	s0, s1, s2 := b.AddState(), b.AddState(), b.AddState()
	b.AddChar(s0, s1, 'a')
	b.AddChar(s1, s2, 'b')
	b.SetStart(s0)
	b.SetEnd(s2)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return n
}

func TestBuilder_Basic(t *testing.T) {
	n := buildAB(t)
	if n.States() != 3 {
		t.Errorf("States() = %d, want 3", n.States())
	}
	if n.Transitions() != 2 {
		t.Errorf("Transitions() = %d, want 2", n.Transitions())
	}
	if !n.IsMatch(2) || n.IsMatch(0) {
		t.Error("only the end state should be accepting")
	}

	sim := NewSimulator(n)
	if !sim.MatchString("ab") || sim.MatchString("a") || sim.MatchString("abb") {
		t.Error("hand-built automaton should accept exactly \"ab\"")
	}
}

func TestBuilder_AddSet(t *testing.T) {
	b := NewBuilder()
	in, out := b.AddState(), b.AddState()
	var set syntax.CharSet
	set.AddRange('0', '9')
	b.AddSet(in, out, set)
	b.SetStart(in)
	b.SetEnd(out)
	n, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(n.State(in).Transitions()); got != 10 {
		t.Errorf("AddSet created %d transitions, want 10", got)
	}
}

// TestBuilder_Splice tests that spliced handles are re-based by the host
// arena size and the sub-automaton keeps its behavior.
func TestBuilder_Splice(t *testing.T) {
	b := NewBuilder()
	pre := b.AddState()
	post := b.AddState()

	sub := buildAB(t)
	in, out := b.Splice(sub)
	if in != 2 || out != 4 {
		t.Fatalf("Splice() = (%d, %d), want (2, 4)", in, out)
	}
	if b.States() != 5 {
		t.Fatalf("States() = %d, want 5", b.States())
	}

	b.AddEpsilon(pre, in)
	b.AddEpsilon(out, post)
	b.SetStart(pre)
	b.SetEnd(post)
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	for it := n.Iter(); it.HasNext(); {
		s := it.Next()
		for _, tr := range s.Transitions() {
			if n.State(tr.Next) == nil {
				t.Errorf("state %d has dangling transition %v", s.ID(), tr)
			}
		}
	}
	if got := n.State(3).Transitions(); len(got) != 1 || got[0].Next != 4 || got[0].Char != 'b' {
		t.Errorf("re-based transition of state 3 = %v, want 'b' -> 4", got)
	}

	sim := NewSimulator(n)
	if !sim.MatchString("ab") || sim.MatchString("") {
		t.Error("spliced automaton should accept exactly \"ab\"")
	}
}

func TestBuilder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder)
		wantMsg string
	}{
		{
			name:    "no start",
			build:   func(b *Builder) { b.SetEnd(b.AddState()) },
			wantMsg: "start state not set",
		},
		{
			name: "no end",
			build: func(b *Builder) {
				b.SetStart(b.AddState())
			},
			wantMsg: "end state not set",
		},
		{
			name: "start out of bounds",
			build: func(b *Builder) {
				b.SetEnd(b.AddState())
				b.SetStart(7)
			},
			wantMsg: "start state out of bounds",
		},
		{
			name: "end out of bounds",
			build: func(b *Builder) {
				b.SetStart(b.AddState())
				b.SetEnd(7)
			},
			wantMsg: "end state out of bounds",
		},
		{
			name: "dangling target",
			build: func(b *Builder) {
				s := b.AddState()
				b.AddEpsilon(s, 9)
				b.SetStart(s)
				b.SetEnd(s)
			},
			wantMsg: "targets invalid state 9",
		},
		{
			name: "unknown source",
			build: func(b *Builder) {
				s := b.AddState()
				b.AddEpsilon(5, s)
				b.SetStart(s)
				b.SetEnd(s)
			},
			wantMsg: "state stored at position 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			_, err := b.Build()
			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("Build() error = %v, want *BuildError", err)
			}
			if !strings.Contains(be.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want to contain %q", be.Message, tt.wantMsg)
			}
		})
	}
}

func TestNFA_StateAccessors(t *testing.T) {
	n := buildAB(t)
	if n.State(InvalidState) != nil {
		t.Error("State(InvalidState) should be nil")
	}
	if n.State(3) != nil {
		t.Error("State(3) should be nil for a 3-state automaton")
	}
	if got := n.State(0).String(); got != "State(0, 1 transitions)" {
		t.Errorf("State(0).String() = %q", got)
	}
	if got := n.String(); got != "NFA{states: 3, transitions: 2, start: 0, end: 2}" {
		t.Errorf("String() = %q", got)
	}

	tests := []struct {
		tr   Transition
		want string
	}{
		{Transition{Next: 4, Epsilon: true}, "ε -> 4"},
		{Transition{Next: 1, Char: 'a'}, "'a' -> 1"},
		{Transition{Next: 2, Char: '\n'}, `'\n' -> 2`},
	}
	for _, tt := range tests {
		if got := tt.tr.String(); got != tt.want {
			t.Errorf("Transition.String() = %q, want %q", got, tt.want)
		}
	}

	it := n.Iter()
	for it.HasNext() {
		it.Next()
	}
	if it.Next() != nil {
		t.Error("exhausted iterator should return nil")
	}
}
