package nfa

import (
	"fmt"

	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/syntax"
)

// Builder constructs NFAs incrementally using a low-level API.
// It is used by the Compiler; wiring mistakes surface from Build as a
// *BuildError rather than at each call.
type Builder struct {
	states []State
	start  StateID
	end    StateID
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
		end:    InvalidState,
	}
}

// AddState allocates a state with no transitions and returns its ID
func (b *Builder) AddState() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id})
	return id
}

// AddEpsilon adds a transition from -> to that consumes no input.
func (b *Builder) AddEpsilon(from, to StateID) {
	b.addTransition(from, Transition{Next: to, Epsilon: true})
}

// AddChar adds a transition from -> to that consumes c.
func (b *Builder) AddChar(from, to StateID, c byte) {
	b.addTransition(from, Transition{Next: to, Char: c})
}

// AddSet adds one consuming transition from -> to for every member of set.
func (b *Builder) AddSet(from, to StateID, set syntax.CharSet) {
	for c := 0; c <= syntax.MaxChar; c++ {
		if set.Contains(byte(c)) {
			b.AddChar(from, to, byte(c))
		}
	}
}

// addTransition records t on from. Out-of-range sources are kept in a
// phantom slot so Validate can report them.
func (b *Builder) addTransition(from StateID, t Transition) {
	if int(from) >= len(b.states) {
		b.states = append(b.states, State{id: from, transitions: []Transition{t}})
		return
	}
	b.states[from].transitions = append(b.states[from].transitions, t)
}

// Splice moves every state of sub into this builder and returns the re-based
// start and end handles. Handles inside sub are shifted by the current arena
// size; sub must not be used afterwards.
func (b *Builder) Splice(sub *NFA) (start, end StateID) {
	offset := StateID(conv.IntToUint32(len(b.states)))
	for i := range sub.states {
		s := &sub.states[i]
		s.id += offset
		for j := range s.transitions {
			s.transitions[j].Next += offset
		}
		b.states = append(b.states, *s)
	}
	start, end = sub.start+offset, sub.end+offset
	sub.states = nil
	return start, end
}

// SetStart sets the starting state
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// SetEnd sets the accepting state
func (b *Builder) SetEnd(end StateID) {
	b.end = end
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
// - Start and end states are set and in bounds
// - Every state sits at the position its ID names
// - All transitions point to valid states
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	if b.end == InvalidState {
		return &BuildError{Message: "end state not set", StateID: InvalidState}
	}
	if int(b.end) >= len(b.states) {
		return &BuildError{Message: "end state out of bounds", StateID: b.end}
	}

	for i := range b.states {
		s := &b.states[i]
		if int(s.id) != i {
			return &BuildError{
				Message: fmt.Sprintf("state stored at position %d", i),
				StateID: s.id,
			}
		}
		for j, t := range s.transitions {
			if int(t.Next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("transition %d targets invalid state %d", j, t.Next),
					StateID: s.id,
				}
			}
		}
	}
	return nil
}

// Build validates the arena and returns the finished NFA.
// The builder must not be used afterwards.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	n := &NFA{
		states: b.states,
		start:  b.start,
		end:    b.end,
	}
	b.states = nil
	return n, nil
}
