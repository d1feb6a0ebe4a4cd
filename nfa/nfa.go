package nfa

import (
	"fmt"
)

// StateID is an arena handle for an NFA state.
// Handles are positions in the owning NFA's state slice.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Transition is a directed edge owned by its source state.
// An epsilon transition consumes nothing; otherwise it consumes exactly Char.
type Transition struct {
	Next    StateID
	Epsilon bool
	Char    byte
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	if t.Epsilon {
		return fmt.Sprintf("ε -> %d", t.Next)
	}
	return fmt.Sprintf("%q -> %d", t.Char, t.Next)
}

// State is a node of the automaton. It carries no payload beyond its
// outgoing transitions; whether it accepts is decided by comparing its ID
// with NFA.End.
type State struct {
	id          StateID
	transitions []Transition
}

// ID returns the state's handle
func (s *State) ID() StateID {
	return s.id
}

// Transitions returns the state's outgoing transitions.
// The slice must not be modified.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("State(%d, %d transitions)", s.id, len(s.transitions))
}

// NFA is a compiled Thompson automaton. It owns every state reachable from
// Start and is immutable once built, so one NFA may be simulated from many
// goroutines at once.
type NFA struct {
	// states contains all NFA states indexed by StateID
	states []State

	start StateID
	end   StateID
}

// Start returns the start state
func (n *NFA) Start() StateID {
	return n.start
}

// End returns the single accepting state
func (n *NFA) End() StateID {
	return n.end
}

// IsMatch reports whether id is the accepting state.
func (n *NFA) IsMatch(id StateID) bool {
	return id == n.end
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// Transitions returns the total number of transitions in the NFA
func (n *NFA) Transitions() int {
	total := 0
	for i := range n.states {
		total += len(n.states[i].transitions)
	}
	return total
}

// Iter returns an iterator over all states in the NFA
func (n *NFA) Iter() *StateIter {
	return &StateIter{nfa: n}
}

// StateIter is an iterator over NFA states in handle order
type StateIter struct {
	nfa *NFA
	pos int
}

// Next returns the next state in the iteration.
// Returns nil when iteration is complete.
func (it *StateIter) Next() *State {
	if it.pos >= len(it.nfa.states) {
		return nil
	}
	s := &it.nfa.states[it.pos]
	it.pos++
	return s
}

// HasNext returns true if there are more states to iterate
func (it *StateIter) HasNext() bool {
	return it.pos < len(it.nfa.states)
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, transitions: %d, start: %d, end: %d}",
		len(n.states), n.Transitions(), n.start, n.end)
}
