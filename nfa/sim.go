package nfa

import (
	"sync"

	"github.com/coregx/thompson/internal/ascii"
	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/internal/sparse"
)

// Simulator decides whole-string acceptance by walking an NFA with a set of
// simultaneously active states.
//
// Accepting is the identity test id == NFA.End, never a flag stored on a
// state, and per-call scratch space comes from a pool, so one Simulator is
// safe for concurrent use.
type Simulator struct {
	nfa  *NFA
	pool sync.Pool
}

// simState is the mutable scratch space of one Match call.
type simState struct {
	current *sparse.SparseSet
	next    *sparse.SparseSet
	closer  closer
}

// NewSimulator creates a Simulator for n.
func NewSimulator(n *NFA) *Simulator {
	s := &Simulator{nfa: n}
	capacity := conv.IntToUint32(n.States())
	s.pool.New = func() any {
		return &simState{
			current: sparse.NewSparseSet(capacity),
			next:    sparse.NewSparseSet(capacity),
			closer:  closer{nfa: n, queue: make([]StateID, 0, capacity)},
		}
	}
	return s
}

// NFA returns the automaton being simulated.
func (s *Simulator) NFA() *NFA {
	return s.nfa
}

// Match reports whether the whole of input is accepted. Inputs holding a
// byte outside 0-127 are rejected without simulation.
func (s *Simulator) Match(input []byte) bool {
	return ascii.IsASCII(input) && simulate(s, input)
}

// MatchString reports whether the whole of input is accepted.
func (s *Simulator) MatchString(input string) bool {
	return ascii.IsASCIIString(input) && simulate(s, input)
}

func simulate[T ~string | ~[]byte](s *Simulator, input T) bool {
	st := s.pool.Get().(*simState)
	defer s.pool.Put(st)

	st.current.Clear()
	st.closer.add(st.current, s.nfa.start)
	st.closer.saturate(st.current)

	for i := 0; i < len(input); i++ {
		c := input[i]
		st.next.Clear()
		for _, id := range st.current.Values() {
			for _, t := range s.nfa.states[id].transitions {
				if !t.Epsilon && t.Char == c {
					st.closer.add(st.next, t.Next)
				}
			}
		}
		st.closer.saturate(st.next)
		if st.next.IsEmpty() {
			return false
		}
		st.current, st.next = st.next, st.current
	}

	return st.current.Contains(uint32(s.nfa.end))
}
