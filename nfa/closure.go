package nfa

import (
	"github.com/coregx/thompson/internal/conv"
	"github.com/coregx/thompson/internal/sparse"
)

// closer saturates a state set under epsilon transitions, breadth first.
// The queue is reused between calls.
type closer struct {
	nfa   *NFA
	queue []StateID
}

// add inserts id into set and schedules it for expansion if it is new.
func (c *closer) add(set *sparse.SparseSet, id StateID) {
	if set.Insert(uint32(id)) {
		c.queue = append(c.queue, id)
	}
}

// saturate follows epsilon transitions from every scheduled state until no
// new state is discovered.
func (c *closer) saturate(set *sparse.SparseSet) {
	for head := 0; head < len(c.queue); head++ {
		for _, t := range c.nfa.states[c.queue[head]].transitions {
			if t.Epsilon {
				c.add(set, t.Next)
			}
		}
	}
	c.queue = c.queue[:0]
}

// EpsilonClosure returns every state reachable from id using only epsilon
// transitions, id included, in breadth-first order.
func (n *NFA) EpsilonClosure(id StateID) []StateID {
	if n.State(id) == nil {
		return nil
	}
	set := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))
	c := closer{nfa: n}
	c.add(set, id)
	c.saturate(set)

	out := make([]StateID, set.Len())
	for i, v := range set.Values() {
		out[i] = StateID(v)
	}
	return out
}
