package nfa

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes a Graphviz digraph of n to w. The accepting state is drawn
// as a doublecircle, epsilon edges are labelled ε, and the consuming edges
// between two states are merged into one edge labelled with character ranges.
func WriteDOT(w io.Writer, n *NFA) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph NFA {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	fmt.Fprintln(bw, "    node [shape=circle];")

	for i := range n.states {
		s := &n.states[i]
		if n.IsMatch(s.id) {
			fmt.Fprintf(bw, "    q%d [shape=doublecircle];\n", s.id)
		}

		// Group consuming edges by target, preserving first-seen order.
		var targets []StateID
		chars := make(map[StateID][]byte)
		for _, t := range s.transitions {
			if t.Epsilon {
				fmt.Fprintf(bw, "    q%d -> q%d [label=\"ε\"];\n", s.id, t.Next)
				continue
			}
			if _, ok := chars[t.Next]; !ok {
				targets = append(targets, t.Next)
			}
			chars[t.Next] = append(chars[t.Next], t.Char)
		}
		for _, to := range targets {
			fmt.Fprintf(bw, "    q%d -> q%d [label=\"%s\"];\n", s.id, to, dotLabel(chars[to]))
		}
	}

	fmt.Fprintf(bw, "    _start [shape=point]; _start -> q%d;\n", n.start)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// dotLabel renders chars as compact ranges, e.g. "a-c,x".
func dotLabel(chars []byte) string {
	var present [128]bool
	for _, c := range chars {
		if c < 128 {
			present[c] = true
		}
	}

	var parts []string
	for c := 0; c < 128; c++ {
		if !present[c] {
			continue
		}
		lo := c
		for c+1 < 128 && present[c+1] {
			c++
		}
		if lo == c {
			parts = append(parts, dotChar(byte(lo)))
		} else {
			parts = append(parts, dotChar(byte(lo))+"-"+dotChar(byte(c)))
		}
	}
	return strings.Join(parts, ",")
}

// dotChar escapes c for use inside a double-quoted DOT label.
func dotChar(c byte) string {
	switch {
	case c == '"' || c == '\\':
		return `\` + string(c)
	case c < 0x20 || c == 0x7f:
		return fmt.Sprintf("0x%02x", c)
	default:
		return string(c)
	}
}
