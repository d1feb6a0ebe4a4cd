// Package codegen emits standalone Go source for a compiled automaton.
//
// The generated file needs nothing but the standard library: epsilon
// closures are precomputed per state and consuming transitions are stored as
// character ranges, so the emitted matcher walks the same state sets as
// nfa.Simulator and accepts exactly the same inputs.
package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/thompson/nfa"
	"github.com/dave/jennifer/jen"
)

// ErrInvalidOptions indicates unusable generator options.
var ErrInvalidOptions = errors.New("invalid codegen options")

// Options configures the generated file.
type Options struct {
	// Package is the package clause of the generated file.
	Package string

	// Name prefixes every generated identifier: <Name>MatchString and the
	// unexported tables behind it.
	Name string

	// Pattern, if set, is quoted in the doc comment.
	Pattern string
}

func (o Options) validate() error {
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("%w: package %q is not an identifier", ErrInvalidOptions, o.Package)
	}
	if !token.IsIdentifier(o.Name) {
		return fmt.Errorf("%w: name %q is not an identifier", ErrInvalidOptions, o.Name)
	}
	return nil
}

// edge is a run of consecutive characters leading to one target state.
type edge struct {
	lo, hi byte
	to     nfa.StateID
}

// Generator renders one automaton.
type Generator struct {
	nfa  *nfa.NFA
	opts Options

	edgeRows    [][]edge
	closureRows [][]nfa.StateID

	edgeType string
	states   string
	start    string
	accept   string
	edges    string
	closures string
}

// NewGenerator creates a generator for n.
func NewGenerator(n *nfa.NFA, opts Options) (*Generator, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil automaton", ErrInvalidOptions)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	prefix := lowerFirst(opts.Name)
	g := &Generator{
		nfa:      n,
		opts:     opts,
		edgeType: prefix + "Edge",
		states:   prefix + "States",
		start:    prefix + "Start",
		accept:   prefix + "Accept",
		edges:    prefix + "Edges",
		closures: prefix + "Closures",
	}
	for it := n.Iter(); it.HasNext(); {
		s := it.Next()
		g.edgeRows = append(g.edgeRows, compress(s.Transitions()))
		g.closureRows = append(g.closureRows, n.EpsilonClosure(s.ID()))
	}
	return g, nil
}

// Generate renders a Go file holding <Name>MatchString for n.
func Generate(n *nfa.NFA, opts Options) ([]byte, error) {
	g, err := NewGenerator(n, opts)
	if err != nil {
		return nil, err
	}
	return g.Render()
}

// Render returns the gofmt-ed source.
func (g *Generator) Render() ([]byte, error) {
	f := jen.NewFile(g.opts.Package)
	f.HeaderComment("Code generated by thompson. DO NOT EDIT.")

	f.Type().Id(g.edgeType).Struct(
		jen.Id("lo").Byte(),
		jen.Id("hi").Byte(),
		jen.Id("to").Uint32(),
	)
	f.Line()

	f.Const().Defs(
		jen.Id(g.states).Op("=").Lit(g.nfa.States()),
		jen.Id(g.start).Op("=").Lit(int(g.nfa.Start())),
		jen.Id(g.accept).Op("=").Lit(int(g.nfa.End())),
	)
	f.Line()

	f.Comment(g.edges + " lists the consuming transitions of every state as character ranges.")
	f.Var().Id(g.edges).Op("=").Index().Index().Id(g.edgeType).Values(g.edgeTable()...)
	f.Line()

	f.Comment(g.closures + " holds the epsilon-closure of every state.")
	f.Var().Id(g.closures).Op("=").Index().Index().Uint32().Values(g.closureTable()...)
	f.Line()

	f.Add(g.matchFunc())

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", g.opts.Name, err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) edgeTable() []jen.Code {
	rows := make([]jen.Code, len(g.edgeRows))
	for i, row := range g.edgeRows {
		cells := make([]jen.Code, len(row))
		for j, e := range row {
			cells[j] = jen.Values(jen.Lit(int(e.lo)), jen.Lit(int(e.hi)), jen.Lit(int(e.to)))
		}
		rows[i] = jen.Values(cells...)
	}
	return rows
}

func (g *Generator) closureTable() []jen.Code {
	rows := make([]jen.Code, len(g.closureRows))
	for i, closure := range g.closureRows {
		cells := make([]jen.Code, len(closure))
		for j, id := range closure {
			cells[j] = jen.Lit(int(id))
		}
		rows[i] = jen.Values(cells...)
	}
	return rows
}

// matchFunc renders the set simulation. seen[t] == gen marks t as already
// in next for the current step, so next never holds duplicates.
func (g *Generator) matchFunc() jen.Code {
	name := g.opts.Name + "MatchString"
	doc := name + " reports whether the whole of input is accepted"
	if g.opts.Pattern != "" {
		doc += " by " + fmt.Sprintf("%q", g.opts.Pattern)
	}

	rangeOver := func(v string, over jen.Code) *jen.Statement {
		return jen.List(jen.Id("_"), jen.Id(v)).Op(":=").Range().Add(over)
	}

	return jen.Comment(doc+".").Line().
		Func().Id(name).Params(jen.Id("input").String()).Bool().Block(
		jen.Id("seen").Op(":=").Make(jen.Index().Uint32(), jen.Id(g.states)),
		jen.Id("current").Op(":=").Append(
			jen.Make(jen.Index().Uint32(), jen.Lit(0), jen.Id(g.states)),
			jen.Id(g.closures).Index(jen.Id(g.start)).Op("..."),
		),
		jen.Id("next").Op(":=").Make(jen.Index().Uint32(), jen.Lit(0), jen.Id(g.states)),
		jen.Line(),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Len(jen.Id("input")), jen.Id("i").Op("++")).Block(
			jen.Id("c").Op(":=").Id("input").Index(jen.Id("i")),
			jen.Id("gen").Op(":=").Uint32().Call(jen.Id("i").Op("+").Lit(1)),
			jen.Id("next").Op("=").Id("next").Index(jen.Empty(), jen.Lit(0)),
			jen.For(rangeOver("s", jen.Id("current"))).Block(
				jen.For(rangeOver("e", jen.Id(g.edges).Index(jen.Id("s")))).Block(
					jen.If(jen.Id("c").Op("<").Id("e").Dot("lo").Op("||").Id("c").Op(">").Id("e").Dot("hi")).Block(
						jen.Continue(),
					),
					jen.For(rangeOver("t", jen.Id(g.closures).Index(jen.Id("e").Dot("to")))).Block(
						jen.If(jen.Id("seen").Index(jen.Id("t")).Op("!=").Id("gen")).Block(
							jen.Id("seen").Index(jen.Id("t")).Op("=").Id("gen"),
							jen.Id("next").Op("=").Append(jen.Id("next"), jen.Id("t")),
						),
					),
				),
			),
			jen.If(jen.Len(jen.Id("next")).Op("==").Lit(0)).Block(
				jen.Return(jen.False()),
			),
			jen.List(jen.Id("current"), jen.Id("next")).Op("=").List(jen.Id("next"), jen.Id("current")),
		),
		jen.Line(),
		jen.For(rangeOver("s", jen.Id("current"))).Block(
			jen.If(jen.Id("s").Op("==").Id(g.accept)).Block(
				jen.Return(jen.True()),
			),
		),
		jen.Return(jen.False()),
	)
}

// compress merges the consuming transitions of one state into ranges per
// target. Output is ordered by target, then by range start.
func compress(transitions []nfa.Transition) []edge {
	chars := make(map[nfa.StateID][]byte)
	for _, t := range transitions {
		if !t.Epsilon {
			chars[t.Next] = append(chars[t.Next], t.Char)
		}
	}
	targets := make([]nfa.StateID, 0, len(chars))
	for to := range chars {
		targets = append(targets, to)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	var out []edge
	for _, to := range targets {
		cs := chars[to]
		sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
		for i := 0; i < len(cs); {
			j := i
			for j+1 < len(cs) && cs[j+1] <= cs[j]+1 {
				j++
			}
			out = append(out, edge{lo: cs[i], hi: cs[j], to: to})
			i = j + 1
		}
	}
	return out
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
