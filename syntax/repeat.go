package syntax

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Unbounded is the max reported by ParseRepeat for {m,}.
const Unbounded = -1

// repeatBounds is the grammar of a brace expression: {m}, {m,} or {m,n}.
type repeatBounds struct {
	Min  string      `parser:"'{' @Int"`
	Tail *repeatTail `parser:"@@? '}'"`
}

type repeatTail struct {
	Comma bool    `parser:"@','"`
	Max   *string `parser:"@Int?"`
}

// Whitespace and signs have no rule, so "{ 2}" and "{-1}" fail to lex.
var repeatLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[{},]`},
})

var repeatParser = participle.MustBuild[repeatBounds](
	participle.Lexer(repeatLexer),
)

// ParseRepeat parses a brace expression token. maxCount is Unbounded for {m,}.
func ParseRepeat(t Token) (minCount, maxCount int, err error) {
	if t.Kind != Repeat || !t.Terminated() {
		return 0, 0, Errorf(t.Pos, "missing closing }")
	}

	b, perr := repeatParser.ParseString("", t.Text)
	if perr != nil {
		return 0, 0, Errorf(t.Pos, "malformed repetition %q", t.Text)
	}

	minCount, err = repeatCount(b.Min, t)
	if err != nil {
		return 0, 0, err
	}
	maxCount = minCount
	if b.Tail != nil {
		maxCount = Unbounded
		if b.Tail.Max != nil {
			if maxCount, err = repeatCount(*b.Tail.Max, t); err != nil {
				return 0, 0, err
			}
		}
	}
	if maxCount != Unbounded && maxCount < minCount {
		return 0, 0, Errorf(t.Pos, "invalid repetition range %s", t.Text)
	}
	return minCount, maxCount, nil
}

func repeatCount(s string, t Token) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, Errorf(t.Pos, "invalid repetition count %q", s)
	}
	return n, nil
}
