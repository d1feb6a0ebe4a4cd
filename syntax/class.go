package syntax

import (
	"math/bits"
	"strings"
	"unicode/utf8"
)

// MaxChar is the largest code point a pattern can consume.
const MaxChar = 127

// CharSet is a set of ASCII code points 0-127, one bit per character.
type CharSet [2]uint64

// Add inserts c. Characters above MaxChar are ignored.
func (s *CharSet) Add(c byte) {
	if c > MaxChar {
		return
	}
	s[c>>6] |= 1 << (c & 63)
}

// AddRange inserts every character in [lo, hi].
func (s *CharSet) AddRange(lo, hi byte) {
	for c := int(lo); c <= int(hi); c++ {
		s.Add(byte(c))
	}
}

// Union inserts every member of o.
func (s *CharSet) Union(o CharSet) {
	s[0] |= o[0]
	s[1] |= o[1]
}

// Contains reports whether c is a member.
func (s CharSet) Contains(c byte) bool {
	if c > MaxChar {
		return false
	}
	return s[c>>6]&(1<<(c&63)) != 0
}

// Negate returns the complement over 0-127.
func (s CharSet) Negate() CharSet {
	return CharSet{^s[0], ^s[1]}
}

// IsEmpty reports whether the set has no members.
func (s CharSet) IsEmpty() bool {
	return s[0] == 0 && s[1] == 0
}

// Len returns the number of members.
func (s CharSet) Len() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1])
}

// Chars returns the members in ascending order.
func (s CharSet) Chars() []byte {
	out := make([]byte, 0, s.Len())
	for c := 0; c <= MaxChar; c++ {
		if s.Contains(byte(c)) {
			out = append(out, byte(c))
		}
	}
	return out
}

// Single returns the only member of a one-element set.
func (s CharSet) Single() (byte, bool) {
	if s.Len() != 1 {
		return 0, false
	}
	if s[0] != 0 {
		return byte(bits.TrailingZeros64(s[0])), true
	}
	return byte(64 + bits.TrailingZeros64(s[1])), true
}

// Any is the set matched by a consuming dot.
var Any = CharSet{^uint64(0), ^uint64(0)}

var (
	digits = func() (s CharSet) { s.AddRange('0', '9'); return }()
	word   = func() (s CharSet) {
		s.AddRange('0', '9')
		s.AddRange('A', 'Z')
		s.AddRange('a', 'z')
		s.Add('_')
		return
	}()
	space = func() (s CharSet) {
		for _, c := range []byte(" \t\n\r\f\v") {
			s.Add(c)
		}
		return
	}()
)

// escapeClass resolves the shorthand classes \d \D \w \W \s \S.
func escapeClass(c byte) (CharSet, bool) {
	switch c {
	case 'd':
		return digits, true
	case 'D':
		return digits.Negate(), true
	case 'w':
		return word, true
	case 'W':
		return word.Negate(), true
	case 's':
		return space, true
	case 'S':
		return space.Negate(), true
	}
	return CharSet{}, false
}

// escapeChar resolves an escaped single character.
func escapeChar(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	}
	return c
}

// decodeASCII decodes the character at s[i:], rejecting anything above MaxChar.
func decodeASCII(s string, i, pos int) (byte, int, error) {
	r, size := utf8.DecodeRuneInString(s[i:])
	if r > MaxChar {
		return 0, 0, Errorf(pos, "non-ASCII character %q", r)
	}
	return byte(r), size, nil
}

// Atom returns the characters consumed by a Literal or Escape token.
func Atom(t Token) (CharSet, error) {
	var set CharSet
	switch t.Kind {
	case Literal:
		if t.Text == "" {
			return set, Errorf(t.Pos, "empty literal")
		}
		c, _, err := decodeASCII(t.Text, 0, t.Pos)
		if err != nil {
			return set, err
		}
		set.Add(c)
		return set, nil
	case Escape:
		if len(t.Text) < 2 {
			return set, Errorf(t.Pos, "trailing backslash")
		}
		c, _, err := decodeASCII(t.Text, 1, t.Pos)
		if err != nil {
			return set, err
		}
		if cls, ok := escapeClass(c); ok {
			return cls, nil
		}
		set.Add(escapeChar(c))
		return set, nil
	default:
		return set, Errorf(t.Pos, "%s token %q is not a character", t.Kind, t.Text)
	}
}

// Char returns the single character a Literal or Escape token consumes.
// Shorthand classes like \d report false.
func Char(t Token) (byte, bool) {
	if t.Kind != Literal && t.Kind != Escape {
		return 0, false
	}
	set, err := Atom(t)
	if err != nil {
		return 0, false
	}
	return set.Single()
}

// ParseClass parses a bracket expression token into the set it matches.
// The leading ^ negates over 0-127. Ranges with start > end, unterminated
// expressions and empty results are rejected.
func ParseClass(t Token) (CharSet, error) {
	var set CharSet
	if t.Kind != Class || !t.Terminated() {
		return set, Errorf(t.Pos, "missing closing ]")
	}

	body := t.Text[1 : len(t.Text)-1]
	base := t.Pos + 1
	negate := false
	if strings.HasPrefix(body, "^") {
		negate = true
		body = body[1:]
		base++
	}
	if body == "" {
		return set, Errorf(t.Pos, "empty character class")
	}

	for i := 0; i < len(body); {
		lo, cls, n, err := classItem(body, i, base)
		if err != nil {
			return set, err
		}
		if cls != nil {
			set.Union(*cls)
			i += n
			continue
		}
		i += n

		// a-b range; a trailing '-' is literal
		if i+1 < len(body) && body[i] == '-' {
			hi, hcls, hn, err := classItem(body, i+1, base)
			if err != nil {
				return set, err
			}
			if hcls != nil {
				return set, Errorf(base+i, "invalid range end in character class")
			}
			if lo > hi {
				return set, Errorf(base+i-n, "invalid range %q-%q", lo, hi)
			}
			set.AddRange(lo, hi)
			i += 1 + hn
			continue
		}
		set.Add(lo)
	}

	if negate {
		set = set.Negate()
	}
	if set.IsEmpty() {
		return set, Errorf(t.Pos, "empty character class")
	}
	return set, nil
}

// classItem reads one member at body[i:]: a character, an escaped character,
// or a shorthand class (returned in cls). n is the number of bytes read.
func classItem(body string, i, base int) (c byte, cls *CharSet, n int, err error) {
	if body[i] == '\\' {
		if i+1 >= len(body) {
			return 0, nil, 0, Errorf(base+i, "trailing backslash in character class")
		}
		e, size, err := decodeASCII(body, i+1, base+i)
		if err != nil {
			return 0, nil, 0, err
		}
		if set, ok := escapeClass(e); ok {
			return 0, &set, 1 + size, nil
		}
		return escapeChar(e), nil, 1 + size, nil
	}
	c, size, err := decodeASCII(body, i, base+i)
	if err != nil {
		return 0, nil, 0, err
	}
	return c, nil, size, nil
}
