package trick

import (
	"fmt"
	"strings"
)

// Gaps returns the circular gaps of a sorted run of distinct cards. Element
// i counts the card values strictly between sorted[i] and sorted[i+1],
// with the last gap wrapping from the highest card back round to the
// lowest. The gaps always sum to 52 - len(sorted).
func Gaps(sorted []Card) []int {
	k := len(sorted)
	gaps := make([]int, k)
	for i := range k {
		next := int(sorted[(i+1)%k])
		gaps[i] = (next - int(sorted[i]) - 1 + NumCards) % NumCards
	}
	return gaps
}

// Pattern is the even/odd shape of a gap sequence: bit i is set when gap i
// is odd.
type Pattern struct {
	Len  uint8
	Bits uint8
}

// ParsePattern parses a string of 0s and 1s such as "01011".
func ParsePattern(s string) (Pattern, error) {
	if len(s) == 0 || len(s) > 8 {
		return Pattern{}, fmt.Errorf("invalid pattern length: %q", s)
	}
	p := Pattern{Len: uint8(len(s))}
	for i := range len(s) {
		switch s[i] {
		case '0':
		case '1':
			p.Bits |= 1 << i
		default:
			return Pattern{}, fmt.Errorf("invalid pattern digit %q in %q", s[i], s)
		}
	}
	return p, nil
}

func mustPattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PatternOf returns the parity pattern of gaps.
func PatternOf(gaps []int) Pattern {
	p := Pattern{Len: uint8(len(gaps))}
	for i, g := range gaps {
		if g%2 == 1 {
			p.Bits |= 1 << i
		}
	}
	return p
}

// Odd reports whether gap i is odd.
func (p Pattern) Odd(i int) bool {
	return p.Bits&(1<<i) != 0
}

// Rotate returns the pattern rotated left by r, so gap r comes first.
func (p Pattern) Rotate(r int) Pattern {
	out := Pattern{Len: p.Len}
	k := int(p.Len)
	for i := range k {
		if p.Odd((i + r) % k) {
			out.Bits |= 1 << i
		}
	}
	return out
}

func (p Pattern) String() string {
	var b strings.Builder
	for i := range int(p.Len) {
		if p.Odd(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Reference parity cases. Every five-card hand rotates into exactly one of
// the five-card cases; every four-card set with an odd gap rotates into one
// of the four-card cases.
var (
	Case00001 = mustPattern("00001")
	Case00111 = mustPattern("00111")
	Case01011 = mustPattern("01011")
	Case11111 = mustPattern("11111")

	Case0011 = mustPattern("0011")
	Case0101 = mustPattern("0101")
	Case1111 = mustPattern("1111")
)

var (
	fiveCardCases = []Pattern{Case00001, Case00111, Case01011, Case11111}
	fourCardCases = []Pattern{Case0011, Case0101, Case1111}
)

// Case is a classified parity pattern together with the left rotation that
// carries the sorted cards onto it.
type Case struct {
	Pattern  Pattern
	Rotation int
}

func (c Case) String() string {
	return fmt.Sprintf("%s/r%d", c.Pattern, c.Rotation)
}

// Classify finds the smallest left rotation of the gap parities of sorted
// (four or five cards) that lands on a reference case.
func Classify(sorted []Card) (Case, error) {
	var cases []Pattern
	switch len(sorted) {
	case SelectionSize:
		cases = fourCardCases
	case HandSize:
		cases = fiveCardCases
	default:
		return Case{}, &InputError{Err: ErrCardCount, Detail: fmt.Sprintf("got %d, want 4 or 5", len(sorted))}
	}

	p := PatternOf(Gaps(sorted))
	for r := range len(sorted) {
		rotated := p.Rotate(r)
		for _, c := range cases {
			if rotated == c {
				return Case{Pattern: c, Rotation: r}, nil
			}
		}
	}
	return Case{}, fmt.Errorf("%w: %s has gap parities %s", ErrNoParityCase, FormatCards(sorted), p)
}

// Rotate returns s rotated left by r.
func Rotate[T any](s []T, r int) []T {
	k := len(s)
	out := make([]T, k)
	for i := range k {
		out[i] = s[(i+r)%k]
	}
	return out
}
