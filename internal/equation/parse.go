package equation

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

// Term is one signed monomial of a normalized equation.
type Term struct {
	Coeff numeric.Rational
	// Slot is the variable position: 0 for constants, 1 for x/x1,
	// 2 for y/x2, 3 for z/x3.
	Slot  int
	Power int
	Text  string // term as written, sign excluded
}

// IsConstant reports whether the term carries no variable.
func (t Term) IsConstant() bool { return t.Slot == 0 }

type signedText struct {
	neg  bool
	text string
}

var superscripts = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

// clean lowercases s, drops whitespace, maps typographic operators to ASCII
// and rewrites superscript runs as ^n.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSuper := false
	for _, r := range strings.ToLower(s) {
		if d, ok := superscripts[r]; ok {
			if !inSuper {
				b.WriteByte('^')
			}
			b.WriteRune(d)
			inSuper = true
			continue
		}
		inSuper = false
		switch {
		case unicode.IsSpace(r):
		case r == '−' || r == '–':
			b.WriteByte('-')
		case r == '·' || r == '×':
			b.WriteByte('*')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sides splits a cleaned equation at '='. A missing right-hand side means 0.
func sides(eq string) (lhs, rhs string, err error) {
	s := clean(eq)
	parts := strings.Split(s, "=")
	switch {
	case len(parts) > 2:
		return "", "", solveerr.Parse("equation.Normalize", eq, -1, nil)
	case parts[0] == "":
		return "", "", solveerr.Parse("equation.Normalize", eq, 0, nil)
	case len(parts) == 1:
		return parts[0], "", nil
	}
	if parts[1] == "" {
		return "", "", solveerr.Parse("equation.Normalize", eq, 1, nil)
	}
	return parts[0], parts[1], nil
}

// split breaks a side into signed terms. Runs of signs combine, so "x--2"
// reads as x + 2.
func split(side string) ([]signedText, error) {
	var (
		terms []signedText
		cur   strings.Builder
		neg   bool
		prev  rune
	)
	flush := func() {
		terms = append(terms, signedText{neg: neg, text: cur.String()})
		cur.Reset()
		neg = false
	}
	for _, r := range side {
		if (r == '+' || r == '-') && prev != '^' {
			if cur.Len() > 0 {
				flush()
			}
			if r == '-' {
				neg = !neg
			}
			prev = r
			continue
		}
		cur.WriteRune(r)
		prev = r
	}
	if cur.Len() == 0 {
		return nil, solveerr.Parse("equation.split", side, len(terms), nil)
	}
	flush()
	return terms, nil
}

// Normalize rewrites "LHS = RHS" as an expression equal to zero by moving
// every right-hand term to the left with its sign flipped. Whitespace is
// removed, letters are lowercased and superscript exponents become ^n.
//
//	Normalize("2x = 4 - x")  → "2x-4+x"
//	Normalize("x² + 1 = 0")  → "x^2+1"
func Normalize(eq string) (string, error) {
	lhs, rhs, err := sides(eq)
	if err != nil {
		return "", err
	}
	if _, err := split(lhs); err != nil {
		return "", err
	}
	if rhs == "" || rhs == "0" {
		return lhs, nil
	}
	moved, err := split(rhs)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(lhs)
	for _, t := range moved {
		if t.neg {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		b.WriteString(t.text)
	}
	return b.String(), nil
}

// Parse normalizes eq and returns its terms.
func Parse(eq string) ([]Term, error) {
	norm, err := Normalize(eq)
	if err != nil {
		return nil, err
	}
	raw, err := split(norm)
	if err != nil {
		return nil, err
	}
	terms := make([]Term, 0, len(raw))
	for i, st := range raw {
		t, err := parseTerm(st.text)
		if err != nil {
			if se, ok := err.(*solveerr.Error); ok {
				se.Index = i
			}
			return nil, err
		}
		if st.neg {
			t.Coeff = t.Coeff.Neg()
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// parseTerm reads [coefficient][*]variable[^power] or a bare coefficient.
func parseTerm(text string) (Term, error) {
	body := strings.ReplaceAll(text, "*", "")
	idx := strings.IndexAny(body, "xyz")
	if idx < 0 {
		coeff, err := numeric.ParseRational(body)
		if err != nil {
			return Term{}, solveerr.Parse("equation.Parse", text, -1, err)
		}
		return Term{Coeff: coeff, Text: text}, nil
	}

	coeff := numeric.One
	if idx > 0 {
		c, err := numeric.ParseRational(body[:idx])
		if err != nil {
			return Term{}, solveerr.Parse("equation.Parse", text, -1, err)
		}
		coeff = c
	}

	slot, rest := variable(body[idx:])
	power := 1
	if rest != "" {
		if rest[0] != '^' {
			return Term{}, solveerr.Parse("equation.Parse", text, -1, nil)
		}
		p, err := strconv.Atoi(rest[1:])
		if err != nil || p < 0 {
			return Term{}, solveerr.Parse("equation.Parse", text, -1, err)
		}
		power = p
	}
	if power == 0 {
		return Term{Coeff: coeff, Text: text}, nil
	}
	return Term{Coeff: coeff, Slot: slot, Power: power, Text: text}, nil
}

// variable consumes a variable name and returns its slot and the remainder.
func variable(s string) (int, string) {
	switch s[0] {
	case 'y':
		return 2, s[1:]
	case 'z':
		return 3, s[1:]
	}
	if len(s) > 1 && s[1] >= '1' && s[1] <= '3' {
		return int(s[1] - '0'), s[2:]
	}
	return 1, s[1:]
}
