// Package format renders numeric values and solutions in one of three
// output styles.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/polysolve/internal/numeric"
)

// Style selects an output notation.
type Style uint8

const (
	Ascii Style = iota
	Unicode
	Latex
)

// ParseStyle maps a configuration value to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ascii":
		return Ascii, nil
	case "unicode":
		return Unicode, nil
	case "latex":
		return Latex, nil
	default:
		return Ascii, fmt.Errorf("unknown format style %q", s)
	}
}

func (s Style) String() string {
	switch s {
	case Unicode:
		return "unicode"
	case Latex:
		return "latex"
	default:
		return "ascii"
	}
}

const unicodeMinus = "−"

var subscripts = strings.NewReplacer(
	"0", "₀", "1", "₁", "2", "₂", "3", "₃", "4", "₄",
	"5", "₅", "6", "₆", "7", "₇", "8", "₈", "9", "₉",
)

// Rational renders r.
func (s Style) Rational(r numeric.Rational) string {
	switch s {
	case Latex:
		if r.IsInteger() {
			return strconv.FormatInt(r.Num(), 10)
		}
		sign := ""
		if r.Sign() < 0 {
			sign = "-"
		}
		return fmt.Sprintf(`%s\frac{%d}{%d}`, sign, r.Abs().Num(), r.Den())
	case Unicode:
		return strings.ReplaceAll(r.String(), "-", unicodeMinus)
	default:
		return r.String()
	}
}

// Complex renders z as "a", "bi" or "a ± bi".
func (s Style) Complex(z numeric.Complex) string {
	re, im := z.Re, z.Im
	if im.IsZero() {
		return s.Rational(re)
	}
	if re.IsZero() {
		return s.imag(im)
	}
	op := " + "
	if im.Sign() < 0 {
		op = " - "
		if s == Unicode {
			op = " " + unicodeMinus + " "
		}
		im = im.Neg()
	}
	return s.Rational(re) + op + s.imag(im)
}

func (s Style) imag(im numeric.Rational) string {
	switch {
	case im == numeric.One:
		return "i"
	case im == numeric.One.Neg():
		return strings.TrimSuffix(s.Rational(im), "1") + "i"
	case s == Latex && !im.IsInteger():
		return s.Rational(im) + " i"
	default:
		return s.Rational(im) + "i"
	}
}

// Name renders a solution name such as x1.
func (s Style) Name(name string) string {
	base := strings.TrimRight(name, "0123456789")
	index := name[len(base):]
	if index == "" {
		return name
	}
	switch s {
	case Unicode:
		return base + subscripts.Replace(index)
	case Latex:
		return base + "_{" + index + "}"
	default:
		return name
	}
}

// Solution renders "name = value".
func (s Style) Solution(name string, value numeric.Complex) string {
	return s.Name(name) + " = " + s.Complex(value)
}

// Roots renders one solution per line.
func (s Style) Roots(names []string, roots []numeric.Complex) string {
	lines := make([]string, len(roots))
	for i, r := range roots {
		name := "x"
		if i < len(names) {
			name = names[i]
		}
		lines[i] = s.Solution(name, r)
	}
	return strings.Join(lines, "\n")
}

// Prompt is the interactive prompt for the style.
func (s Style) Prompt() string {
	if s == Unicode {
		return "➤ "
	}
	return ">>> "
}
