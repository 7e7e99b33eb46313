package numeric

import (
	"math"
	"math/big"
	"strconv"

	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

// Rational is an exact fraction with a 64-bit numerator and denominator.
//
// Values are always reduced and the denominator is always positive.
// Internally the denominator is stored biased by 1, so the zero value is
// 0/1 and ready to use. Rational has value semantics: two Rationals are
// equal exactly when == reports them equal.
//
// Results whose reduced form does not fit in 64 bits are not an error. They
// degrade to the closest fraction RationalFromFloat can find, the same way
// the transcendental methods degrade, and saturate at ±MaxInt64:
//
//	NewRational(6, 8)                              → 3/4
//	RationalFromInt(1<<62).Add(RationalFromInt(1<<62)) → MaxInt64
type Rational struct {
	num int64
	dm1 int64 // denominator - 1
}

// Common constants.
var (
	Zero = Rational{}
	One  = Rational{num: 1}
	Half = Rational{num: 1, dm1: 1}
)

const fastLimit = math.MaxInt32

// NewRational returns num/den in lowest terms.
// It fails with DivisionByZero when den is zero.
func NewRational(num, den int64) (Rational, error) {
	if den == 0 {
		return Zero, solveerr.New(solveerr.DivisionByZero, "NewRational")
	}
	if num == math.MinInt64 || den == math.MinInt64 {
		return fromBig(new(big.Rat).SetFrac(big.NewInt(num), big.NewInt(den))), nil
	}
	return normalize(num, den), nil
}

// MustRational is like NewRational but panics on a zero denominator.
// Intended for constants and tests.
func MustRational(num, den int64) Rational {
	r, err := NewRational(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// RationalFromInt returns n/1.
func RationalFromInt(n int64) Rational {
	if n == math.MinInt64 {
		n = -math.MaxInt64
	}
	return Rational{num: n}
}

// normalize reduces num/den. Callers guarantee den != 0 and that neither
// operand is MinInt64.
func normalize(num, den int64) Rational {
	if num == 0 {
		return Zero
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), den)
	return Rational{num: num / g, dm1: den/g - 1}
}

// ParseRational parses an integer, decimal or "n/d" literal exactly.
func ParseRational(s string) (Rational, error) {
	x, ok := new(big.Rat).SetString(s)
	if !ok {
		return Zero, solveerr.Parse("ParseRational", s, -1, nil)
	}
	return fromBig(x), nil
}

// RationalFromBig converts x. exact is false when x does not fit in 64 bits
// and the result is an approximation.
func RationalFromBig(x *big.Rat) (r Rational, exact bool) {
	return fromBig(x), fits(x.Num()) && fits(x.Denom())
}

// fromBig converts an exact big.Rat, approximating when it does not fit.
func fromBig(x *big.Rat) Rational {
	n, d := x.Num(), x.Denom()
	if fits(n) && fits(d) {
		return Rational{num: n.Int64(), dm1: d.Int64() - 1}
	}
	f, _ := x.Float64()
	return RationalFromFloat(f)
}

func fits(x *big.Int) bool {
	return x.IsInt64() && x.Int64() != math.MinInt64
}

// Num returns the numerator.
func (r Rational) Num() int64 { return r.num }

// Den returns the denominator, always positive.
func (r Rational) Den() int64 { return r.dm1 + 1 }

// IsZero reports whether r == 0.
func (r Rational) IsZero() bool { return r.num == 0 }

// IsInteger reports whether the denominator is 1.
func (r Rational) IsInteger() bool { return r.dm1 == 0 }

// Sign returns -1, 0 or 1.
func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	default:
		return 0
	}
}

// Equal reports exact equality.
func (r Rational) Equal(s Rational) bool { return r == s }

// Float64 returns the nearest float64.
func (r Rational) Float64() float64 {
	return float64(r.num) / float64(r.Den())
}

// String formats r as "n" or "n/d".
func (r Rational) String() string {
	if r.dm1 == 0 {
		return strconv.FormatInt(r.num, 10)
	}
	return strconv.FormatInt(r.num, 10) + "/" + strconv.FormatInt(r.Den(), 10)
}

// Big returns r as a new big.Rat.
func (r Rational) Big() *big.Rat {
	return new(big.Rat).SetFrac64(r.num, r.Den())
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: -r.num, dm1: r.dm1}
}

// Abs returns |r|.
func (r Rational) Abs() Rational {
	if r.num < 0 {
		return r.Neg()
	}
	return r
}

func (r Rational) small() bool {
	return r.num >= -fastLimit && r.num <= fastLimit && r.dm1 < fastLimit
}

// Add returns r + s.
func (r Rational) Add(s Rational) Rational {
	if r.small() && s.small() {
		return normalize(r.num*s.Den()+s.num*r.Den(), r.Den()*s.Den())
	}
	return fromBig(new(big.Rat).Add(r.Big(), s.Big()))
}

// Sub returns r - s.
func (r Rational) Sub(s Rational) Rational {
	return r.Add(s.Neg())
}

// Mul returns r * s.
func (r Rational) Mul(s Rational) Rational {
	if r.small() && s.small() {
		return normalize(r.num*s.num, r.Den()*s.Den())
	}
	return fromBig(new(big.Rat).Mul(r.Big(), s.Big()))
}

// Div returns r / s, failing with DivisionByZero when s is zero.
func (r Rational) Div(s Rational) (Rational, error) {
	if s.num == 0 {
		return Zero, solveerr.New(solveerr.DivisionByZero, "Rational.Div")
	}
	if r.small() && s.small() {
		return normalize(r.num*s.Den(), r.Den()*s.num), nil
	}
	return fromBig(new(big.Rat).Quo(r.Big(), s.Big())), nil
}

// Inverse returns 1/r.
func (r Rational) Inverse() (Rational, error) {
	if r.num == 0 {
		return Zero, solveerr.New(solveerr.DivisionByZero, "Rational.Inverse")
	}
	return normalize(r.Den(), r.num), nil
}

// Pow returns r^n by repeated squaring. Negative exponents invert.
func (r Rational) Pow(n int) (Rational, error) {
	if n < 0 {
		p, err := r.Pow(-n)
		if err != nil {
			return Zero, err
		}
		return p.Inverse()
	}
	result, base := One, r
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result, nil
}

// Cmp returns -1, 0 or 1 as r is less than, equal to or greater than s.
func (r Rational) Cmp(s Rational) int {
	if r.small() && s.small() {
		a, b := r.num*s.Den(), s.num*r.Den()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	return r.Big().Cmp(s.Big())
}

// Less reports r < s.
func (r Rational) Less(s Rational) bool { return r.Cmp(s) < 0 }

// The transcendental methods below round-trip through float64 and
// re-approximate with RationalFromFloat. Each call loses precision and
// composing them accumulates the loss.

// Sqrt returns an approximation of √r. Negative inputs yield 0; use
// Complex.Sqrt for those.
func (r Rational) Sqrt() Rational { return r.apply(math.Sqrt) }

// Sin returns an approximation of sin(r), r in radians.
func (r Rational) Sin() Rational { return r.apply(math.Sin) }

// Cos returns an approximation of cos(r), r in radians.
func (r Rational) Cos() Rational { return r.apply(math.Cos) }

// Sinh returns an approximation of sinh(r).
func (r Rational) Sinh() Rational { return r.apply(math.Sinh) }

// Cosh returns an approximation of cosh(r).
func (r Rational) Cosh() Rational { return r.apply(math.Cosh) }

func (r Rational) apply(f func(float64) float64) Rational {
	return RationalFromFloat(f(r.Float64()))
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
