package numeric

import (
	"math"

	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

// Complex is a + bi with exact rational parts.
//
// Sums, differences, products and quotients of exact values stay exact.
// Sqrt, Sin and Cos go through float64 and come back approximated.
type Complex struct {
	Re, Im Rational
}

// NewComplex returns re + im·i.
func NewComplex(re, im Rational) Complex {
	return Complex{Re: re, Im: im}
}

// ComplexFromReal returns re + 0i.
func ComplexFromReal(re Rational) Complex {
	return Complex{Re: re}
}

// ComplexFromInt returns n + 0i.
func ComplexFromInt(n int64) Complex {
	return Complex{Re: RationalFromInt(n)}
}

// ComplexFromFloat approximates a real float.
func ComplexFromFloat(re float64) Complex {
	return Complex{Re: RationalFromFloat(re)}
}

// ComplexFromFloats approximates re + im·i.
func ComplexFromFloats(re, im float64) Complex {
	return Complex{Re: RationalFromFloat(re), Im: RationalFromFloat(im)}
}

// ComplexFrom128 approximates a complex128.
func ComplexFrom128(z complex128) Complex {
	return ComplexFromFloats(real(z), imag(z))
}

// ImaginaryUnit is i.
var ImaginaryUnit = Complex{Im: One}

// Complex128 returns the nearest complex128.
func (z Complex) Complex128() complex128 {
	return complex(z.Re.Float64(), z.Im.Float64())
}

// IsZero reports whether both parts are exactly zero.
func (z Complex) IsZero() bool { return z.Re.IsZero() && z.Im.IsZero() }

// IsReal reports whether the imaginary part is exactly zero.
func (z Complex) IsReal() bool { return z.Im.IsZero() }

// Equal reports exact componentwise equality.
func (z Complex) Equal(w Complex) bool { return z == w }

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re.Add(w.Re), Im: z.Im.Add(w.Im)}
}

// Sub returns z - w.
func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re.Sub(w.Re), Im: z.Im.Sub(w.Im)}
}

// Mul returns z · w.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: z.Re.Mul(w.Re).Sub(z.Im.Mul(w.Im)),
		Im: z.Re.Mul(w.Im).Add(z.Im.Mul(w.Re)),
	}
}

// Scale returns z · r.
func (z Complex) Scale(r Rational) Complex {
	return Complex{Re: z.Re.Mul(r), Im: z.Im.Mul(r)}
}

// Neg returns -z.
func (z Complex) Neg() Complex {
	return Complex{Re: z.Re.Neg(), Im: z.Im.Neg()}
}

// Conj returns the complex conjugate.
func (z Complex) Conj() Complex {
	return Complex{Re: z.Re, Im: z.Im.Neg()}
}

// Norm returns re² + im², exactly.
func (z Complex) Norm() Rational {
	return z.Re.Mul(z.Re).Add(z.Im.Mul(z.Im))
}

// Div returns z / w. It fails with DivisionByZero when |w|² is exactly zero.
func (z Complex) Div(w Complex) (Complex, error) {
	n := w.Norm()
	if n.IsZero() {
		return Complex{}, solveerr.New(solveerr.DivisionByZero, "Complex.Div")
	}
	num := z.Mul(w.Conj())
	re, _ := num.Re.Div(n)
	im, _ := num.Im.Div(n)
	return Complex{Re: re, Im: im}, nil
}

// Inverse returns 1/z.
func (z Complex) Inverse() (Complex, error) {
	n := z.Norm()
	if n.IsZero() {
		return Complex{}, solveerr.New(solveerr.DivisionByZero, "Complex.Inverse")
	}
	re, _ := z.Re.Div(n)
	im, _ := z.Im.Neg().Div(n)
	return Complex{Re: re, Im: im}, nil
}

// Pow returns z^n by repeated squaring. Pow(0) is 1 and negative exponents
// invert the positive power, which fails for z = 0.
func (z Complex) Pow(n int) (Complex, error) {
	if n < 0 {
		p, err := z.Pow(-n)
		if err != nil {
			return Complex{}, err
		}
		return p.Inverse()
	}
	result, base := Complex{Re: One}, z
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result, nil
}

// Abs returns an approximation of the modulus |z|.
func (z Complex) Abs() Rational {
	if z.Im.IsZero() {
		return z.Re.Abs()
	}
	if z.Re.IsZero() {
		return z.Im.Abs()
	}
	return z.Norm().Sqrt()
}

// Sqrt returns the principal square root.
//
// With m = |z|: a real z gives √re or i·√|re|; otherwise the root is
// √((m+re)/2) + sign(im)·i·√((m-re)/2). Every square root is the lossy
// Rational.Sqrt, so the result is an approximation unless z was a perfect
// square that the approximation grid hits exactly.
func (z Complex) Sqrt() Complex {
	if z.Im.IsZero() {
		if z.Re.Sign() >= 0 {
			return Complex{Re: z.Re.Sqrt()}
		}
		return Complex{Im: z.Re.Abs().Sqrt()}
	}
	m := z.Norm().Sqrt()
	re := m.Add(z.Re).Mul(Half).Sqrt()
	im := m.Sub(z.Re).Mul(Half).Sqrt()
	if z.Im.Sign() < 0 {
		im = im.Neg()
	}
	return Complex{Re: re, Im: im}
}

// Sin returns sin(a+bi) = sin(a)cosh(b) + i·cos(a)sinh(b).
func (z Complex) Sin() Complex {
	return sinParts(z.Re.Sin(), z.Re.Cos(), z.Im)
}

// Cos returns cos(a+bi) = cos(a)cosh(b) - i·sin(a)sinh(b).
func (z Complex) Cos() Complex {
	return cosParts(z.Re.Sin(), z.Re.Cos(), z.Im)
}

// SinDegrees is Sin with the real part read as degrees.
func (z Complex) SinDegrees() Complex {
	sa, ca := degrees(z.Re)
	return sinParts(sa, ca, z.Im)
}

// CosDegrees is Cos with the real part read as degrees.
func (z Complex) CosDegrees() Complex {
	sa, ca := degrees(z.Re)
	return cosParts(sa, ca, z.Im)
}

func sinParts(sa, ca, b Rational) Complex {
	return Complex{Re: sa.Mul(b.Cosh()), Im: ca.Mul(b.Sinh())}
}

func cosParts(sa, ca, b Rational) Complex {
	return Complex{Re: ca.Mul(b.Cosh()), Im: sa.Mul(b.Sinh()).Neg()}
}

func degrees(a Rational) (sin, cos Rational) {
	rad := a.Float64() * math.Pi / 180
	return RationalFromFloat(math.Sin(rad)), RationalFromFloat(math.Cos(rad))
}

// String formats z as "3", "i", "-2i", "1 + i" or "3/4 - 2i".
func (z Complex) String() string {
	re, im := z.Re, z.Im
	switch {
	case im.IsZero():
		return re.String()
	case re.IsZero():
		return imagString(im)
	case im.Sign() > 0:
		return re.String() + " + " + imagString(im)
	default:
		return re.String() + " - " + imagString(im.Neg())
	}
}

func imagString(im Rational) string {
	switch {
	case im == One:
		return "i"
	case im == One.Neg():
		return "-i"
	default:
		return im.String() + "i"
	}
}
