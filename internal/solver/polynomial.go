package solver

import (
	"math"

	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

// Threshold separating "zero" from "non-zero" in the floating point case
// analysis of the cubic and quartic solvers.
const Epsilon = 1e-10

var two = numeric.RationalFromInt(2)

// checkCoeffs validates the coefficient count and the leading coefficient.
func checkCoeffs(op string, coeffs []numeric.Complex, want int) error {
	if len(coeffs) != want {
		return solveerr.Count(op, want, len(coeffs))
	}
	if coeffs[0].IsZero() {
		return solveerr.New(solveerr.ZeroLeadingCoefficient, op).At(0)
	}
	return nil
}

// SolveLinear solves ax + b = 0.
//
// When a is zero the error wraps ErrZeroLeadingCoefficient and is classified
// as InfiniteSolutions if b is zero too, NoSolution otherwise.
func SolveLinear(coeffs []numeric.Complex) ([]numeric.Complex, error) {
	if len(coeffs) != 2 {
		return nil, solveerr.Count("SolveLinear", 2, len(coeffs))
	}
	a, b := coeffs[0], coeffs[1]
	if a.IsZero() {
		kind := solveerr.NoSolution
		if b.IsZero() {
			kind = solveerr.InfiniteSolutions
		}
		return nil, solveerr.New(kind, "SolveLinear").Wrap(solveerr.ErrZeroLeadingCoefficient)
	}
	x, err := b.Neg().Div(a)
	if err != nil {
		return nil, err
	}
	return []numeric.Complex{x}, nil
}

// SolveQuadratic solves ax² + bx + c = 0 with the quadratic formula.
//
// The result is [(-b + √Δ)/2a, (-b - √Δ)/2a] in that order. A double root
// (both entries exactly equal) is returned once.
func SolveQuadratic(coeffs []numeric.Complex) ([]numeric.Complex, error) {
	if err := checkCoeffs("SolveQuadratic", coeffs, 3); err != nil {
		return nil, err
	}
	a, b, c := coeffs[0], coeffs[1], coeffs[2]

	disc := b.Mul(b).Sub(a.Mul(c).Scale(numeric.RationalFromInt(4)))
	sqrtDisc := disc.Sqrt()
	twoA := a.Scale(two)

	x1, err := b.Neg().Add(sqrtDisc).Div(twoA)
	if err != nil {
		return nil, err
	}
	x2, err := b.Neg().Sub(sqrtDisc).Div(twoA)
	if err != nil {
		return nil, err
	}
	if x1.Equal(x2) {
		return []numeric.Complex{x1}, nil
	}
	return []numeric.Complex{x1, x2}, nil
}

// SolveCubic solves ax³ + bx² + cx + d = 0 with Cardano's method.
//
// Only the real parts of the coefficients are used and the computation runs
// in float64. Three roots are always returned, repeated roots included.
func SolveCubic(coeffs []numeric.Complex) ([]numeric.Complex, error) {
	if err := checkCoeffs("SolveCubic", coeffs, 4); err != nil {
		return nil, err
	}
	f := realParts(coeffs)
	roots := cardano(f[0], f[1], f[2], f[3])

	out := make([]numeric.Complex, len(roots))
	for i, r := range roots {
		out[i] = numeric.ComplexFrom128(r)
	}
	return out, nil
}

// cardano returns the three roots of ax³ + bx² + cx + d.
//
// The depressed cubic t³ + pt + q is classified by its discriminant
// q²/4 + p³/27 against Epsilon, which is only an approximate test near the
// boundaries between cases. With a zero discriminant and p ≠ 0 the simple
// root is 2u and the double root is -u, u = cbrt(-q/2): x³ - 3x + 2 gives
// -2, 1, 1. A double root at u with a simple one at -2u does not satisfy
// the depressed cubic.
func cardano(a, b, c, d float64) [3]complex128 {
	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)
	disc := q*q/4 + p*p*p/27
	shift := -b / (3 * a)

	var t [3]complex128
	switch {
	case math.Abs(disc) < Epsilon:
		u := math.Cbrt(-q / 2)
		if math.Abs(p) < Epsilon {
			t = [3]complex128{complex(u, 0), complex(u, 0), complex(u, 0)}
		} else {
			// u+v with u = v gives the simple root, -u the double one.
			t = [3]complex128{complex(2*u, 0), complex(-u, 0), complex(-u, 0)}
		}
	case disc > 0:
		s := math.Sqrt(disc)
		u := math.Cbrt(-q/2 + s)
		v := math.Cbrt(-q/2 - s)
		re := -(u + v) / 2
		im := math.Sqrt(3) * (u - v) / 2
		t = [3]complex128{complex(u+v, 0), complex(re, im), complex(re, -im)}
	default:
		phi := math.Atan2(math.Sqrt(-disc), -q/2)
		r := math.Sqrt(-p / 3)
		for k := range t {
			t[k] = complex(2*r*math.Cos((phi+2*math.Pi*float64(k))/3), 0)
		}
	}

	for k := range t {
		t[k] += complex(shift, 0)
	}
	return t
}

// SolveQuartic solves ax⁴ + bx³ + cx² + dx + e = 0 with Ferrari's method.
//
// The depressed quartic y⁴ + py² + qy + r is split into two quadratics using
// a root m of the resolvent cubic m³ + 2pm² + (p² - 4r)m - q². The resolvent
// is solved with SolveCubic and the quadratics with SolveQuadratic, so the
// result mixes float64 and exact arithmetic. Four roots are always returned.
func SolveQuartic(coeffs []numeric.Complex) ([]numeric.Complex, error) {
	if err := checkCoeffs("SolveQuartic", coeffs, 5); err != nil {
		return nil, err
	}
	f := realParts(coeffs)
	a, b, c, d, e := f[0], f[1], f[2], f[3], f[4]

	p := (8*a*c - 3*b*b) / (8 * a * a)
	q := (b*b*b - 4*a*b*c + 8*a*a*d) / (8 * a * a * a)
	r := (-3*b*b*b*b + 256*a*a*a*e - 64*a*a*b*d + 16*a*b*b*c) / (256 * a * a * a * a)

	resolvent, err := SolveCubic([]numeric.Complex{
		numeric.ComplexFromInt(1),
		numeric.ComplexFromFloat(2 * p),
		numeric.ComplexFromFloat(p*p - 4*r),
		numeric.ComplexFromFloat(-q * q),
	})
	if err != nil {
		return nil, err
	}
	m := resolventRoot(resolvent)

	P, Q, R := numeric.ComplexFromFloat(p), numeric.ComplexFromFloat(q), numeric.ComplexFromFloat(r)

	var ys []numeric.Complex
	if m.IsZero() || cmplxAbs(m) < Epsilon {
		ys, err = biquadratic(P, R)
	} else {
		ys, err = ferrari(P, Q, m)
	}
	if err != nil {
		return nil, err
	}

	shift := numeric.ComplexFromFloat(-b / (4 * a))
	for i := range ys {
		ys[i] = ys[i].Add(shift)
	}
	return ys, nil
}

// resolventRoot picks a real positive root, then a real non-negative one and
// finally falls back to the first root.
func resolventRoot(roots []numeric.Complex) numeric.Complex {
	for _, m := range roots {
		if m.IsReal() && m.Re.Sign() > 0 {
			return m
		}
	}
	for _, m := range roots {
		if m.IsReal() && m.Re.Sign() >= 0 {
			return m
		}
	}
	return roots[0]
}

// ferrari solves y² ± √m·y + (p+m)/2 ∓ q/(2√m) = 0.
func ferrari(p, q, m numeric.Complex) ([]numeric.Complex, error) {
	s := m.Sqrt()
	half := p.Add(m).Scale(numeric.Half)
	k, err := q.Div(s.Scale(two))
	if err != nil {
		return nil, err
	}

	first, err := quadraticPair(numeric.ComplexFromInt(1), s, half.Sub(k))
	if err != nil {
		return nil, err
	}
	second, err := quadraticPair(numeric.ComplexFromInt(1), s.Neg(), half.Add(k))
	if err != nil {
		return nil, err
	}
	return append(first, second...), nil
}

// biquadratic solves y⁴ + py² + r = 0 through z = y².
func biquadratic(p, r numeric.Complex) ([]numeric.Complex, error) {
	zs, err := quadraticPair(numeric.ComplexFromInt(1), p, r)
	if err != nil {
		return nil, err
	}
	ys := make([]numeric.Complex, 0, 4)
	for _, z := range zs {
		y := z.Sqrt()
		ys = append(ys, y, y.Neg())
	}
	return ys, nil
}

// quadraticPair is SolveQuadratic with a double root listed twice.
func quadraticPair(a, b, c numeric.Complex) ([]numeric.Complex, error) {
	roots, err := SolveQuadratic([]numeric.Complex{a, b, c})
	if err != nil {
		return nil, err
	}
	if len(roots) == 1 {
		roots = append(roots, roots[0])
	}
	return roots, nil
}

func realParts(coeffs []numeric.Complex) []float64 {
	f := make([]float64, len(coeffs))
	for i, c := range coeffs {
		f[i] = c.Re.Float64()
	}
	return f
}

func cmplxAbs(z numeric.Complex) float64 {
	return math.Hypot(z.Re.Float64(), z.Im.Float64())
}
