package numeric

import (
	"math"
	"math/bits"
)

const (
	// MaxApproxDenominator bounds the denominators RationalFromFloat produces.
	MaxApproxDenominator = 10000
	// simpleTolerance is the snap distance for the simple-fraction table.
	simpleTolerance = 1e-10
)

// simpleFractions are matched against |v| before any continued-fraction work.
var simpleFractions = []struct {
	value    float64
	num, den int64
}{
	{0.5, 1, 2},
	{0.25, 1, 4},
	{0.75, 3, 4},
	{0.125, 1, 8},
	{0.375, 3, 8},
	{0.625, 5, 8},
	{0.875, 7, 8},
	{1.0 / 3.0, 1, 3},
	{2.0 / 3.0, 2, 3},
	{0.2, 1, 5},
	{0.4, 2, 5},
	{0.6, 3, 5},
	{0.8, 4, 5},
}

// RationalFromFloat returns a best-fit fraction for v.
//
// Values within 1e-10 of a simple fraction (halves, thirds, quarters, fifths,
// eighths) snap to it. Everything else gets the closest fraction whose
// denominator does not exceed MaxApproxDenominator, found by walking the
// continued-fraction convergents of |v| and checking the last
// semiconvergent. NaN maps to 0 and magnitudes beyond int64 saturate.
//
//	RationalFromFloat(0.5)       → 1/2
//	RationalFromFloat(-0.75)     → -3/4
//	RationalFromFloat(math.Pi)   → 355/113
//	RationalFromFloat(math.Sqrt2)→ 8119/5741
func RationalFromFloat(v float64) Rational {
	if v == 0 || math.IsNaN(v) {
		return Zero
	}
	neg := v < 0
	x := math.Abs(v)

	for _, f := range simpleFractions {
		if math.Abs(x-f.value) < simpleTolerance {
			return signed(Rational{num: f.num, dm1: f.den - 1}, neg)
		}
	}

	if x >= math.MaxInt64 {
		return signed(Rational{num: math.MaxInt64}, neg)
	}
	if x >= 1<<52 {
		// No fractional bits left.
		return signed(Rational{num: int64(math.Round(x))}, neg)
	}

	maxDen := int64(MaxApproxDenominator)
	if limit := int64(float64(math.MaxInt64/2) / (x + 1)); limit < maxDen {
		maxDen = limit
	}
	return signed(continuedFraction(x, maxDen), neg)
}

// continuedFraction approximates x > 0 with denominator at most maxDen.
func continuedFraction(x float64, maxDen int64) Rational {
	// h/k are successive convergents, seeded with h₋₂/k₋₂ = 0/1, h₋₁/k₋₁ = 1/0.
	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	frac := x

	for i := 0; i < 64; i++ {
		a := math.Floor(frac)
		if k1 > 0 && (a > float64(maxDen) || int64(a)*k1+k0 > maxDen) {
			t := (maxDen - k0) / k1
			best := normalize(h1, k1)
			if t > 0 {
				semi := normalize(t*h1+h0, t*k1+k0)
				if math.Abs(semi.Float64()-x) < math.Abs(best.Float64()-x) {
					best = semi
				}
			}
			return best
		}
		ai := int64(a)
		h0, h1 = h1, ai*h1+h0
		k0, k1 = k1, ai*k1+k0

		rem := frac - a
		if rem == 0 || float64(h1)/float64(k1) == x {
			break
		}
		frac = 1 / rem
	}
	return normalize(h1, k1)
}

func signed(r Rational, neg bool) Rational {
	if neg {
		return r.Neg()
	}
	return r
}

// IsPerfectSquare reports whether r = (a/b)² for integers a, b.
// Negative values never are.
func (r Rational) IsPerfectSquare() bool {
	return r.IsPerfectPower(2)
}

// IsPerfectPower reports whether r = (a/b)^n for integers a, b.
// Even powers of negative values are rejected.
func (r Rational) IsPerfectPower(n int) bool {
	_, ok := r.NthRootExact(n)
	return ok
}

// SqrtExact returns the exact square root when r is a perfect square.
func (r Rational) SqrtExact() (Rational, bool) {
	return r.NthRootExact(2)
}

// NthRootExact returns the exact n-th root of r when one exists. The root of
// numerator and denominator is found by rounding the floating n-th root and
// verifying the reconstruction with integer arithmetic.
func (r Rational) NthRootExact(n int) (Rational, bool) {
	if n < 1 {
		return Zero, false
	}
	if n == 1 || r.num == 0 {
		return r, true
	}
	neg := r.num < 0
	if neg && n%2 == 0 {
		return Zero, false
	}
	num, ok := integerRoot(uint64(abs64(r.num)), n)
	if !ok {
		return Zero, false
	}
	den, ok := integerRoot(uint64(r.Den()), n)
	if !ok {
		return Zero, false
	}
	// Both roots are ≤ the originals, so they fit in int64 and stay coprime.
	root := Rational{num: int64(num), dm1: int64(den) - 1}
	return signed(root, neg), true
}

// integerRoot returns the exact n-th root of x, if it is an integer.
func integerRoot(x uint64, n int) (uint64, bool) {
	guess := uint64(math.Round(math.Pow(float64(x), 1/float64(n))))
	for _, c := range []uint64{guess, guess - 1, guess + 1} {
		if c == 0 && x != 0 {
			continue
		}
		if p, ok := pow64(c, n); ok && p == x {
			return c, true
		}
	}
	return 0, false
}

// pow64 returns base^n, reporting false on overflow.
func pow64(base uint64, n int) (uint64, bool) {
	result := uint64(1)
	for i := 0; i < n; i++ {
		hi, lo := bits.Mul64(result, base)
		if hi != 0 {
			return 0, false
		}
		result = lo
	}
	return result, true
}
