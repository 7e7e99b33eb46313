package numeric

import (
	"math/big"

	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

// maxExactBits bounds the numerator and denominator size PowExact tracks
// before it gives up and reports an approximate result.
const maxExactBits = 4096

// bigComplex is an unbounded complex rational.
type bigComplex struct {
	re, im *big.Rat
}

func (z Complex) big() bigComplex {
	return bigComplex{re: z.Re.Big(), im: z.Im.Big()}
}

func (b bigComplex) add(c bigComplex) bigComplex {
	return bigComplex{re: new(big.Rat).Add(b.re, c.re), im: new(big.Rat).Add(b.im, c.im)}
}

func (b bigComplex) mul(c bigComplex) bigComplex {
	ac := new(big.Rat).Mul(b.re, c.re)
	bd := new(big.Rat).Mul(b.im, c.im)
	ad := new(big.Rat).Mul(b.re, c.im)
	bc := new(big.Rat).Mul(b.im, c.re)
	return bigComplex{re: ac.Sub(ac, bd), im: ad.Add(ad, bc)}
}

// inverse fails when b is zero.
func (b bigComplex) inverse() (bigComplex, bool) {
	n := new(big.Rat).Mul(b.re, b.re)
	n.Add(n, new(big.Rat).Mul(b.im, b.im))
	if n.Sign() == 0 {
		return bigComplex{}, false
	}
	re := new(big.Rat).Quo(b.re, n)
	im := new(big.Rat).Quo(b.im, n)
	return bigComplex{re: re, im: im.Neg(im)}, true
}

func (b bigComplex) bits() int {
	n := 0
	for _, x := range []*big.Rat{b.re, b.im} {
		n = max(n, x.Num().BitLen(), x.Denom().BitLen())
	}
	return n
}

// narrow converts b back to 64 bits, reporting whether that was lossless.
func (b bigComplex) narrow() (Complex, bool) {
	re, reExact := RationalFromBig(b.re)
	im, imExact := RationalFromBig(b.im)
	return Complex{Re: re, Im: im}, reExact && imExact
}

// AddExact returns z + w and whether the sum fit in 64 bits.
func (z Complex) AddExact(w Complex) (Complex, bool) {
	return z.big().add(w.big()).narrow()
}

// SubExact returns z - w and whether the difference fit in 64 bits.
func (z Complex) SubExact(w Complex) (Complex, bool) {
	return z.big().add(w.Neg().big()).narrow()
}

// MulExact returns z · w and whether the product fit in 64 bits.
func (z Complex) MulExact(w Complex) (Complex, bool) {
	return z.big().mul(w.big()).narrow()
}

// DivExact returns z / w and whether the quotient fit in 64 bits.
// Intermediate products may exceed 64 bits without losing exactness.
func (z Complex) DivExact(w Complex) (Complex, bool, error) {
	inv, ok := w.big().inverse()
	if !ok {
		return Complex{}, false, solveerr.New(solveerr.DivisionByZero, "Complex.DivExact")
	}
	q, exact := z.big().mul(inv).narrow()
	return q, exact, nil
}

// PowExact returns z^n and whether it fit in 64 bits. Once an intermediate
// power outgrows maxExactBits it falls back to Pow and reports false.
func (z Complex) PowExact(n int) (Complex, bool, error) {
	if n < 0 && z.IsZero() {
		return Complex{}, false, solveerr.New(solveerr.DivisionByZero, "Complex.PowExact")
	}
	e := n
	if e < 0 {
		e = -e
	}
	result := bigComplex{re: big.NewRat(1, 1), im: new(big.Rat)}
	base := z.big()
	for e > 0 {
		if e&1 == 1 {
			result = result.mul(base)
		}
		e >>= 1
		if e > 0 {
			base = base.mul(base)
		}
		if result.bits() > maxExactBits || base.bits() > maxExactBits {
			p, err := z.Pow(n)
			return p, false, err
		}
	}
	if n < 0 {
		result, _ = result.inverse()
	}
	p, exact := result.narrow()
	return p, exact, nil
}
