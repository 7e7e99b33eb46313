// Package numeric provides the number domain used by the solvers: an exact
// 64-bit Rational and a Complex built from two of them.
//
// Exactness model:
//   - Add, Sub, Mul, Div and Pow on exact operands are exact.
//   - Sqrt, Sin, Cos, Sinh and Cosh evaluate in float64 and re-approximate
//     with RationalFromFloat, so their results are approximations.
//   - Results that leave the int64 range degrade the same way.
//   - AddExact, SubExact, MulExact, DivExact and PowExact compute through
//     math/big and also report whether the result fit in 64 bits.
//
// Division never panics. Zero divisors return a *solveerr.Error of kind
// DivisionByZero.
//
// Example Usage:
//
//	z := numeric.NewComplex(numeric.RationalFromInt(3), numeric.RationalFromInt(4))
//	root := z.Sqrt()            // 2 + i
//	q, err := z.Div(root)       // 2 + i
package numeric
