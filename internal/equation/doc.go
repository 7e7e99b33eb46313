// Package equation turns equation text into solver input.
//
// An equation "LHS = RHS" is first normalized to "LHS - RHS" (= 0), then
// split into signed terms of the form [coefficient][*]variable[^power].
// Coefficients may be integers, decimals or n/d fractions. The variable is
// x (or x1) for univariate equations; linear systems also accept y/x2 and
// z/x3. Superscript exponents such as x² are accepted.
//
// Example Usage:
//
//	deg, _ := equation.Degree("x² - 5x + 6 = 0")           // 2
//	coeffs, _ := equation.Coefficients("x^2 = 5x - 6", 2)   // [1, -5, 6]
//	m, _ := equation.AugmentedMatrix([]string{"x + y = 5", "x - y = 1"})
//	// [[1 1 5] [1 -1 1]]
package equation
