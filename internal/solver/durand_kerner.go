package solver

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

// Durand-Kerner defaults.
const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-10
)

// perturbation replaces a zero root difference so the correction stays finite.
const perturbation = complex(1e-9, 1e-9)

// Options tunes the Durand-Kerner iteration.
type Options struct {
	MaxIterations int
	// Tolerance bounds the largest |Δre| + |Δim| of a sweep at convergence.
	Tolerance float64
}

// DefaultOptions returns the 100 iteration, 1e-10 tolerance configuration.
func DefaultOptions() Options {
	return Options{MaxIterations: DefaultMaxIterations, Tolerance: DefaultTolerance}
}

// PolynomialResult is the outcome of an iterative solve.
type PolynomialResult struct {
	Roots      []numeric.Complex
	Converged  bool
	Iterations int
}

// SolveQuintic finds all roots of a polynomial of degree five or higher with
// DefaultOptions.
func SolveQuintic(coeffs []numeric.Complex) (PolynomialResult, error) {
	return DurandKerner(coeffs, DefaultOptions())
}

// DurandKerner approximates all roots of the polynomial with the given
// coefficients (highest degree first, at least six of them) by Weierstrass
// simultaneous iteration.
//
// Initial guesses sit on a circle of radius 1 + max|Re(cᵢ)| over the
// normalized non-leading coefficients, rotated a quarter step so none starts
// on the real axis. Imaginary parts of the coefficients do not enter the
// radius. The roots are returned whether or not the iteration converged;
// check Converged. A sweep that overflows float64 stops the iteration
// unconverged and keeps the last finite estimates.
func DurandKerner(coeffs []numeric.Complex, opts Options) (PolynomialResult, error) {
	const op = "DurandKerner"
	if len(coeffs) < 6 {
		return PolynomialResult{}, solveerr.Count(op, 6, len(coeffs))
	}
	lead := coeffs[0]
	if lead.IsZero() {
		return PolynomialResult{}, solveerr.New(solveerr.ZeroLeadingCoefficient, op).At(0)
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	monic := make([]complex128, len(coeffs))
	magnitudes := make([]float64, 0, len(coeffs)-1)
	for i, c := range coeffs {
		n, err := c.Div(lead)
		if err != nil {
			return PolynomialResult{}, err
		}
		monic[i] = n.Complex128()
		if i > 0 {
			magnitudes = append(magnitudes, math.Abs(real(monic[i])))
		}
	}

	degree := len(coeffs) - 1
	roots := initialGuesses(degree, 1+floats.Max(magnitudes))
	next := make([]complex128, degree)

	result := PolynomialResult{}
sweeps:
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		result.Iterations = iter
		maxChange := 0.0
		for i, zi := range roots {
			denom := complex(1, 0)
			for j, zj := range roots {
				if i == j {
					continue
				}
				diff := zi - zj
				if diff == 0 {
					diff = perturbation
				}
				denom *= diff
			}
			next[i] = zi - horner(monic, zi)/denom
			if !finite(denom) || !finite(next[i]) {
				break sweeps
			}
			if change := l1(next[i] - zi); change > maxChange {
				maxChange = change
			}
		}
		roots, next = next, roots
		if maxChange < opts.Tolerance {
			result.Converged = true
			break
		}
	}

	result.Roots = make([]numeric.Complex, degree)
	for i, z := range roots {
		result.Roots[i] = numeric.ComplexFrom128(z)
	}
	return result, nil
}

// initialGuesses spreads n points over a circle of the given radius, rotated
// by a quarter step so no guess starts on the real axis.
func initialGuesses(n int, radius float64) []complex128 {
	roots := make([]complex128, n)
	offset := math.Pi / (2 * float64(n))
	for k := range roots {
		theta := 2*math.Pi*float64(k)/float64(n) + offset
		roots[k] = complex(radius*math.Cos(theta), radius*math.Sin(theta))
	}
	return roots
}

// horner evaluates the polynomial with coefficients highest degree first.
func horner(coeffs []complex128, z complex128) complex128 {
	acc := coeffs[0]
	for _, c := range coeffs[1:] {
		acc = acc*z + c
	}
	return acc
}

func finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

func l1(z complex128) float64 {
	return math.Abs(real(z)) + math.Abs(imag(z))
}
