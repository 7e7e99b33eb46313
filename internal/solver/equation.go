package solver

import (
	"fmt"

	"github.com/GriffinCanCode/polysolve/internal/equation"
	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

// Method identifies the algorithm that produced a Solution.
type Method uint8

const (
	MethodLinear Method = iota + 1
	MethodQuadratic
	MethodCubic
	MethodQuartic
	MethodDurandKerner
	MethodGaussian
)

func (m Method) String() string {
	switch m {
	case MethodLinear:
		return "linear"
	case MethodQuadratic:
		return "quadratic"
	case MethodCubic:
		return "cubic"
	case MethodQuartic:
		return "quartic"
	case MethodDurandKerner:
		return "durand_kerner"
	case MethodGaussian:
		return "gaussian_elimination"
	default:
		return "unknown"
	}
}

// Solution is the result of Solve.
type Solution struct {
	Method Method
	// Degree of the polynomial, or the number of unknowns of a system.
	Degree      int
	Assignments []Assignment
	// Converged and Iterations are only meaningful for MethodDurandKerner.
	Converged  bool
	Iterations int
}

// Values returns the assigned values in order.
func (s *Solution) Values() []numeric.Complex {
	out := make([]numeric.Complex, len(s.Assignments))
	for i, a := range s.Assignments {
		out[i] = a.Value
	}
	return out
}

// Names returns the assigned variable names in order.
func (s *Solution) Names() []string {
	out := make([]string, len(s.Assignments))
	for i, a := range s.Assignments {
		out[i] = a.Name
	}
	return out
}

// Solve solves a single polynomial equation or, when input contains ',' or
// ';', a linear system. Polynomial equations are dispatched on their
// detected degree: closed forms up to degree four, Durand-Kerner beyond.
func Solve(input string) (*Solution, error) {
	if equation.IsSystem(input) {
		eqs := equation.SplitSystem(input)
		values, err := SolveSystemEquations(eqs)
		if err != nil {
			return nil, err
		}
		return &Solution{Method: MethodGaussian, Degree: len(eqs), Assignments: values, Converged: true}, nil
	}

	degree, coeffs, err := equation.Polynomial(input)
	if err != nil {
		return nil, err
	}
	if degree == 0 {
		kind := solveerr.NoSolution
		if coeffs[0].IsZero() {
			kind = solveerr.InfiniteSolutions
		}
		return nil, solveerr.New(kind, "Solve")
	}
	return SolvePolynomial(coeffs, DefaultOptions())
}

// SolvePolynomial dispatches on the coefficient count: closed forms for
// degrees one to four, Durand-Kerner with opts beyond.
func SolvePolynomial(coeffs []numeric.Complex, opts Options) (*Solution, error) {
	degree := len(coeffs) - 1
	if degree < 1 {
		return nil, solveerr.Count("SolvePolynomial", 2, len(coeffs))
	}

	sol := &Solution{Degree: degree, Converged: true}
	var roots []numeric.Complex
	var err error
	switch degree {
	case 1:
		sol.Method = MethodLinear
		roots, err = SolveLinear(coeffs)
	case 2:
		sol.Method = MethodQuadratic
		roots, err = SolveQuadratic(coeffs)
	case 3:
		sol.Method = MethodCubic
		roots, err = SolveCubic(coeffs)
	case 4:
		sol.Method = MethodQuartic
		roots, err = SolveQuartic(coeffs)
	default:
		sol.Method = MethodDurandKerner
		var res PolynomialResult
		res, err = DurandKerner(coeffs, opts)
		roots, sol.Converged, sol.Iterations = res.Roots, res.Converged, res.Iterations
	}
	if err != nil {
		return nil, err
	}
	sol.Assignments = Assign(roots, false)
	return sol, nil
}

func coefficientsOf(op, eq string, degree int) ([]numeric.Complex, error) {
	coeffs, err := equation.Coefficients(eq, degree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return coeffs, nil
}

// SolveLinearEquation parses a degree 1 equation and solves it.
func SolveLinearEquation(eq string) ([]numeric.Complex, error) {
	coeffs, err := coefficientsOf("SolveLinearEquation", eq, 1)
	if err != nil {
		return nil, err
	}
	return SolveLinear(coeffs)
}

// SolveQuadraticEquation parses a degree 2 equation and solves it.
func SolveQuadraticEquation(eq string) ([]numeric.Complex, error) {
	coeffs, err := coefficientsOf("SolveQuadraticEquation", eq, 2)
	if err != nil {
		return nil, err
	}
	return SolveQuadratic(coeffs)
}

// SolveCubicEquation parses a degree 3 equation and solves it.
func SolveCubicEquation(eq string) ([]numeric.Complex, error) {
	coeffs, err := coefficientsOf("SolveCubicEquation", eq, 3)
	if err != nil {
		return nil, err
	}
	return SolveCubic(coeffs)
}

// SolveQuarticEquation parses a degree 4 equation and solves it.
func SolveQuarticEquation(eq string) ([]numeric.Complex, error) {
	coeffs, err := coefficientsOf("SolveQuarticEquation", eq, 4)
	if err != nil {
		return nil, err
	}
	return SolveQuartic(coeffs)
}

// SolveQuinticEquation parses an equation of degree five or more and solves
// it with Durand-Kerner.
func SolveQuinticEquation(eq string) (PolynomialResult, error) {
	degree, err := equation.Degree(eq)
	if err != nil {
		return PolynomialResult{}, fmt.Errorf("SolveQuinticEquation: %w", err)
	}
	coeffs, err := coefficientsOf("SolveQuinticEquation", eq, max(degree, 5))
	if err != nil {
		return PolynomialResult{}, err
	}
	return SolveQuintic(coeffs)
}
