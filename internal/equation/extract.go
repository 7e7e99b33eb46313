package equation

import (
	"strings"

	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
	"github.com/GriffinCanCode/polysolve/internal/shared/utils"
)

// MaxDegree is the highest power Coefficients and Polynomial accept.
const MaxDegree = utils.MaxCoefficients - 1

// Degree returns the highest power of the variable in eq, 0 when eq has no
// variable at all.
func Degree(eq string) (int, error) {
	terms, err := Parse(eq)
	if err != nil {
		return 0, err
	}
	return degreeOf(terms), nil
}

func degreeOf(terms []Term) int {
	deg := 0
	for _, t := range terms {
		if t.Power > deg {
			deg = t.Power
		}
	}
	return deg
}

// Coefficients returns the coefficient vector of a univariate equation,
// ordered from x^degree down to the constant term. Missing powers are zero
// and repeated powers are summed. degree may not exceed MaxDegree.
func Coefficients(eq string, degree int) ([]numeric.Complex, error) {
	terms, err := Parse(eq)
	if err != nil {
		return nil, err
	}
	return coefficients(terms, degree)
}

func coefficients(terms []Term, degree int) ([]numeric.Complex, error) {
	if degree < 0 {
		return nil, solveerr.New(solveerr.InvalidCoefficientCount, "equation.Coefficients")
	}
	if degree > MaxDegree {
		return nil, solveerr.Count("equation.Coefficients", MaxDegree+1, degree+1)
	}
	coeffs := make([]numeric.Complex, degree+1)
	for i, t := range terms {
		if t.Slot > 1 || t.Power > degree {
			return nil, solveerr.Parse("equation.Coefficients", t.Text, i, nil)
		}
		pos := degree - t.Power
		coeffs[pos] = coeffs[pos].Add(numeric.ComplexFromReal(t.Coeff))
	}
	return coeffs, nil
}

// Polynomial parses eq and returns its detected degree together with the
// matching coefficient vector.
func Polynomial(eq string) (int, []numeric.Complex, error) {
	terms, err := Parse(eq)
	if err != nil {
		return 0, nil, err
	}
	deg := degreeOf(terms)
	coeffs, err := coefficients(terms, deg)
	if err != nil {
		return 0, nil, err
	}
	return deg, coeffs, nil
}

// AugmentedMatrix builds the n×(n+1) matrix [A | b] of a linear system in
// x/x1, y/x2 and z/x3. Only 2 and 3 equations are accepted.
func AugmentedMatrix(eqs []string) ([][]numeric.Complex, error) {
	n := len(eqs)
	if n != 2 && n != 3 {
		return nil, &solveerr.Error{
			Kind: solveerr.UnsupportedSystem, Op: "equation.AugmentedMatrix",
			Index: -1, Want: 3, Got: n,
		}
	}

	matrix := make([][]numeric.Complex, n)
	for row, eq := range eqs {
		terms, err := Parse(eq)
		if err != nil {
			return nil, err
		}
		matrix[row] = make([]numeric.Complex, n+1)
		for _, t := range terms {
			switch {
			case t.IsConstant():
				matrix[row][n] = matrix[row][n].Sub(numeric.ComplexFromReal(t.Coeff))
			case t.Power != 1 || t.Slot > n:
				return nil, solveerr.Parse("equation.AugmentedMatrix", t.Text, row, nil)
			default:
				col := t.Slot - 1
				matrix[row][col] = matrix[row][col].Add(numeric.ComplexFromReal(t.Coeff))
			}
		}
	}
	return matrix, nil
}

// IsSystem reports whether input holds more than one equation.
func IsSystem(input string) bool {
	return strings.ContainsAny(input, ",;")
}

// SplitSystem splits input on ',' or ';' and drops blank entries.
func SplitSystem(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ';' })
	eqs := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			eqs = append(eqs, f)
		}
	}
	return eqs
}
