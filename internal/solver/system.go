package solver

import (
	"strconv"

	"github.com/GriffinCanCode/polysolve/internal/equation"
	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

// Assignment binds a solution value to a variable name.
type Assignment struct {
	Name  string
	Value numeric.Complex
}

// SolveSystem solves an n×(n+1) augmented linear system, n = 2 or 3, by
// Gaussian elimination with partial pivoting on the real part. The matrix
// is modified in place. Solutions are named x1..xn by position.
func SolveSystem(matrix [][]numeric.Complex) ([]Assignment, error) {
	const op = "SolveSystem"
	n := len(matrix)
	if n != 2 && n != 3 {
		return nil, &solveerr.Error{Kind: solveerr.UnsupportedSystem, Op: op, Index: -1, Want: 3, Got: n}
	}
	for i, row := range matrix {
		if len(row) != n+1 {
			return nil, solveerr.Count(op, n+1, len(row)).At(i)
		}
	}

	for i := 0; i < n; i++ {
		pivot := i
		for j := i + 1; j < n; j++ {
			if matrix[j][i].Re.Abs().Cmp(matrix[pivot][i].Re.Abs()) > 0 {
				pivot = j
			}
		}
		matrix[i], matrix[pivot] = matrix[pivot], matrix[i]
		if matrix[i][i].IsZero() {
			return nil, solveerr.New(solveerr.Singular, op).At(i)
		}

		for j := i + 1; j < n; j++ {
			factor, err := matrix[j][i].Div(matrix[i][i])
			if err != nil {
				return nil, err
			}
			for k := i; k <= n; k++ {
				matrix[j][k] = matrix[j][k].Sub(factor.Mul(matrix[i][k]))
			}
		}
	}

	x := make([]numeric.Complex, n)
	for i := n - 1; i >= 0; i-- {
		sum := matrix[i][n]
		for j := i + 1; j < n; j++ {
			sum = sum.Sub(matrix[i][j].Mul(x[j]))
		}
		v, err := sum.Div(matrix[i][i])
		if err != nil {
			return nil, err
		}
		x[i] = v
	}
	return Assign(x, true), nil
}

// SolveSystemEquations builds the augmented matrix from equation text and
// solves it.
func SolveSystemEquations(eqs []string) ([]Assignment, error) {
	m, err := equation.AugmentedMatrix(eqs)
	if err != nil {
		return nil, err
	}
	return SolveSystem(m)
}

// Assign names values x1..xn, or plain x for a lone root unless indexed is set.
func Assign(values []numeric.Complex, indexed bool) []Assignment {
	out := make([]Assignment, len(values))
	for i, v := range values {
		name := "x"
		if indexed || len(values) > 1 {
			name += strconv.Itoa(i + 1)
		}
		out[i] = Assignment{Name: name, Value: v}
	}
	return out
}
