package math

import (
	gomath "math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/GriffinCanCode/polysolve/internal/numeric"
)

// Diagnostics describes the numerical quality of a solved linear system
type Diagnostics struct {
	// Condition is the 2-norm condition number of the coefficient matrix.
	Condition float64
	// Residual is ||Ax - b||₂ in float64.
	Residual       float64
	IllConditioned bool
}

// Diagnose evaluates a solved n×(n+1) augmented system. It returns false
// when the matrix or the solution has a non-real entry.
func Diagnose(matrix [][]numeric.Complex, x []numeric.Complex, warn float64) (Diagnostics, bool) {
	n := len(matrix)
	if n == 0 || len(x) != n {
		return Diagnostics{}, false
	}

	a := mat.NewDense(n, n, nil)
	b := make([]float64, n)
	for i, row := range matrix {
		if len(row) != n+1 {
			return Diagnostics{}, false
		}
		for j, v := range row {
			if !v.IsReal() {
				return Diagnostics{}, false
			}
			if j < n {
				a.Set(i, j, v.Re.Float64())
			} else {
				b[i] = v.Re.Float64()
			}
		}
	}

	xs := make([]float64, n)
	for i, v := range x {
		if !v.IsReal() {
			return Diagnostics{}, false
		}
		xs[i] = v.Re.Float64()
	}

	var ax mat.VecDense
	ax.MulVec(a, mat.NewVecDense(n, xs))
	residual := make([]float64, n)
	floats.SubTo(residual, ax.RawVector().Data, b)

	cond := mat.Cond(a, 2)
	return Diagnostics{
		Condition:      cond,
		Residual:       floats.Norm(residual, 2),
		IllConditioned: gomath.IsInf(cond, 1) || cond > warn,
	}, true
}

func (d Diagnostics) data() map[string]interface{} {
	out := map[string]interface{}{
		"residual":        d.Residual,
		"ill_conditioned": d.IllConditioned,
	}
	if !gomath.IsInf(d.Condition, 0) && !gomath.IsNaN(d.Condition) {
		out["condition"] = d.Condition
	}
	return out
}

func cloneMatrix(m [][]numeric.Complex) [][]numeric.Complex {
	out := make([][]numeric.Complex, len(m))
	for i, row := range m {
		out[i] = append([]numeric.Complex(nil), row...)
	}
	return out
}
