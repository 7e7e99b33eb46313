package solver

import (
	"errors"
	"math/cmplx"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

func ints(vals ...int64) []numeric.Complex {
	out := make([]numeric.Complex, len(vals))
	for i, v := range vals {
		out[i] = numeric.ComplexFromInt(v)
	}
	return out
}

func cx(re, im int64) numeric.Complex {
	return numeric.NewComplex(numeric.RationalFromInt(re), numeric.RationalFromInt(im))
}

// sortedReals returns the real parts of roots in ascending order and checks
// that every imaginary part is negligible.
func sortedReals(t *testing.T, roots []numeric.Complex) []float64 {
	t.Helper()
	out := make([]float64, len(roots))
	for i, r := range roots {
		assert.InDelta(t, 0, r.Im.Float64(), 1e-6, "root %s", r)
		out[i] = r.Re.Float64()
	}
	sort.Float64s(out)
	return out
}

func assertRoots(t *testing.T, want []float64, roots []numeric.Complex, delta float64) {
	t.Helper()
	got := sortedReals(t, roots)
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta)
	}
}

// evalAt evaluates the polynomial with coefficients highest degree first.
func evalAt(coeffs []numeric.Complex, z complex128) complex128 {
	acc := complex(0, 0)
	for _, c := range coeffs {
		acc = acc*z + c.Complex128()
	}
	return acc
}

func TestSolveLinear(t *testing.T) {
	roots, err := SolveLinear(ints(2, -4))
	require.NoError(t, err)
	assert.Equal(t, ints(2), roots)

	roots, err = SolveLinear(ints(3, 1))
	require.NoError(t, err)
	assert.Equal(t, []numeric.Complex{numeric.ComplexFromReal(numeric.MustRational(-1, 3))}, roots)

	t.Run("no solution", func(t *testing.T) {
		_, err := SolveLinear(ints(0, 5))
		assert.Equal(t, solveerr.NoSolution, solveerr.KindOf(err))
		assert.ErrorIs(t, err, solveerr.ErrZeroLeadingCoefficient)
	})

	t.Run("infinite solutions", func(t *testing.T) {
		_, err := SolveLinear(ints(0, 0))
		assert.Equal(t, solveerr.InfiniteSolutions, solveerr.KindOf(err))
		assert.ErrorIs(t, err, solveerr.ErrZeroLeadingCoefficient)
	})

	t.Run("wrong count", func(t *testing.T) {
		_, err := SolveLinear(ints(1, 2, 3))
		assert.ErrorIs(t, err, solveerr.ErrInvalidCoefficientCount)
	})
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []numeric.Complex
		want   []numeric.Complex
	}{
		{"imaginary pair", ints(1, 0, 1), []numeric.Complex{cx(0, 1), cx(0, -1)}},
		{"double root collapses", ints(1, 2, 1), ints(-1)},
		{"complex pair", ints(1, 2, 10), []numeric.Complex{cx(-1, 3), cx(-1, -3)}},
		{"plus branch first", ints(1, -5, 6), ints(3, 2)},
		{"plus branch first with negative a", ints(-1, 5, -6), ints(2, 3)},
		{
			"rational roots", ints(4, 0, -1),
			[]numeric.Complex{numeric.ComplexFromReal(numeric.Half), numeric.ComplexFromReal(numeric.Half.Neg())},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := SolveQuadratic(tt.coeffs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, roots)
		})
	}

	t.Run("zero leading coefficient", func(t *testing.T) {
		_, err := SolveQuadratic(ints(0, 1, 1))
		var se *solveerr.Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, solveerr.ZeroLeadingCoefficient, se.Kind)
		assert.Equal(t, 0, se.Index)
	})

	t.Run("wrong count", func(t *testing.T) {
		_, err := SolveQuadratic(ints(1, 2))
		var se *solveerr.Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 3, se.Want)
		assert.Equal(t, 2, se.Got)
	})

	t.Run("complex coefficients", func(t *testing.T) {
		// (x - i)(x - 2) = x² - (2+i)x + 2i
		roots, err := SolveQuadratic([]numeric.Complex{cx(1, 0), cx(-2, -1), cx(0, 2)})
		require.NoError(t, err)
		require.Len(t, roots, 2)
		for _, r := range roots {
			assert.InDelta(t, 0, cmplx.Abs(evalAt([]numeric.Complex{cx(1, 0), cx(-2, -1), cx(0, 2)}, r.Complex128())), 1e-3)
		}
	})
}

func TestSolveCubic(t *testing.T) {
	t.Run("three real roots", func(t *testing.T) {
		roots, err := SolveCubic(ints(1, -6, 11, -6))
		require.NoError(t, err)
		assertRoots(t, []float64{1, 2, 3}, roots, 1e-9)
	})

	t.Run("double root", func(t *testing.T) {
		roots, err := SolveCubic(ints(1, 0, -3, 2))
		require.NoError(t, err)
		assertRoots(t, []float64{-2, 1, 1}, roots, 1e-9)
	})

	t.Run("triple root", func(t *testing.T) {
		roots, err := SolveCubic(ints(1, -3, 3, -1))
		require.NoError(t, err)
		assertRoots(t, []float64{1, 1, 1}, roots, 1e-9)
	})

	t.Run("one real root and a conjugate pair", func(t *testing.T) {
		// (x - 1)(x² + 1)
		roots, err := SolveCubic(ints(1, -1, 1, -1))
		require.NoError(t, err)
		require.Len(t, roots, 3)
		assert.Equal(t, numeric.ComplexFromInt(1), roots[0])
		assert.Equal(t, roots[1].Conj(), roots[2])
		assert.InDelta(t, 0, roots[1].Re.Float64(), 1e-6)
		assert.InDelta(t, 1, roots[1].Im.Float64(), 1e-6)
	})

	t.Run("non-monic", func(t *testing.T) {
		roots, err := SolveCubic(ints(2, -4, -22, 24))
		require.NoError(t, err)
		assertRoots(t, []float64{-3, 1, 4}, roots, 1e-9)
	})

	t.Run("zero leading coefficient", func(t *testing.T) {
		_, err := SolveCubic(ints(0, 1, 2, 3))
		assert.ErrorIs(t, err, solveerr.ErrZeroLeadingCoefficient)
	})
}

func TestSolveQuartic(t *testing.T) {
	t.Run("four real roots", func(t *testing.T) {
		roots, err := SolveQuartic(ints(1, -10, 35, -50, 24))
		require.NoError(t, err)
		assertRoots(t, []float64{1, 2, 3, 4}, roots, 1e-6)
	})

	t.Run("even quartic", func(t *testing.T) {
		// (x² - 1)(x² - 4)
		roots, err := SolveQuartic(ints(1, 0, -5, 0, 4))
		require.NoError(t, err)
		assertRoots(t, []float64{-2, -1, 1, 2}, roots, 1e-6)
	})

	t.Run("zero resolvent root takes biquadratic path", func(t *testing.T) {
		// (x² + 1)(x² + 4)
		roots, err := SolveQuartic(ints(1, 0, 5, 0, 4))
		require.NoError(t, err)
		assert.ElementsMatch(t, []numeric.Complex{cx(0, 1), cx(0, -1), cx(0, 2), cx(0, -2)}, roots)
	})

	t.Run("complex roots", func(t *testing.T) {
		coeffs := ints(1, 0, 0, 0, 1)
		roots, err := SolveQuartic(coeffs)
		require.NoError(t, err)
		require.Len(t, roots, 4)
		for _, r := range roots {
			assert.InDelta(t, 0, cmplx.Abs(evalAt(coeffs, r.Complex128())), 1e-3, "root %s", r)
		}
	})

	t.Run("repeated roots keep multiplicity", func(t *testing.T) {
		// (x - 1)²(x - 2)²
		roots, err := SolveQuartic(ints(1, -6, 13, -12, 4))
		require.NoError(t, err)
		assert.Len(t, roots, 4)
		for _, r := range roots {
			assert.InDelta(t, 0, cmplx.Abs(evalAt(ints(1, -6, 13, -12, 4), r.Complex128())), 1e-3, "root %s", r)
		}
	})

	t.Run("wrong count", func(t *testing.T) {
		_, err := SolveQuartic(ints(1, 2, 3, 4))
		assert.ErrorIs(t, err, solveerr.ErrInvalidCoefficientCount)
	})
}

func TestResolventRoot(t *testing.T) {
	assert.Equal(t, cx(4, 0), resolventRoot([]numeric.Complex{cx(-1, 0), cx(0, 0), cx(4, 0)}))
	assert.Equal(t, cx(0, 0), resolventRoot([]numeric.Complex{cx(-1, 0), cx(0, 0), cx(-2, 0)}))
	assert.Equal(t, cx(-1, 1), resolventRoot([]numeric.Complex{cx(-1, 1), cx(-1, -1), cx(-3, 0)}))
}

func TestDurandKerner(t *testing.T) {
	quintic := ints(1, -15, 85, -225, 274, -120)

	t.Run("quintic with integer roots", func(t *testing.T) {
		res, err := SolveQuintic(quintic)
		require.NoError(t, err)
		assert.True(t, res.Converged)
		assert.LessOrEqual(t, res.Iterations, DefaultMaxIterations)
		assertRoots(t, []float64{1, 2, 3, 4, 5}, res.Roots, 1e-6)
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := SolveQuintic(quintic)
		require.NoError(t, err)
		b, err := SolveQuintic(quintic)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("non-monic sextic", func(t *testing.T) {
		// 2(x⁶ - 1)
		coeffs := ints(2, 0, 0, 0, 0, 0, -2)
		res, err := SolveQuintic(coeffs)
		require.NoError(t, err)
		assert.True(t, res.Converged)
		require.Len(t, res.Roots, 6)
		for _, r := range res.Roots {
			assert.InDelta(t, 1, cmplx.Abs(r.Complex128()), 1e-4, "root %s", r)
		}
	})

	t.Run("iteration cap is reported", func(t *testing.T) {
		res, err := DurandKerner(quintic, Options{MaxIterations: 2, Tolerance: 1e-10})
		require.NoError(t, err)
		assert.False(t, res.Converged)
		assert.Equal(t, 2, res.Iterations)
		assert.Len(t, res.Roots, 5)
	})

	t.Run("overflow stops unconverged", func(t *testing.T) {
		// x²⁰ - 10¹⁸: the first Horner sweep exceeds float64
		coeffs := make([]int64, 21)
		coeffs[0], coeffs[20] = 1, -1_000_000_000_000_000_000
		res, err := SolveQuintic(ints(coeffs...))
		require.NoError(t, err)
		assert.False(t, res.Converged)
		assert.Equal(t, 1, res.Iterations)
		require.Len(t, res.Roots, 20)
		for _, r := range res.Roots {
			z := r.Complex128()
			assert.False(t, cmplx.IsNaN(z) || cmplx.IsInf(z), "root %s", r)
			assert.Greater(t, cmplx.Abs(z), 1.0, "root %s", r)
		}
	})

	t.Run("too few coefficients", func(t *testing.T) {
		_, err := SolveQuintic(ints(1, 2, 3, 4, 5))
		assert.ErrorIs(t, err, solveerr.ErrInvalidCoefficientCount)
	})

	t.Run("zero leading coefficient", func(t *testing.T) {
		_, err := SolveQuintic(ints(0, 1, 2, 3, 4, 5))
		assert.ErrorIs(t, err, solveerr.ErrZeroLeadingCoefficient)
	})
}

func TestHorner(t *testing.T) {
	// 2x² - 3x + 1 at x = 2
	assert.Equal(t, complex(3, 0), horner([]complex128{2, -3, 1}, 2))
	// x³ at i
	assert.Equal(t, complex(0, -1), horner([]complex128{1, 0, 0, 0}, 1i))
}

func TestSolveSystem(t *testing.T) {
	t.Run("two by two", func(t *testing.T) {
		got, err := SolveSystem([][]numeric.Complex{ints(1, 1, 5), ints(1, -1, 1)})
		require.NoError(t, err)
		assert.Equal(t, []Assignment{
			{Name: "x1", Value: numeric.ComplexFromInt(3)},
			{Name: "x2", Value: numeric.ComplexFromInt(2)},
		}, got)
	})

	t.Run("three by three exact", func(t *testing.T) {
		got, err := SolveSystemEquations([]string{"x + y + z = 6", "x - y + z = 2", "2x + y - z = 3"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, numeric.ComplexFromReal(numeric.MustRational(5, 3)), got[0].Value)
		assert.Equal(t, numeric.ComplexFromInt(2), got[1].Value)
		assert.Equal(t, numeric.ComplexFromReal(numeric.MustRational(7, 3)), got[2].Value)
		assert.Equal(t, "x3", got[2].Name)
	})

	t.Run("pivoting on zero leading entry", func(t *testing.T) {
		got, err := SolveSystem([][]numeric.Complex{ints(0, 1, 2), ints(1, 0, 3)})
		require.NoError(t, err)
		assert.Equal(t, numeric.ComplexFromInt(3), got[0].Value)
		assert.Equal(t, numeric.ComplexFromInt(2), got[1].Value)
	})

	t.Run("singular", func(t *testing.T) {
		_, err := SolveSystemEquations([]string{"x + y = 1", "2x + 2y = 2"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, solveerr.ErrSingular))
	})

	t.Run("unsupported size", func(t *testing.T) {
		_, err := SolveSystem([][]numeric.Complex{ints(1, 2)})
		assert.ErrorIs(t, err, solveerr.ErrUnsupportedSystem)
	})

	t.Run("ragged matrix", func(t *testing.T) {
		_, err := SolveSystem([][]numeric.Complex{ints(1, 1, 5), ints(1, -1)})
		assert.ErrorIs(t, err, solveerr.ErrInvalidCoefficientCount)
	})
}

func TestEquationVariants(t *testing.T) {
	roots, err := SolveLinearEquation("2x + 3 = 7")
	require.NoError(t, err)
	assert.Equal(t, ints(2), roots)

	roots, err = SolveQuadraticEquation("x² = 5x - 6")
	require.NoError(t, err)
	assert.Equal(t, ints(3, 2), roots)

	roots, err = SolveCubicEquation("x^3 - 6x^2 + 11x - 6 = 0")
	require.NoError(t, err)
	assertRoots(t, []float64{1, 2, 3}, roots, 1e-9)

	roots, err = SolveQuarticEquation("x⁴ − 10x³ + 35x² − 50x + 24 = 0")
	require.NoError(t, err)
	assertRoots(t, []float64{1, 2, 3, 4}, roots, 1e-6)

	res, err := SolveQuinticEquation("x^5 - 15x^4 + 85x^3 - 225x^2 + 274x = 120")
	require.NoError(t, err)
	assertRoots(t, []float64{1, 2, 3, 4, 5}, res.Roots, 1e-6)

	t.Run("parse failures carry context", func(t *testing.T) {
		_, err := SolveQuadraticEquation("x^2 + 3w = 0")
		assert.Equal(t, solveerr.ParseFailure, solveerr.KindOf(err))
		assert.Contains(t, err.Error(), "SolveQuadraticEquation")
		assert.Contains(t, err.Error(), `"3w"`)
	})

	t.Run("lower degree input leaves zero leading coefficient", func(t *testing.T) {
		_, err := SolveQuadraticEquation("x + 1 = 0")
		assert.ErrorIs(t, err, solveerr.ErrZeroLeadingCoefficient)
	})
}

func TestSolve(t *testing.T) {
	tests := []struct {
		input  string
		method Method
		names  []string
	}{
		{"2x + 3 = 7", MethodLinear, []string{"x"}},
		{"x^2 + 2x + 1 = 0", MethodQuadratic, []string{"x"}},
		{"x^2 - 5x + 6 = 0", MethodQuadratic, []string{"x1", "x2"}},
		{"x^3 - 6x^2 + 11x - 6 = 0", MethodCubic, []string{"x1", "x2", "x3"}},
		{"x^4 - 1 = 0", MethodQuartic, []string{"x1", "x2", "x3", "x4"}},
		{"x^5 - 15x^4 + 85x^3 - 225x^2 + 274x - 120 = 0", MethodDurandKerner, []string{"x1", "x2", "x3", "x4", "x5"}},
		{"x + y = 5, x - y = 1", MethodGaussian, []string{"x1", "x2"}},
		{"x + y + z = 6; x - y + z = 2; 2x + y - z = 3", MethodGaussian, []string{"x1", "x2", "x3"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sol, err := Solve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.method, sol.Method)
			assert.Equal(t, tt.names, sol.Names())
			assert.True(t, sol.Converged)
		})
	}

	t.Run("system values", func(t *testing.T) {
		sol, err := Solve("x + y = 5, x - y = 1")
		require.NoError(t, err)
		assert.Equal(t, ints(3, 2), sol.Values())
		assert.Equal(t, 2, sol.Degree)
	})

	t.Run("constant equations", func(t *testing.T) {
		_, err := Solve("4 = 4")
		assert.Equal(t, solveerr.InfiniteSolutions, solveerr.KindOf(err))
		_, err = Solve("4 = 5")
		assert.Equal(t, solveerr.NoSolution, solveerr.KindOf(err))
	})

	t.Run("degree above the cap", func(t *testing.T) {
		_, err := Solve("x^3000 + 3x^7 - 2x + 5 = 0")
		assert.ErrorIs(t, err, solveerr.ErrInvalidCoefficientCount)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Solve("x^2 + = 1")
		assert.Equal(t, solveerr.ParseFailure, solveerr.KindOf(err))
	})

	t.Run("method names", func(t *testing.T) {
		assert.Equal(t, "durand_kerner", MethodDurandKerner.String())
		assert.Equal(t, "unknown", Method(0).String())
	})
}

func TestSolvePolynomial(t *testing.T) {
	t.Run("closed form by degree", func(t *testing.T) {
		sol, err := SolvePolynomial(ints(1, -3), DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, MethodLinear, sol.Method)
		assert.Equal(t, 1, sol.Degree)
		assert.Equal(t, ints(3), sol.Values())
		assert.Equal(t, []string{"x"}, sol.Names())
	})

	t.Run("iterative beyond quartic honours options", func(t *testing.T) {
		sol, err := SolvePolynomial(ints(1, -15, 85, -225, 274, -120), Options{MaxIterations: 2, Tolerance: 1e-10})
		require.NoError(t, err)
		assert.Equal(t, MethodDurandKerner, sol.Method)
		assert.Equal(t, 2, sol.Iterations)
		assert.False(t, sol.Converged)
	})

	t.Run("too few coefficients", func(t *testing.T) {
		_, err := SolvePolynomial(ints(7), DefaultOptions())
		assert.ErrorIs(t, err, solveerr.ErrInvalidCoefficientCount)
	})
}
