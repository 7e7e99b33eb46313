package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
)

func c(re, im int64) Complex {
	return NewComplex(RationalFromInt(re), RationalFromInt(im))
}

func TestComplexArithmetic(t *testing.T) {
	a, b := c(3, 4), c(1, -2)

	assert.Equal(t, c(4, 2), a.Add(b))
	assert.Equal(t, c(2, 6), a.Sub(b))
	assert.Equal(t, c(11, -2), a.Mul(b))
	assert.Equal(t, c(-3, -4), a.Neg())
	assert.Equal(t, RationalFromInt(25), a.Norm())

	t.Run("division", func(t *testing.T) {
		q, err := a.Div(b)
		require.NoError(t, err)
		assert.Equal(t, NewComplex(RationalFromInt(-1), RationalFromInt(2)), q)
		assert.Equal(t, a, q.Mul(b))
	})

	t.Run("division by zero", func(t *testing.T) {
		_, err := a.Div(Complex{})
		assert.Equal(t, solveerr.DivisionByZero, solveerr.KindOf(err))
		_, err = Complex{}.Inverse()
		assert.Equal(t, solveerr.DivisionByZero, solveerr.KindOf(err))
	})

	t.Run("inverse", func(t *testing.T) {
		inv, err := ImaginaryUnit.Inverse()
		require.NoError(t, err)
		assert.Equal(t, c(0, -1), inv)
	})
}

func TestComplexPow(t *testing.T) {
	tests := []struct {
		name string
		z    Complex
		n    int
		want Complex
	}{
		{"zero exponent", c(5, 7), 0, c(1, 0)},
		{"square", c(1, 1), 2, c(0, 2)},
		{"i to the fourth", ImaginaryUnit, 4, c(1, 0)},
		{"cube", c(2, 0), 3, c(8, 0)},
		{"negative exponent", c(2, 0), -2, ComplexFromReal(MustRational(1, 4))},
		{"negative exponent of i", ImaginaryUnit, -1, c(0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.z.Pow(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("zero to negative power", func(t *testing.T) {
		_, err := Complex{}.Pow(-3)
		assert.Error(t, err)
	})
}

func TestComplexSqrt(t *testing.T) {
	tests := []struct {
		name string
		z    Complex
		want Complex
	}{
		{"zero", c(0, 0), c(0, 0)},
		{"positive real", c(9, 0), c(3, 0)},
		{"negative real", c(-4, 0), c(0, 2)},
		{"first quadrant", c(3, 4), c(2, 1)},
		{"negative imaginary", c(-3, -4), c(1, -2)},
		{"pure imaginary", c(0, 2), c(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.z.Sqrt())
		})
	}

	t.Run("negative reals give positive imaginary roots", func(t *testing.T) {
		for _, x := range []Rational{RationalFromInt(2), MustRational(1, 3), RationalFromInt(7)} {
			root := ComplexFromReal(x.Neg()).Sqrt()
			assert.True(t, root.Re.IsZero())
			assert.Equal(t, 1, root.Im.Sign())
			assert.InDelta(t, -x.Float64(), root.Mul(root).Re.Float64(), 1e-6)
		}
	})

	t.Run("general value squares back", func(t *testing.T) {
		z := NewComplex(MustRational(-5, 3), MustRational(7, 2))
		root := z.Sqrt()
		sq := root.Mul(root)
		assert.GreaterOrEqual(t, root.Re.Sign(), 0)
		assert.InDelta(t, z.Re.Float64(), sq.Re.Float64(), 1e-3)
		assert.InDelta(t, z.Im.Float64(), sq.Im.Float64(), 1e-3)
	})
}

func TestComplexTrig(t *testing.T) {
	t.Run("real arguments", func(t *testing.T) {
		assert.Equal(t, c(0, 0), c(0, 0).Sin())
		assert.Equal(t, c(1, 0), c(0, 0).Cos())
	})

	t.Run("imaginary argument", func(t *testing.T) {
		s := c(0, 1).Sin()
		assert.True(t, s.Re.IsZero())
		assert.InDelta(t, math.Sinh(1), s.Im.Float64(), 1e-6)

		co := c(0, 1).Cos()
		assert.True(t, co.Im.IsZero())
		assert.InDelta(t, math.Cosh(1), co.Re.Float64(), 1e-6)
	})

	t.Run("general argument", func(t *testing.T) {
		z := NewComplex(Half, One)
		want := cmplxSin(0.5, 1)
		got := z.Sin()
		assert.InDelta(t, real(want), got.Re.Float64(), 1e-4)
		assert.InDelta(t, imag(want), got.Im.Float64(), 1e-4)
	})

	t.Run("degrees", func(t *testing.T) {
		assert.Equal(t, ComplexFromReal(Half), c(30, 0).SinDegrees())
		assert.Equal(t, ComplexFromReal(Half), c(60, 0).CosDegrees())
		assert.Equal(t, c(1, 0), c(90, 0).SinDegrees())
		assert.Equal(t, c(0, 0), c(90, 0).CosDegrees())
	})
}

func cmplxSin(a, b float64) complex128 {
	return complex(math.Sin(a)*math.Cosh(b), math.Cos(a)*math.Sinh(b))
}

func TestComplexAbs(t *testing.T) {
	assert.Equal(t, RationalFromInt(5), c(3, 4).Abs())
	assert.Equal(t, RationalFromInt(2), c(-2, 0).Abs())
	assert.Equal(t, RationalFromInt(7), c(0, -7).Abs())
}

func TestComplexString(t *testing.T) {
	tests := []struct {
		z    Complex
		want string
	}{
		{c(5, 0), "5"},
		{c(0, 1), "i"},
		{c(0, -1), "-i"},
		{c(0, 3), "3i"},
		{c(3, 4), "3 + 4i"},
		{c(3, -4), "3 - 4i"},
		{c(-1, 1), "-1 + i"},
		{c(2, -1), "2 - i"},
		{NewComplex(MustRational(3, 4), MustRational(-1, 2)), "3/4 - 1/2i"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.z.String())
	}
}

func TestComplexConversions(t *testing.T) {
	assert.Equal(t, complex(0.5, -2), NewComplex(Half, RationalFromInt(-2)).Complex128())
	assert.Equal(t, NewComplex(MustRational(1, 4), MustRational(-3, 4)), ComplexFrom128(complex(0.25, -0.75)))
	assert.True(t, ComplexFromFloat(2.5).IsReal())
}
