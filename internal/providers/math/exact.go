package math

import (
	"context"

	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/types"
)

// ExactOps handles exact rational and complex arithmetic
type ExactOps struct {
	*MathOps
}

var (
	operandA = types.Parameter{Name: "a", Type: "value", Description: "Number, rational string or {\"re\", \"im\"}", Required: true}
	operandB = types.Parameter{Name: "b", Type: "value", Description: "Number, rational string or {\"re\", \"im\"}", Required: true}
)

// GetTools returns exact arithmetic tool definitions
func (e *ExactOps) GetTools() []types.Tool {
	unary := func(id, name, desc string) types.Tool {
		return types.Tool{ID: id, Name: name, Description: desc, Parameters: []types.Parameter{operandA}, Returns: "object"}
	}
	binary := func(id, name, desc string) types.Tool {
		return types.Tool{ID: id, Name: name, Description: desc, Parameters: []types.Parameter{operandA, operandB}, Returns: "object"}
	}

	return []types.Tool{
		binary("math.exact.add", "Add", "Exact sum a + b"),
		binary("math.exact.subtract", "Subtract", "Exact difference a - b"),
		binary("math.exact.multiply", "Multiply", "Exact product a * b"),
		binary("math.exact.divide", "Divide", "Exact quotient a / b"),
		{
			ID:          "math.exact.power",
			Name:        "Power",
			Description: "Exact integer power a^n",
			Parameters: []types.Parameter{
				operandA,
				{Name: "n", Type: "number", Description: "Integer exponent, may be negative", Required: true},
			},
			Returns: "object",
		},
		unary("math.exact.sqrt", "Square Root", "Principal square root; exact for perfect squares"),
		unary("math.exact.abs", "Absolute Value", "Modulus |a|"),
		unary("math.exact.sin", "Sine", "Sine of a in radians"),
		unary("math.exact.cos", "Cosine", "Cosine of a in radians"),
		unary("math.exact.sind", "Sine (degrees)", "Sine with the real part of a in degrees"),
		unary("math.exact.cosd", "Cosine (degrees)", "Cosine with the real part of a in degrees"),
	}
}

// Add returns a + b
func (e *ExactOps) Add(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return e.binary(params, appCtx, checked(numeric.Complex.AddExact))
}

// Subtract returns a - b
func (e *ExactOps) Subtract(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return e.binary(params, appCtx, checked(numeric.Complex.SubExact))
}

// Multiply returns a * b
func (e *ExactOps) Multiply(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return e.binary(params, appCtx, checked(numeric.Complex.MulExact))
}

// Divide returns a / b
func (e *ExactOps) Divide(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return e.binary(params, appCtx, numeric.Complex.DivExact)
}

// Power returns a^n
func (e *ExactOps) Power(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	a, err := GetComplex(params, "a")
	if err != nil {
		return Failure(err.Error())
	}
	n, ok := GetInt(params, "n")
	if !ok {
		return Failure("n must be an integer")
	}
	z, exact, err := a.PowExact(n)
	if err != nil {
		return FailureFrom(err)
	}
	return e.value(z, appCtx, exact)
}

// Sqrt returns the principal square root of a
func (e *ExactOps) Sqrt(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	a, err := GetComplex(params, "a")
	if err != nil {
		return Failure(err.Error())
	}
	if a.IsReal() {
		if root, ok := a.Re.Abs().SqrtExact(); ok {
			if a.Re.Sign() < 0 {
				return e.value(numeric.NewComplex(numeric.Zero, root), appCtx, true)
			}
			return e.value(numeric.ComplexFromReal(root), appCtx, true)
		}
	}
	return e.value(a.Sqrt(), appCtx, false)
}

// Abs returns |a|
func (e *ExactOps) Abs(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	a, err := GetComplex(params, "a")
	if err != nil {
		return Failure(err.Error())
	}
	if a.Im.IsZero() || a.Re.IsZero() {
		return e.value(numeric.ComplexFromReal(a.Abs()), appCtx, true)
	}
	if root, ok := a.Norm().SqrtExact(); ok {
		return e.value(numeric.ComplexFromReal(root), appCtx, true)
	}
	return e.value(numeric.ComplexFromReal(a.Abs()), appCtx, false)
}

// Sin returns sin(a)
func (e *ExactOps) Sin(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return e.unary(params, appCtx, numeric.Complex.Sin)
}

// Cos returns cos(a)
func (e *ExactOps) Cos(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return e.unary(params, appCtx, numeric.Complex.Cos)
}

// SinDegrees returns sin(a) with a in degrees
func (e *ExactOps) SinDegrees(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return e.unary(params, appCtx, numeric.Complex.SinDegrees)
}

// CosDegrees returns cos(a) with a in degrees
func (e *ExactOps) CosDegrees(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return e.unary(params, appCtx, numeric.Complex.CosDegrees)
}

// checked adapts an infallible exact operation to the binary signature
func checked(op func(a, b numeric.Complex) (numeric.Complex, bool)) func(a, b numeric.Complex) (numeric.Complex, bool, error) {
	return func(a, b numeric.Complex) (numeric.Complex, bool, error) {
		z, exact := op(a, b)
		return z, exact, nil
	}
}

func (e *ExactOps) binary(params map[string]interface{}, appCtx *types.Context, op func(a, b numeric.Complex) (numeric.Complex, bool, error)) (*types.Result, error) {
	a, err := GetComplex(params, "a")
	if err != nil {
		return Failure(err.Error())
	}
	b, err := GetComplex(params, "b")
	if err != nil {
		return Failure(err.Error())
	}
	z, exact, err := op(a, b)
	if err != nil {
		return FailureFrom(err)
	}
	return e.value(z, appCtx, exact)
}

func (e *ExactOps) unary(params map[string]interface{}, appCtx *types.Context, op func(numeric.Complex) numeric.Complex) (*types.Result, error) {
	a, err := GetComplex(params, "a")
	if err != nil {
		return Failure(err.Error())
	}
	return e.value(op(a), appCtx, false)
}

// value renders z; exact reports whether no float approximation or 64-bit
// overflow was involved
func (e *ExactOps) value(z numeric.Complex, appCtx *types.Context, exact bool) (*types.Result, error) {
	data := encodeComplex(e.styleFor(appCtx), z)
	data["is_exact"] = exact
	return Success(map[string]interface{}{"result": data})
}
