package math

import (
	"context"
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/polysolve/internal/equation"
	"github.com/GriffinCanCode/polysolve/internal/format"
	"github.com/GriffinCanCode/polysolve/internal/numeric"
	"github.com/GriffinCanCode/polysolve/internal/shared/solveerr"
	"github.com/GriffinCanCode/polysolve/internal/shared/utils"
	"github.com/GriffinCanCode/polysolve/internal/solver"
	"github.com/GriffinCanCode/polysolve/internal/types"
)

// SolveOps handles polynomial and linear system solving
type SolveOps struct {
	*MathOps
}

var coefficientsParam = types.Parameter{
	Name:        "coefficients",
	Type:        "array",
	Description: "Coefficients, highest degree first. Each is a number, a rational string such as \"3/4\", or {\"re\", \"im\"}",
	Required:    true,
}

// GetTools returns solver tool definitions
func (s *SolveOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.solve.linear",
			Name:        "Solve Linear",
			Description: "Solve ax + b = 0 exactly",
			Parameters:  []types.Parameter{coefficientsParam},
			Returns:     "object",
		},
		{
			ID:          "math.solve.quadratic",
			Name:        "Solve Quadratic",
			Description: "Solve ax^2 + bx + c = 0; a double root is returned once",
			Parameters:  []types.Parameter{coefficientsParam},
			Returns:     "object",
		},
		{
			ID:          "math.solve.cubic",
			Name:        "Solve Cubic",
			Description: "Solve a cubic equation with Cardano's method",
			Parameters:  []types.Parameter{coefficientsParam},
			Returns:     "object",
		},
		{
			ID:          "math.solve.quartic",
			Name:        "Solve Quartic",
			Description: "Solve a quartic equation with Ferrari's method",
			Parameters:  []types.Parameter{coefficientsParam},
			Returns:     "object",
		},
		{
			ID:          "math.solve.polynomial",
			Name:        "Solve Polynomial",
			Description: "Find all roots of a polynomial of any degree; Durand-Kerner iteration beyond degree four",
			Parameters: []types.Parameter{
				coefficientsParam,
				{Name: "max_iterations", Type: "number", Description: "Durand-Kerner sweep limit (default 100, at most 10000)", Required: false},
				{Name: "tolerance", Type: "number", Description: "Durand-Kerner convergence bound (default 1e-10)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "math.solve.equation",
			Name:        "Solve Equation",
			Description: "Solve equation text such as \"x^2 - 5x + 6 = 0\", or a comma separated linear system",
			Parameters: []types.Parameter{
				{Name: "equation", Type: "string", Description: "Equation or system text", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "math.solve.system",
			Name:        "Solve Linear System",
			Description: "Solve a 2x2 or 3x3 linear system by Gaussian elimination with condition diagnostics",
			Parameters: []types.Parameter{
				{Name: "equations", Type: "array", Description: "Equations in x, y, z (or x1, x2, x3)", Required: false},
				{Name: "matrix", Type: "array", Description: "Augmented matrix rows, used when equations is absent", Required: false},
			},
			Returns: "object",
		},
	}
}

// Linear solves a degree one polynomial
func (s *SolveOps) Linear(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.closedForm(solver.MethodLinear, solver.SolveLinear, params, appCtx)
}

// Quadratic solves a degree two polynomial
func (s *SolveOps) Quadratic(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.closedForm(solver.MethodQuadratic, solver.SolveQuadratic, params, appCtx)
}

// Cubic solves a degree three polynomial
func (s *SolveOps) Cubic(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.closedForm(solver.MethodCubic, solver.SolveCubic, params, appCtx)
}

// Quartic solves a degree four polynomial
func (s *SolveOps) Quartic(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.closedForm(solver.MethodQuartic, solver.SolveQuartic, params, appCtx)
}

// Polynomial solves a polynomial of any degree
func (s *SolveOps) Polynomial(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	coeffs, err := s.coefficients(params)
	if err != nil {
		return Failure(err.Error())
	}

	opts := solver.DefaultOptions()
	if _, present := params["max_iterations"]; present {
		n, ok := GetInt(params, "max_iterations")
		if !ok || n < 1 || n > utils.MaxIterations {
			return Failure(fmt.Sprintf("max_iterations must be an integer from 1 to %d", utils.MaxIterations))
		}
		opts.MaxIterations = n
	}
	if _, present := params["tolerance"]; present {
		tol, ok := GetNumber(params, "tolerance")
		if !ok || !(tol > 0) || gomath.IsInf(tol, 0) {
			return Failure("tolerance must be a positive number")
		}
		opts.Tolerance = tol
	}

	start := time.Now()
	sol, err := solver.SolvePolynomial(coeffs, opts)
	return s.finish(appCtx, sol, err, start)
}

// Equation parses and solves equation text
func (s *SolveOps) Equation(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	eq, ok := GetString(params, "equation")
	if !ok {
		return Failure("equation parameter required")
	}
	if err := utils.ValidateEquation(eq, "equation"); err != nil {
		return Failure(err.Error())
	}

	if equation.IsSystem(eq) {
		return s.systemFromEquations(equation.SplitSystem(eq), appCtx)
	}

	start := time.Now()
	sol, err := solver.Solve(eq)
	return s.finish(appCtx, sol, err, start)
}

// System solves a 2x2 or 3x3 linear system
func (s *SolveOps) System(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if eqs, ok := GetStrings(params, "equations"); ok {
		for _, eq := range eqs {
			if err := utils.ValidateEquation(eq, "equations"); err != nil {
				return Failure(err.Error())
			}
		}
		return s.systemFromEquations(eqs, appCtx)
	}

	if _, ok := params["matrix"]; !ok {
		return Failure("equations or matrix parameter required")
	}
	matrix, err := GetMatrix(params, "matrix")
	if err != nil {
		return Failure(err.Error())
	}
	return s.systemFromMatrix(matrix, appCtx)
}

func (s *SolveOps) coefficients(params map[string]interface{}) ([]numeric.Complex, error) {
	coeffs, err := GetCoefficients(params, "coefficients")
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateCoefficientCount(len(coeffs), "coefficients"); err != nil {
		return nil, err
	}
	return coeffs, nil
}

func (s *SolveOps) closedForm(method solver.Method, fn func([]numeric.Complex) ([]numeric.Complex, error), params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	coeffs, err := s.coefficients(params)
	if err != nil {
		return Failure(err.Error())
	}

	start := time.Now()
	roots, err := fn(coeffs)
	var sol *solver.Solution
	if err == nil {
		sol = &solver.Solution{
			Method:      method,
			Degree:      len(coeffs) - 1,
			Assignments: solver.Assign(roots, false),
			Converged:   true,
		}
	} else {
		sol = &solver.Solution{Method: method}
	}
	return s.finish(appCtx, sol, err, start)
}

func (s *SolveOps) systemFromEquations(eqs []string, appCtx *types.Context) (*types.Result, error) {
	matrix, err := equation.AugmentedMatrix(eqs)
	if err != nil {
		s.Metrics.RecordSolve(solver.MethodGaussian.String(), solveerr.KindOf(err).String(), 0)
		return FailureFrom(err)
	}
	return s.systemFromMatrix(matrix, appCtx)
}

func (s *SolveOps) systemFromMatrix(matrix [][]numeric.Complex, appCtx *types.Context) (*types.Result, error) {
	original := cloneMatrix(matrix)

	start := time.Now()
	assignments, err := solver.SolveSystem(matrix)
	sol := &solver.Solution{Method: solver.MethodGaussian, Degree: len(original), Assignments: assignments, Converged: true}
	result, _ := s.finish(appCtx, sol, err, start)
	if err != nil {
		return result, nil
	}

	if d, ok := Diagnose(original, sol.Values(), s.ConditionWarn); ok {
		result.Data["diagnostics"] = d.data()
		if !gomath.IsInf(d.Condition, 0) {
			s.Metrics.RecordCondition(d.Condition, d.IllConditioned)
		}
		if d.IllConditioned {
			s.loggerFor(appCtx).Warn("ill-conditioned system",
				zap.Float64("condition", d.Condition),
				zap.Float64("residual", d.Residual))
		}
	}
	return result, nil
}

// finish records metrics and renders sol. sol may be nil when err is set.
func (s *SolveOps) finish(appCtx *types.Context, sol *solver.Solution, err error, start time.Time) (*types.Result, error) {
	method := solver.Method(0)
	if sol != nil {
		method = sol.Method
	}
	kind := ""
	if err != nil {
		kind = solveerr.KindOf(err).String()
	}
	s.Metrics.RecordSolve(method.String(), kind, time.Since(start))
	if err != nil {
		return FailureFrom(err)
	}

	if sol.Method == solver.MethodDurandKerner {
		s.Metrics.RecordIterations(sol.Iterations, sol.Converged)
		if !sol.Converged {
			s.loggerFor(appCtx).Warn("durand-kerner did not converge",
				zap.Int("degree", sol.Degree),
				zap.Int("iterations", sol.Iterations))
		}
	}
	return Success(solutionData(s.styleFor(appCtx), sol))
}

func solutionData(style format.Style, sol *solver.Solution) map[string]interface{} {
	names, values := sol.Names(), sol.Values()
	data := map[string]interface{}{
		"method":    sol.Method.String(),
		"degree":    sol.Degree,
		"roots":     encodeRoots(style, names, values),
		"formatted": style.Roots(names, values),
		"style":     style.String(),
	}
	if sol.Method == solver.MethodDurandKerner {
		data["converged"] = sol.Converged
		data["iterations"] = sol.Iterations
	}
	return data
}
