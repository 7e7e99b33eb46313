// Package math exposes the polynomial and linear system solvers and the
// exact rational/complex arithmetic as service tools.
//
// Tools:
//   - math.solve.{linear,quadratic,cubic,quartic}: closed forms on a coefficient vector
//   - math.solve.polynomial: any degree, Durand-Kerner beyond four, tunable iteration
//   - math.solve.equation: equation text, or a comma separated linear system
//   - math.solve.system: 2x2 or 3x3 from equations or an augmented matrix,
//     with condition number and residual diagnostics computed by gonum
//   - math.exact.*: add, subtract, multiply, divide, power, sqrt, abs, sin, cos, sind, cosd
//
// Values are accepted as JSON numbers, rational strings ("3/4") or
// {"re": ..., "im": ...} objects. Failures are returned as unsuccessful
// results carrying data.kind, never as Go errors.
//
// Successful results are memoized in a go-cache keyed by tool, output style
// and params.
//
// Example Usage:
//
//	provider := math.NewProvider(math.DefaultOptions())
//	result, err := provider.Execute(ctx, "math.solve.quadratic", map[string]interface{}{
//		"coefficients": []interface{}{1.0, -5.0, 6.0},
//	}, nil)
package math
