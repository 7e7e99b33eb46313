// Package solver finds the roots of univariate polynomials and the solution
// of small linear systems over numeric.Complex.
//
// Algorithms by degree:
//   - 1 and 2: closed form, exact on exact input (square roots excepted)
//   - 3: Cardano, in float64 on the real parts of the coefficients
//   - 4: Ferrari, resolvent through the cubic solver
//   - 5 and up: Durand-Kerner simultaneous iteration, at most 100 sweeps
//   - 2×2 and 3×3 linear systems: Gaussian elimination with partial pivoting
//
// Every solver is a pure function. Failures are *solveerr.Error values.
//
// Example Usage:
//
//	roots, err := solver.SolveQuadratic([]numeric.Complex{
//		numeric.ComplexFromInt(1), numeric.ComplexFromInt(0), numeric.ComplexFromInt(1),
//	})
//	// [i, -i]
//
//	sol, err := solver.Solve("x + y = 5, x - y = 1")
//	// x1 = 3, x2 = 2
package solver
