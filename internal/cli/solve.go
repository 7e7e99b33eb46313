package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/polysolve/internal/format"
	"github.com/GriffinCanCode/polysolve/internal/shared/utils"
	"github.com/GriffinCanCode/polysolve/internal/solver"
)

func newSolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <equation>",
		Short: "Solve one equation or system and print the roots",
		Long: `Solve parses an equation in x, or a linear system in x, y and z
separated by commas, and prints one solution per line.

Example:
  polysolve solve "x^2 - 5x + 6 = 0"
  polysolve solve "x^2 + 1 = 0" --format unicode
  polysolve solve "x + y = 5, x - y = 1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSolve,
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	raw := outStyle
	if raw == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		raw = cfg.Solver.Format
	}
	style, err := format.ParseStyle(raw)
	if err != nil {
		return err
	}
	return solveTo(cmd.OutOrStdout(), strings.Join(args, " "), style)
}

func solveTo(w io.Writer, input string, style format.Style) error {
	if err := utils.ValidateEquation(input, "equation"); err != nil {
		return err
	}

	sol, err := solver.Solve(input)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, style.Roots(sol.Names(), sol.Values())); err != nil {
		return err
	}
	if sol.Method == solver.MethodDurandKerner && !sol.Converged {
		_, err = fmt.Fprintf(w, "warning: durand-kerner did not converge after %d iterations\n", sol.Iterations)
	}
	return err
}
