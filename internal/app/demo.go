package app

import (
	"context"
	"fmt"
	"io"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/ui"
)

// Inputs of the demonstration sequence.
const (
	demoParityValue int64  = 2000000000
	demoFibIndex    uint64 = 5
	demoText               = "Envelope"
)

// runDemo prints, one per line: the parity of 2000000000, F(5) by the
// recursive and iterative calculators, and the length of "Envelope".
func (a *Application) runDemo(ctx context.Context, out io.Writer) int {
	parity := orchestration.RunParity(ctx, demoParityValue, a.runOptions()...)
	fmt.Fprintln(out, parity.Even)

	calculators := make([]fibonacci.Calculator, 0, 2)
	for _, name := range []string{"recursive", "iterative"} {
		calc, err := a.Factory.Get(name)
		if err != nil {
			return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ErrorColors{})
		}
		calculators = append(calculators, calc)
	}
	results := orchestration.ExecuteCalculations(ctx, calculators, demoFibIndex, a.Config.ToCalculationOptions(),
		orchestration.NullProgressReporter{}, io.Discard, a.runOptions()...)
	orchestration.TagTimeouts(results, a.Config.Timeout)
	for _, res := range results {
		if res.Err != nil {
			return apperrors.HandleCalculationError(res.Err, res.Duration, a.ErrWriter, ui.ErrorColors{})
		}
		fmt.Fprintln(out, res.Result)
	}
	if _, err := orchestration.CompareResults(demoFibIndex, results); err != nil {
		a.Metrics.IncMismatch()
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ErrorColors{})
	}

	length := orchestration.RunStringLength(ctx, demoText, a.runOptions()...)
	fmt.Fprintf(out, "Length of the string is %d\n", length.Length)
	return apperrors.ExitSuccess
}
