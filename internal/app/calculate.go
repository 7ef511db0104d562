package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/numkit/internal/cli"
	"github.com/agbru/numkit/internal/config"
	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/metrics"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/ui"
)

// structuredOutput reports whether stdout carries a machine-readable
// record, in which case banners and progress are suppressed.
func (a *Application) structuredOutput() bool {
	return a.Config.Quiet || (a.Config.Format != "" && a.Config.Format != config.FormatText)
}

// runCalculate computes F(n) with the selected calculators and compares
// their results.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	opts := a.Config.ToCalculationOptions()
	calculators := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)

	var skipped []fibonacci.Calculator
	if a.Config.Algo == config.AlgoAll {
		calculators, skipped = orchestration.FilterSupported(calculators, a.Config.N, opts)
	}

	quiet := a.structuredOutput()
	if !quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintSkipped(skipped, a.Config.N, opts, out)
		cli.PrintExecutionMode(calculators, out)
	}
	if len(calculators) == 0 {
		err := apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("no registered algorithm supports n=%d", a.Config.N)}
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ErrorColors{})
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if quiet {
		reporter, progressOut = orchestration.NullProgressReporter{}, io.Discard
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	results := orchestration.ExecuteCalculations(ctx, calculators, a.Config.N, opts, reporter, progressOut, a.runOptions()...)
	orchestration.TagTimeouts(results, a.Config.Timeout)

	if quiet {
		return a.presentStructured(results, out)
	}

	presOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
	presenter := cli.CLIResultPresenter{}
	code := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)
	if code == apperrors.ExitErrorMismatch {
		a.Metrics.IncMismatch()
		a.Logger.Error("result mismatch", nil, logging.Uint64("n", a.Config.N))
	}
	if code != apperrors.ExitSuccess {
		return code
	}

	if a.Config.Details {
		after := mem.Snapshot()
		cli.DisplayMemoryStats(after, after.Since(before), out)
	}

	// AnalyzeComparisonResults sorted results: the first one is the fastest success.
	best := results[0]
	cfg := a.outputConfig()
	if err := cli.WriteResultToFile(best.Result, a.Config.N, best.Duration, best.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if cfg.OutputFile != "" {
		fmt.Fprintf(out, "\n%s %s\n", ui.Colorize(ui.ColorGreen(), "✓ Result saved to:"), ui.Colorize(ui.ColorCyan(), cfg.OutputFile))
	}
	return apperrors.ExitSuccess
}

// presentStructured prints only the value (quiet) or an encoded record.
// Errors go to ErrWriter so stdout stays parseable.
func (a *Application) presentStructured(results []orchestration.CalculationResult, out io.Writer) int {
	orchestration.SortResults(results)
	best, err := orchestration.CompareResults(a.Config.N, results)
	if err != nil {
		a.Metrics.IncMismatch()
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ErrorColors{})
	}
	if best == nil {
		first := orchestration.FirstError(results)
		return apperrors.HandleCalculationError(first, results[0].Duration, a.ErrWriter, ui.ErrorColors{})
	}

	if err := cli.DisplayResultWithConfig(out, best.Result, a.Config.N, best.Duration, best.Name, a.Config.Details, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
