package cli

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/format"
	"github.com/agbru/numkit/internal/metrics"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/ui"
)

// CLIProgressReporter renders calculator progress with a spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter prints comparison tables, results and errors for
// terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per calculator. Padding is computed
// on the raw text so ANSI codes do not skew the columns.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durWidth := len("Algorithm"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durWidth = max(durWidth, len(tableDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%s%s   %s   %s\n",
		ui.Colorize(ui.ColorUnderline(), "Algorithm"), padRight("", nameWidth-len("Algorithm")),
		ui.Colorize(ui.ColorUnderline(), "Duration")+padRight("", durWidth-len("Duration")),
		ui.Colorize(ui.ColorUnderline(), "Status"))

	for _, res := range results {
		status := ui.Colorize(ui.ColorGreen(), "✅ Success")
		if res.Err != nil {
			status = ui.Colorize(ui.ColorRed(), fmt.Sprintf("❌ Failure (%v)", res.Err))
		}
		d := tableDuration(res.Duration)
		fmt.Fprintf(out, "%s%s   %s%s   %s\n",
			ui.Colorize(ui.ColorBlue(), res.Name), padRight("", nameWidth-len(res.Name)),
			ui.Colorize(ui.ColorYellow(), d), padRight("", durWidth-len(d)),
			status)
	}
}

func tableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, n uint64, verbose, details, showValue bool, out io.Writer) {
	DisplayResult(result.Result, n, result.Duration, verbose, details, showValue, out)
}

func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, ui.ErrorColors{})
}

// DisplayResult prints the size of F(n) and, depending on the flags, timing
// details and the value itself. Values longer than TruncationLimit digits
// are shortened unless verbose is set.
func DisplayResult(result *big.Int, n uint64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	if result == nil {
		return
	}
	fmt.Fprintf(out, "Result binary size: %s bits.\n",
		ui.Colorize(ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(result.BitLen()))))

	s := result.String()
	if details {
		parity := "odd"
		if result.Bit(0) == 0 {
			parity = "even"
		}
		fmt.Fprintf(out, "\n--- Detailed result analysis ---\n")
		fmt.Fprintf(out, "Calculation time:  %s\n", ui.Colorize(ui.ColorYellow(), format.FormatExecutionDuration(duration)))
		fmt.Fprintf(out, "Number of digits:  %s\n", ui.Colorize(ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(len(s)))))
		fmt.Fprintf(out, "Parity of F(%d):   %s\n", n, parity)
	}

	if !showValue {
		fmt.Fprintf(out, "%s\n", ui.Colorize(ui.ColorDim(), "Tip: use -c to display the calculated value."))
		return
	}

	fmt.Fprintf(out, "\n--- Calculated value ---\n")
	if verbose || len(s) <= TruncationLimit {
		fmt.Fprintf(out, "F(%d) = %s\n", n, ui.Colorize(ui.ColorGreen(), format.FormatNumberString(s)))
		return
	}
	fmt.Fprintf(out, "F(%d) (truncated) = %s\n", n, ui.Colorize(ui.ColorGreen(), format.TruncateDigits(s, DisplayEdges)))
	fmt.Fprintf(out, "%s\n", ui.Colorize(ui.ColorDim(), "Tip: use -v to display the full value."))
}

// DisplayOperationResult prints the outcome of a parity or length run.
func DisplayOperationResult(res orchestration.OperationResult, details bool, out io.Writer) {
	switch res.Op {
	case orchestration.OpEven:
		verdict := ui.Colorize(ui.ColorYellow(), "odd")
		if res.Even {
			verdict = ui.Colorize(ui.ColorGreen(), "even")
		}
		fmt.Fprintf(out, "%s is %s\n", res.Input, verdict)
	case orchestration.OpLen:
		fmt.Fprintf(out, "Length of %q: %s scalars\n", res.Input,
			ui.Colorize(ui.ColorCyan(), strconv.Itoa(res.Length)))
		if details {
			fmt.Fprintf(out, "\n--- Text analysis ---\n")
			fmt.Fprintf(out, "Bytes:           %d\n", res.Stats.Bytes)
			fmt.Fprintf(out, "Scalars:         %d\n", res.Stats.Scalars)
			fmt.Fprintf(out, "Graphemes:       %d\n", res.Stats.Graphemes)
			fmt.Fprintf(out, "Display width:   %d\n", res.Stats.Width)
			fmt.Fprintf(out, "Valid UTF-8:     %t\n", res.Stats.Valid)
		}
	default:
		return
	}
	if details {
		fmt.Fprintf(out, "Duration:        %s\n", format.FormatExecutionDuration(res.Duration))
	}
}

// DisplayMemoryStats prints allocation figures gathered around a run.
func DisplayMemoryStats(after metrics.MemorySnapshot, delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
}
