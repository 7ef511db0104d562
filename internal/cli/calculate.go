package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/numkit/internal/config"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/ui"
)

// PrintExecutionConfig shows the target index, timeout and runtime
// environment before a Fibonacci run.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %s with a timeout of %s.\n",
		ui.Colorize(ui.ColorMagenta(), fmt.Sprintf("F(%d)", cfg.N)),
		ui.Colorize(ui.ColorYellow(), cfg.Timeout.String()))
	fmt.Fprintf(out, "Environment: %s logical processors, Go %s.\n",
		ui.Colorize(ui.ColorCyan(), fmt.Sprint(runtime.NumCPU())),
		ui.Colorize(ui.ColorCyan(), runtime.Version()))
	fmt.Fprintf(out, "Recursive limit: %s.\n", ui.Colorize(ui.ColorCyan(), fmt.Sprint(cfg.MaxRecursive)))
}

// PrintExecutionMode says whether one algorithm runs or several are compared.
func PrintExecutionMode(calculators []fibonacci.Calculator, out io.Writer) {
	var modeDesc string
	switch len(calculators) {
	case 0:
		modeDesc = "no algorithm supports this index"
	case 1:
		modeDesc = fmt.Sprintf("Single calculation with the %s algorithm",
			ui.Colorize(ui.ColorGreen(), calculators[0].Name()))
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d algorithms", len(calculators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// PrintSkipped lists calculators left out because n is outside their domain.
func PrintSkipped(skipped []fibonacci.Calculator, n uint64, opts fibonacci.Options, out io.Writer) {
	for _, c := range skipped {
		limit := "?"
		if b, ok := c.(fibonacci.Bounded); ok {
			limit = fmt.Sprint(b.MaxIndex(opts))
		}
		fmt.Fprintf(out, "%s\n", ui.Colorize(ui.ColorYellow(),
			fmt.Sprintf("Skipping %s: F(%d) is beyond its limit of %s.", c.Name(), n, limit)))
	}
}
