package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/format"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/ui"
)

// REPLConfig holds configuration for an interactive session.
type REPLConfig struct {
	// DefaultAlgo is the calculator used by fib; "all" or empty picks the
	// first registered name.
	DefaultAlgo string
	// Timeout bounds each command.
	Timeout time.Duration
	Options fibonacci.Options
	// HexOutput prints Fibonacci values in base 16.
	HexOutput bool
	// Reporter renders progress for fib; nil means CLIProgressReporter.
	Reporter orchestration.ProgressReporter
	// RunOptions are forwarded to orchestration (metrics, logger, tracer).
	RunOptions []orchestration.Option
}

// REPL is an interactive prompt over the numeric utilities.
type REPL struct {
	config      REPLConfig
	factory     fibonacci.CalculatorFactory
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session reading from stdin and writing to stdout.
func NewREPL(factory fibonacci.CalculatorFactory, config REPLConfig) *REPL {
	currentAlgo := strings.ToLower(config.DefaultAlgo)
	if _, err := factory.Get(currentAlgo); err != nil {
		if names := factory.List(); len(names) > 0 {
			currentAlgo = names[0]
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	if config.Reporter == nil {
		config.Reporter = CLIProgressReporter{}
	}
	return &REPL{
		config:      config,
		factory:     factory,
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

func (r *REPL) SetInput(in io.Reader)   { r.in = in }
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start runs the loop until exit, EOF or ctx cancellation.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		fmt.Fprint(r.out, ui.Colorize(ui.ColorGreen(), "numkit> "))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorRed(), "Read error: "+err.Error()))
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	line := strings.Repeat("═", 50)
	fmt.Fprintf(r.out, "\n%s\n", ui.Colorize(ui.ColorCyan(), "╔"+line+"╗"))
	fmt.Fprintf(r.out, "%s   %-46s %s\n", ui.Colorize(ui.ColorCyan(), "║"),
		ui.Colorize(ui.ColorBold(), "numkit - Interactive Mode"), ui.Colorize(ui.ColorCyan(), "║"))
	fmt.Fprintf(r.out, "%s\n\n", ui.Colorize(ui.ColorCyan(), "╚"+line+"╝"))
}

func (r *REPL) printHelp() {
	cmd := func(s string) string { return ui.Colorize(ui.ColorYellow(), s) }
	fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorBold(), "Available commands:"))
	fmt.Fprintf(r.out, "  %s      - Calculate F(n) with the current algorithm\n", cmd("fib <n>"))
	fmt.Fprintf(r.out, "  %s     - Test whether n is even\n", cmd("even <n>"))
	fmt.Fprintf(r.out, "  %s   - Count the characters of text\n", cmd("len <text>"))
	fmt.Fprintf(r.out, "  %s  - Change algorithm (%s)\n", cmd("algo <name>"), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %s  - Compare all algorithms for F(n)\n", cmd("compare <n>"))
	fmt.Fprintf(r.out, "  %s         - List available algorithms\n", cmd("list"))
	fmt.Fprintf(r.out, "  %s          - Toggle hexadecimal display\n", cmd("hex"))
	fmt.Fprintf(r.out, "  %s       - Display current configuration\n", cmd("status"))
	fmt.Fprintf(r.out, "  %s         - Display this help\n", cmd("help"))
	fmt.Fprintf(r.out, "  %s / %s  - Exit interactive mode\n", cmd("exit"), cmd("quit"))
}

func (r *REPL) errorf(format string, args ...any) {
	fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorRed(), fmt.Sprintf(format, args...)))
}

// processCommand executes one line. It returns false when the session
// should end.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "fib", "calc", "c":
		if n, ok := r.parseIndex(cmd, args); ok {
			r.calculate(ctx, n)
		}
	case "even":
		r.cmdEven(ctx, args)
	case "len":
		// Keep the text's inner spacing intact.
		r.cmdLen(ctx, strings.TrimSpace(input[len(parts[0]):]))
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		if n, ok := r.parseIndex(cmd, args); ok {
			r.cmdCompare(ctx, n)
		}
	case "list", "ls":
		r.cmdList()
	case "hex":
		r.config.HexOutput = !r.config.HexOutput
		fmt.Fprintf(r.out, "Hexadecimal display: %s\n", ui.Colorize(ui.ColorGreen(), onOff(r.config.HexOutput, "enabled", "disabled")))
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%s\n", ui.Colorize(ui.ColorGreen(), "Goodbye!"))
		return false
	default:
		if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.calculate(ctx, n)
			return true
		}
		r.errorf("Unknown command: %s", cmd)
		fmt.Fprintf(r.out, "Type %s to see available commands.\n", ui.Colorize(ui.ColorYellow(), "help"))
	}
	return true
}

func (r *REPL) parseIndex(cmd string, args []string) (uint64, bool) {
	if len(args) == 0 {
		r.errorf("Usage: %s <n>", cmd)
		return 0, false
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		r.errorf("Invalid value: %s", args[0])
		return 0, false
	}
	return n, true
}

func (r *REPL) calculate(ctx context.Context, n uint64) {
	calc, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		r.errorf("Algorithm not found: %s", r.currentAlgo)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Calculating %s with %s...\n",
		ui.Colorize(ui.ColorMagenta(), fmt.Sprintf("F(%d)", n)), ui.Colorize(ui.ColorCyan(), calc.Name()))

	results := orchestration.ExecuteCalculations(ctx, []fibonacci.Calculator{calc}, n, r.config.Options,
		r.config.Reporter, r.out, r.config.RunOptions...)
	orchestration.TagTimeouts(results, r.config.Timeout)
	res := results[0]
	if res.Err != nil {
		apperrors.HandleCalculationError(res.Err, res.Duration, r.out, ui.ErrorColors{})
		return
	}

	s := res.Result.String()
	fmt.Fprintf(r.out, "\n%s\n", ui.Colorize(ui.ColorBold(), "Result:"))
	fmt.Fprintf(r.out, "  Time:   %s\n", ui.Colorize(ui.ColorGreen(), format.FormatExecutionDuration(res.Duration)))
	fmt.Fprintf(r.out, "  Bits:   %s\n", ui.Colorize(ui.ColorCyan(), strconv.Itoa(res.Result.BitLen())))
	fmt.Fprintf(r.out, "  Digits: %s\n", ui.Colorize(ui.ColorCyan(), strconv.Itoa(len(s))))
	switch {
	case r.config.HexOutput:
		fmt.Fprintf(r.out, "  F(%d) = %s\n", n, ui.Colorize(ui.ColorGreen(), "0x"+res.Result.Text(16)))
	case len(s) > TruncationLimit:
		fmt.Fprintf(r.out, "  F(%d) = %s (truncated)\n", n, ui.Colorize(ui.ColorGreen(), format.TruncateDigits(s, DisplayEdges)))
	default:
		fmt.Fprintf(r.out, "  F(%d) = %s\n", n, ui.Colorize(ui.ColorGreen(), s))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdEven(ctx context.Context, args []string) {
	if len(args) == 0 {
		r.errorf("Usage: even <n>")
		return
	}
	v, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		r.errorf("Invalid integer: %s", args[0])
		return
	}
	DisplayOperationResult(orchestration.RunParity(ctx, v, r.config.RunOptions...), false, r.out)
}

func (r *REPL) cmdLen(ctx context.Context, text string) {
	if text == "" {
		r.errorf("Usage: len <text>")
		return
	}
	DisplayOperationResult(orchestration.RunStringLength(ctx, text, r.config.RunOptions...), true, r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		r.errorf("Usage: algo <name>")
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	calc, err := r.factory.Get(name)
	if err != nil {
		r.errorf("Unknown algorithm: %s", name)
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s\n", ui.Colorize(ui.ColorGreen(), calc.Name()))
}

// cmdCompare runs every calculator whose domain covers n and flags
// disagreements.
func (r *REPL) cmdCompare(ctx context.Context, n uint64) {
	supported, skipped := orchestration.FilterSupported(
		orchestration.GetCalculatorsToRun(orchestration.AlgoAll, r.factory), n, r.config.Options)

	fmt.Fprintf(r.out, "\n%s\n", ui.Colorize(ui.ColorBold(), fmt.Sprintf("Comparison for F(%d):", n)))
	PrintSkipped(skipped, n, r.config.Options, r.out)
	if len(supported) == 0 {
		r.errorf("No algorithm supports n=%d.", n)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteCalculations(ctx, supported, n, r.config.Options,
		orchestration.NullProgressReporter{}, r.out, r.config.RunOptions...)
	orchestration.TagTimeouts(results, r.config.Timeout)
	orchestration.SortResults(results)

	rule := ui.Colorize(ui.ColorCyan(), strings.Repeat("─", 45))
	fmt.Fprintln(r.out, rule)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %-28s: %s\n", res.Name, ui.Colorize(ui.ColorRed(), "Error - "+res.Err.Error()))
			continue
		}
		fmt.Fprintf(r.out, "  %-28s: %12s %s\n", res.Name,
			format.FormatExecutionDuration(res.Duration), ui.Colorize(ui.ColorGreen(), "✓"))
	}
	fmt.Fprintln(r.out, rule)

	if _, err := orchestration.CompareResults(n, results); err != nil {
		r.errorf("✗ INCONSISTENT: %v", err)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%s\n", ui.Colorize(ui.ColorBold(), "Available algorithms:"))
	for _, name := range r.factory.List() {
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.Colorize(ui.ColorGreen(), "► ")
		}
		fmt.Fprintf(r.out, "%s%-10s - %s\n", marker, name, calc.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%s\n", ui.Colorize(ui.ColorBold(), "Current configuration:"))
	fmt.Fprintf(r.out, "  Algorithm:       %s\n", ui.Colorize(ui.ColorCyan(), r.currentAlgo))
	fmt.Fprintf(r.out, "  Timeout:         %s\n", ui.Colorize(ui.ColorCyan(), r.config.Timeout.String()))
	fmt.Fprintf(r.out, "  Recursive limit: %s\n", ui.Colorize(ui.ColorCyan(), strconv.FormatUint(r.config.Options.MaxRecursiveIndex, 10)))
	fmt.Fprintf(r.out, "  Hexadecimal:     %s\n", ui.Colorize(ui.ColorCyan(), onOff(r.config.HexOutput, "yes", "no")))
	fmt.Fprintln(r.out)
}

func onOff(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
