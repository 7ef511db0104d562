package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/numeric"
)

// EnvPrefix prefixes every environment override, e.g. NUMKIT_N.
const EnvPrefix = "NUMKIT_"

// Operations selectable with --op.
const (
	OpFib  = "fib"
	OpEven = "even"
	OpLen  = "len"
)

// Output encodings selectable with --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// AlgoAll runs every registered calculator and compares the results.
const AlgoAll = "all"

// Defaults.
const (
	DefaultN        uint64 = 10
	DefaultTimeout         = time.Minute
	DefaultLogLevel        = "warn"
)

// AppConfig is the fully resolved run configuration.
type AppConfig struct {
	// Op selects the utility: fib, even or len.
	Op string
	// N is the Fibonacci index.
	N uint64
	// Algo is a registered calculator name or "all".
	Algo string
	// Value is the integer tested by the parity operation.
	Value int64
	// Text is measured by the len operation.
	Text string

	Timeout      time.Duration
	MaxRecursive uint64

	Verbose   bool
	Details   bool
	Quiet     bool
	ShowValue bool
	NoColor   bool

	OutputFile  string
	Format      string
	MetricsFile string
	LogLevel    string

	REPL       bool
	TUI        bool
	Demo       bool
	Completion string
}

// ToCalculationOptions converts the configuration to calculator options.
func (c AppConfig) ToCalculationOptions() fibonacci.Options {
	return fibonacci.Options{MaxRecursiveIndex: c.MaxRecursive}
}

// Validate checks the configuration against the registered algorithms.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if !slices.Contains([]string{OpFib, OpEven, OpLen}, c.Op) {
		return apperrors.NewConfigError("unknown operation %q (valid: fib, even, len)", c.Op)
	}
	if c.Algo != AlgoAll && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (valid: all, %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, c.Format) {
		return apperrors.NewConfigError("unknown format %q (valid: text, json, yaml)", c.Format)
	}
	if c.MaxRecursive == 0 || c.MaxRecursive > numeric.MaxIndex {
		return apperrors.NewConfigError("--max-recursive must be between 1 and %d, got %d", numeric.MaxIndex, c.MaxRecursive)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose cannot be combined")
	}
	if c.REPL && c.TUI {
		return apperrors.NewConfigError("--repl and --tui cannot be combined")
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported shell %q for --completion (valid: bash, zsh, fish)", c.Completion)
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies NUMKIT_* environment overrides for flags not given on the command
// line and validates the result. Priority: flags > environment > defaults.
func ParseConfig(programName string, args []string, errorOutput io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Op, "op", OpFib, "Operation: fib, even or len.")
	fs.Uint64Var(&cfg.N, "n", DefaultN, "Fibonacci index to compute.")
	fs.StringVar(&cfg.Algo, "algo", AlgoAll, fmt.Sprintf("Algorithm: all, %s.", strings.Join(availableAlgos, ", ")))
	fs.Int64Var(&cfg.Value, "value", 0, "Integer to test with --op even (defaults to -n).")
	fs.StringVar(&cfg.Text, "text", "", "Text to measure with --op len (defaults to the remaining arguments).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.Uint64Var(&cfg.MaxRecursive, "max-recursive", fibonacci.DefaultMaxRecursiveIndex, "Largest index accepted by the recursive algorithm.")

	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Show full results.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for --details.")
	fs.BoolVar(&cfg.Details, "details", false, "Show timing and size details.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result, for scripting.")
	fs.BoolVar(&cfg.ShowValue, "c", false, "Shorthand for --calculate.")
	fs.BoolVar(&cfg.ShowValue, "calculate", false, "Print the computed value.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")

	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&cfg.Format, "format", FormatText, "Result encoding: text, json or yaml.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")

	fs.BoolVar(&cfg.REPL, "repl", false, "Start the interactive prompt.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the interactive explorer.")
	fs.BoolVar(&cfg.Demo, "demo", false, "Run the demonstration sequence.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	fs.Usage = func() { printUsage(fs, programName) }

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if !isFlagSet(fs, "value") && !envSet("VALUE") && cfg.N <= math.MaxInt64 {
		cfg.Value = int64(cfg.N)
	}
	if cfg.Text == "" && fs.NArg() > 0 {
		cfg.Text = strings.Join(fs.Args(), " ")
	}
	cfg.Op = strings.ToLower(cfg.Op)
	cfg.Format = strings.ToLower(cfg.Format)

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorOutput, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

func printUsage(fs *flag.FlagSet, programName string) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [flags] [text...]\n\n", programName)
	fmt.Fprintln(out, "Numeric utilities: Fibonacci (recursive, iterative, big), parity and string length.")
	fmt.Fprintln(out, "\nExamples:")
	fmt.Fprintf(out, "  %s -n 40 --algo all -d\n", programName)
	fmt.Fprintf(out, "  %s --op even --value -4\n", programName)
	fmt.Fprintf(out, "  %s --op len Envelope\n", programName)
	fmt.Fprintln(out, "\nFlags:")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nEnvironment variables %sN, %sALGO, ... override defaults; flags win.\n", EnvPrefix, EnvPrefix)
}
