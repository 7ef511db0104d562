package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/numeric"
)

// CalculationResult is the outcome of one Fibonacci calculator run.
type CalculationResult struct {
	// Name is the calculator's display name.
	Name string
	// Result is nil when Err is set.
	Result   *big.Int
	Duration time.Duration
	Err      error
}

// OperationResult is the outcome of a parity or string-length run.
type OperationResult struct {
	// Op is "even" or "len".
	Op    string
	Input string

	Even   bool
	Length int
	Stats  numeric.TextStats

	Duration time.Duration
}

// PresentationOptions configures result display.
type PresentationOptions struct {
	N         uint64
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ProgressReporter renders progress updates until progressChan is closed,
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer)

func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the channel silently. Used in quiet mode.
type NullProgressReporter struct{}

func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders comparison tables and final results.
type ResultPresenter interface {
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	PresentResult(result CalculationResult, n uint64, verbose, details, showValue bool, out io.Writer)
}

// ErrorHandler prints an error and maps it to an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
