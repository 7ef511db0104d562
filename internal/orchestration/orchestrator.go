package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/metrics"
)

// ProgressBufferMultiplier sizes the progress channel per calculator.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/numkit/internal/orchestration"

// Option configures the instrumentation used by the run functions.
type Option func(*runOptions)

type runOptions struct {
	metrics     *metrics.Metrics
	logger      logging.Logger
	tracer      trace.Tracer
	logProgress bool
}

// WithMetrics records operation counts and durations into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *runOptions) { o.metrics = m }
}

// WithLogger sends debug-level lifecycle events to l, along with the
// progress of calculators that accept extra observers.
func WithLogger(l logging.Logger) Option {
	return func(o *runOptions) {
		o.logger = l
		o.logProgress = l != nil
	}
}

// WithTracer overrides the tracer, which otherwise comes from the global
// OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *runOptions) { o.tracer = t }
}

func buildOptions(opts []Option) runOptions {
	o := runOptions{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger, o.logProgress = logging.Nop(), false
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o
}

func (o runOptions) observe(op, algo string, d time.Duration, err error) {
	if o.metrics != nil {
		o.metrics.ObserveOperation(op, algo, d, err)
	}
}

// calculate runs calc, adding progressLog next to the channel observer when
// calc supports extra observers.
func calculate(ctx context.Context, calc fibonacci.Calculator, progressChan chan<- fibonacci.ProgressUpdate, progressLog fibonacci.ProgressObserver, calcIndex int, n uint64, opts fibonacci.Options) (*big.Int, error) {
	observable, ok := calc.(fibonacci.ObservableCalculator)
	if !ok || progressLog == nil {
		return calc.Calculate(ctx, progressChan, calcIndex, n, opts)
	}
	subject := fibonacci.NewProgressSubject()
	subject.Register(fibonacci.NewChannelObserver(progressChan))
	subject.Register(progressLog)
	return observable.CalculateWithObservers(ctx, subject, calcIndex, n, opts)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ExecuteCalculations runs every calculator concurrently for index n and
// returns one result per calculator, in input order. Failures are recorded in
// the result rather than cancelling the siblings.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n uint64, calcOpts fibonacci.Options, progressReporter ProgressReporter, out io.Writer, opts ...Option) []CalculationResult {
	o := buildOptions(opts)
	ctx, runSpan := o.tracer.Start(ctx, "ExecuteCalculations",
		trace.WithAttributes(attribute.Int64("fib.n", int64(n)), attribute.Int("fib.calculators", len(calculators))))
	defer runSpan.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan fibonacci.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var progressLog fibonacci.ProgressObserver
	if o.logProgress {
		progressLog = fibonacci.NewLoggingObserver(o.logger, fibonacci.ProgressLogThreshold)
	}

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		g.Go(func() error {
			name := calc.Name()
			spanCtx, span := o.tracer.Start(ctx, "Calculate", trace.WithAttributes(attribute.String("fib.algorithm", name)))
			o.logger.Debug("calculation started", logging.String("algo", name), logging.Uint64("n", n))
			if o.metrics != nil {
				o.metrics.IncrementActive()
			}

			start := time.Now()
			res, err := calculate(spanCtx, calc, progressChan, progressLog, i, n, calcOpts)
			elapsed := time.Since(start)

			if o.metrics != nil {
				o.metrics.DecrementActive()
				if err == nil {
					o.metrics.SetResultBits(name, res.BitLen())
				}
			}
			o.observe("fib", name, elapsed, err)
			endSpan(span, err)
			if err != nil {
				o.logger.Debug("calculation failed", logging.String("algo", name), logging.Err(err), logging.Duration("elapsed", elapsed))
			} else {
				o.logger.Debug("calculation finished", logging.String("algo", name), logging.Duration("elapsed", elapsed))
			}

			results[i] = CalculationResult{Name: name, Result: res, Duration: elapsed, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// TagTimeouts replaces deadline failures in results with
// apperrors.TimeoutError values naming the calculator and limit.
func TagTimeouts(results []CalculationResult, limit time.Duration) {
	for i := range results {
		results[i].Err = apperrors.AsTimeout(results[i].Err, results[i].Name, limit)
	}
}

// SortResults orders successes first, then by ascending duration.
func SortResults(results []CalculationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
}

// CompareResults checks that every successful result agrees with the first
// successful one. It returns the reference result (nil if none succeeded)
// and an apperrors.MismatchError on disagreement.
func CompareResults(n uint64, results []CalculationResult) (*CalculationResult, error) {
	var ref *CalculationResult
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if ref == nil {
			ref = r
			continue
		}
		if r.Result.Cmp(ref.Result) != 0 {
			return ref, apperrors.MismatchError{N: n, Reference: ref.Name, Other: r.Name}
		}
	}
	return ref, nil
}

// FirstError returns the first non-nil error in results.
func FirstError(results []CalculationResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// AnalyzeComparisonResults sorts results, presents the comparison table and
// either the fastest consistent result or the failure, returning the exit
// code.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	SortResults(results)
	presenter.PresentComparisonTable(results, out)

	best, err := CompareResults(opts.N, results)
	if best == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		return errHandler.HandleError(FirstError(results), 0, out)
	}
	var mismatch apperrors.MismatchError
	if errors.As(err, &mismatch) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v\n", mismatch)
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*best, opts.N, opts.Verbose, opts.Details, opts.ShowValue, out)
	return apperrors.ExitSuccess
}
