package fibonacci

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/numkit/internal/errors"
)

// Options tunes calculator behaviour.
type Options struct {
	// MaxRecursiveIndex caps the recursive calculator. Zero means
	// DefaultMaxRecursiveIndex.
	MaxRecursiveIndex uint64
}

func (o Options) maxRecursive() uint64 {
	if o.MaxRecursiveIndex == 0 {
		return DefaultMaxRecursiveIndex
	}
	return o.MaxRecursiveIndex
}

// Calculator computes Fibonacci numbers and publishes progress.
type Calculator interface {
	// Calculate computes F(n). Progress is sent, without blocking, to
	// progressChan tagged with calcIndex; progressChan may be nil.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error)
	// Name is the human-readable algorithm name.
	Name() string
}

// Bounded is implemented by calculators that only accept indices up to a
// limit. Calculators that do not implement it are unbounded.
type Bounded interface {
	MaxIndex(opts Options) uint64
}

// Supports reports whether calc accepts index n under opts.
func Supports(calc Calculator, n uint64, opts Options) bool {
	b, ok := calc.(Bounded)
	return !ok || n <= b.MaxIndex(opts)
}

// ObservableCalculator accepts a caller-built ProgressSubject, so observers
// beyond the progress channel can be attached to a run.
type ObservableCalculator interface {
	Calculator
	CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n uint64, opts Options) (*big.Int, error)
}

// coreCalculator is the algorithm itself, without progress plumbing.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*big.Int, error)
	Name() string
}

// FibCalculator adapts a coreCalculator to the Calculator interface. It
// reports 0 at start and 1 on success, checks ctx before starting, and wraps
// failures in apperrors.CalculationError.
type FibCalculator struct {
	core coreCalculator
}

var _ ObservableCalculator = (*FibCalculator)(nil)

// NewCalculator wraps a core algorithm.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("fibonacci: NewCalculator called with nil core")
	}
	return &FibCalculator{core: core}
}

// Name returns the core algorithm name.
func (c *FibCalculator) Name() string { return c.core.Name() }

// MaxIndex forwards the core's bound, or the maximum uint64 if it has none.
func (c *FibCalculator) MaxIndex(opts Options) uint64 {
	if b, ok := c.core.(Bounded); ok {
		return b.MaxIndex(opts)
	}
	return ^uint64(0)
}

// Calculate implements Calculator.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error) {
	subject := NewProgressSubject()
	subject.Register(NewChannelObserver(progressChan))
	return c.CalculateWithObservers(ctx, subject, calcIndex, n, opts)
}

// CalculateWithObservers runs the calculation and notifies every observer
// registered on subject.
func (c *FibCalculator) CalculateWithObservers(ctx context.Context, subject *ProgressSubject, calcIndex int, n uint64, opts Options) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.CalculationError{Cause: err}
	}

	report := subject.Freeze(calcIndex)
	report(0)

	result, err := c.core.CalculateCore(ctx, report, n, opts)
	if err != nil {
		return nil, apperrors.CalculationError{Cause: err}
	}
	report(1)
	return result, nil
}
