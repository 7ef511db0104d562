package numeric

import (
	"context"
	"errors"
	"fmt"
)

// MaxIndex is the largest n whose Fibonacci number fits in a uint64.
// F(93) = 12200160415121876738; F(94) exceeds 2^64-1.
const MaxIndex uint64 = 93

// ErrOverflow is returned (wrapped in *OverflowError) when F(n) does not fit
// in a uint64.
var ErrOverflow = errors.New("fibonacci result overflows uint64")

// OverflowError carries the rejected index.
type OverflowError struct {
	N   uint64
	Max uint64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("F(%d): %v (max index %d)", e.N, ErrOverflow, e.Max)
}

// Unwrap lets errors.Is match ErrOverflow.
func (e *OverflowError) Unwrap() error { return ErrOverflow }

func checkIndex(n uint64) error {
	if n > MaxIndex {
		return &OverflowError{N: n, Max: MaxIndex}
	}
	return nil
}

// FibonacciRecursive computes F(n) by the textbook recurrence
// F(n) = F(n-1) + F(n-2) with F(0) = 0 and F(1) = 1.
//
// It takes exponential time and O(n) stack: there is no memoisation. Indices
// are bounded by MaxIndex, so recursion depth never exceeds 93, but anything
// much above 45 takes seconds to minutes. Use FibonacciRecursiveContext to
// bound the run time.
func FibonacciRecursive(n uint64) (uint64, error) {
	if err := checkIndex(n); err != nil {
		return 0, err
	}
	return fibRec(n), nil
}

func fibRec(n uint64) uint64 {
	switch n {
	case 0:
		return 0
	case 1:
		return 1
	}
	return fibRec(n-1) + fibRec(n-2)
}

// ctxPollMask controls how often the context-aware recursion checks ctx:
// once every 65536 calls.
const ctxPollMask = 1<<16 - 1

// FibonacciRecursiveContext is FibonacciRecursive with cooperative
// cancellation. The recursion is identical; ctx is polled periodically and
// its error is returned once it is done.
func FibonacciRecursiveContext(ctx context.Context, n uint64) (uint64, error) {
	if err := checkIndex(n); err != nil {
		return 0, err
	}
	w := recWalker{ctx: ctx}
	v := w.fib(n)
	if w.err != nil {
		return 0, w.err
	}
	return v, nil
}

type recWalker struct {
	ctx   context.Context
	calls uint64
	err   error
}

func (w *recWalker) fib(n uint64) uint64 {
	if w.err != nil {
		return 0
	}
	w.calls++
	if w.calls&ctxPollMask == 0 {
		if err := w.ctx.Err(); err != nil {
			w.err = err
			return 0
		}
	}
	switch n {
	case 0:
		return 0
	case 1:
		return 1
	}
	return w.fib(n-1) + w.fib(n-2)
}

// FibonacciIterative computes F(n) in O(n) time with two rolling
// accumulators. It agrees with FibonacciRecursive on every index up to
// MaxIndex.
func FibonacciIterative(n uint64) (uint64, error) {
	return FibonacciIterativeFunc(n, nil)
}

// FibonacciIterativeFunc is FibonacciIterative with a per-step hook. step, if
// non-nil, is called with k after F(k) has been computed, for k = 2..n.
func FibonacciIterativeFunc(n uint64, step func(k uint64)) (uint64, error) {
	if err := checkIndex(n); err != nil {
		return 0, err
	}
	if n < 2 {
		return n, nil
	}

	var first, second uint64 = 0, 1 // F(k-2), F(k-1)
	for k := uint64(2); k <= n; k++ {
		next := first + second
		first = second
		second = next
		if step != nil {
			step(k)
		}
	}
	return second, nil
}
