package tui

import (
	"math/bits"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/numkit/internal/numeric"
)

// Evaluation is everything the explorer derives from one input value.
type Evaluation struct {
	Input string

	// IsInteger reports whether the trimmed input parses as an int64.
	IsInteger bool
	Value     int64
	Even      bool

	// HasFib is set for non-negative integers; Fib is valid when FibErr
	// is nil.
	HasFib bool
	Fib    uint64
	FibErr error

	Stats    numeric.TextStats
	Duration time.Duration
}

// Evaluate runs parity, the iterative Fibonacci and text statistics over
// input. It never fails; out-of-domain indices are reported in FibErr.
func Evaluate(input string) Evaluation {
	start := time.Now()
	ev := Evaluation{Input: input, Stats: numeric.Stats(input)}

	if v, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64); err == nil {
		ev.IsInteger = true
		ev.Value = v
		ev.Even = numeric.IsEven(v)
		if v >= 0 {
			ev.HasFib = true
			ev.Fib, ev.FibErr = numeric.FibonacciIterative(uint64(v))
		}
	}

	ev.Duration = time.Since(start)
	return ev
}

// FibBits is the bit length of F(n), or 0 when there is no value.
func (e Evaluation) FibBits() int {
	if !e.HasFib || e.FibErr != nil {
		return 0
	}
	return bits.Len64(e.Fib)
}
