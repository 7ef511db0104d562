package fibonacci

import (
	"context"
	"math/big"

	"github.com/agbru/numkit/internal/numeric"
)

// IterativeCalculator uses two rolling uint64 accumulators.
type IterativeCalculator struct{}

func (*IterativeCalculator) Name() string { return "Iterative (O(n), uint64)" }

func (*IterativeCalculator) MaxIndex(Options) uint64 { return numeric.MaxIndex }

func (c *IterativeCalculator) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, _ Options) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := numeric.FibonacciIterativeFunc(n, stepReporter(reporter, n))
	if err != nil {
		return nil, domainError(err)
	}
	return new(big.Int).SetUint64(v), nil
}

// BigIterativeCalculator applies the same rolling-accumulator loop to
// math/big integers, so it has no upper bound on n.
type BigIterativeCalculator struct{}

func (*BigIterativeCalculator) Name() string { return "Iterative (O(n), math/big)" }

func (c *BigIterativeCalculator) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, _ Options) (*big.Int, error) {
	if n < 2 {
		return new(big.Int).SetUint64(n), nil
	}
	step := stepReporter(reporter, n)

	first, second := big.NewInt(0), big.NewInt(1)
	for k := uint64(2); k <= n; k++ {
		// first becomes F(k); swapping keeps second as the newest value.
		first.Add(first, second)
		first, second = second, first
		step(k)
		if k%bigCtxPollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return second, nil
}
