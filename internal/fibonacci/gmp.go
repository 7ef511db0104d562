//go:build gmp

package fibonacci

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	builtins["gmp"] = func() Calculator { return NewCalculator(&GMPCalculator{}) }
}

// GMPCalculator runs the unbounded rolling-accumulator loop on GMP integers.
// Only built with the gmp tag, since it needs cgo and libgmp.
type GMPCalculator struct{}

func (*GMPCalculator) Name() string { return "Iterative (O(n), GMP)" }

func (c *GMPCalculator) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, _ Options) (*big.Int, error) {
	if n < 2 {
		return new(big.Int).SetUint64(n), nil
	}
	step := stepReporter(reporter, n)

	first, second := gmp.NewInt(0), gmp.NewInt(1)
	for k := uint64(2); k <= n; k++ {
		first.Add(first, second)
		first, second = second, first
		step(k)
		if k%bigCtxPollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return new(big.Int).SetBytes(second.Bytes()), nil
}
