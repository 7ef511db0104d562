package fibonacci

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/numeric"
)

// RecursiveCalculator runs the naive exponential recursion. It exists to be
// compared against the linear algorithms, not to be fast.
type RecursiveCalculator struct{}

func (*RecursiveCalculator) Name() string { return "Recursive (naive, O(φⁿ))" }

// MaxIndex is the configured recursion cap, never above the uint64 domain.
func (*RecursiveCalculator) MaxIndex(opts Options) uint64 {
	return min(opts.maxRecursive(), numeric.MaxIndex)
}

func (c *RecursiveCalculator) CalculateCore(ctx context.Context, _ ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	if limit := opts.maxRecursive(); n > limit && n <= numeric.MaxIndex {
		return nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("%d exceeds the recursive limit %d (raise --max-recursive)", n, limit),
		}
	}
	v, err := numeric.FibonacciRecursiveContext(ctx, n)
	if err != nil {
		return nil, domainError(err)
	}
	return new(big.Int).SetUint64(v), nil
}

// domainError tags overflow as a validation failure while keeping
// numeric.ErrOverflow matchable.
func domainError(err error) error {
	var ovf *numeric.OverflowError
	if errors.As(err, &ovf) {
		return fmt.Errorf("%w: %w", apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("must be at most %d for fixed-width algorithms", ovf.Max),
		}, err)
	}
	return err
}
