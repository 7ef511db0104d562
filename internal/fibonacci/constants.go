package fibonacci

import "github.com/agbru/numkit/internal/numeric"

const (
	// DefaultMaxRecursiveIndex caps the naive recursive calculator. F(40)
	// needs about 330 million calls; each further index multiplies the cost
	// by roughly 1.618.
	DefaultMaxRecursiveIndex = 40

	// MaxUint64Index is the largest index the fixed-width calculators accept.
	MaxUint64Index = numeric.MaxIndex

	// progressSteps bounds the number of progress reports a linear
	// calculator emits during one run.
	progressSteps = 100

	// bigCtxPollInterval is how many big.Int additions run between
	// context checks in the unbounded calculator.
	bigCtxPollInterval = 4096
)
