package orchestration

import (
	"github.com/agbru/numkit/internal/fibonacci"
)

// AlgoAll selects every registered calculator.
const AlgoAll = "all"

// GetCalculatorsToRun resolves algo ("all" or a registered name) against
// factory. "all" yields calculators in sorted name order; an unknown name
// yields nil.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo == AlgoAll {
		keys := factory.List()
		calculators := make([]fibonacci.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []fibonacci.Calculator{calc}
	}
	return nil
}

// FilterSupported splits calculators into those accepting index n and those
// bounded below it.
func FilterSupported(calculators []fibonacci.Calculator, n uint64, opts fibonacci.Options) (supported, skipped []fibonacci.Calculator) {
	for _, calc := range calculators {
		if fibonacci.Supports(calc, n, opts) {
			supported = append(supported, calc)
		} else {
			skipped = append(skipped, calc)
		}
	}
	return supported, skipped
}
