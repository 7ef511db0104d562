package orchestration

import (
	"time"

	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/format"
)

// ProgressAggregator turns per-calculator updates into an average and an
// ETA. The CLI spinner consumes it.
type ProgressAggregator struct {
	state          *format.ProgressWithETA
	numCalculators int
}

// NewProgressAggregator returns nil when numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:          format.NewProgressWithETA(numCalculators),
		numCalculators: numCalculators,
	}
}

// AggregatedProgress is the state after one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records one update.
func (a *ProgressAggregator) Update(update fibonacci.ProgressUpdate) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.CalculatorIndex, update.Value)
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the average without recording an update.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without recording an update.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// IsMultiCalculator reports whether more than one calculator is tracked.
func (a *ProgressAggregator) IsMultiCalculator() bool {
	return a.numCalculators > 1
}

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan fibonacci.ProgressUpdate) {
	for range progressChan {
	}
}
