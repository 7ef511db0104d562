package fibonacci

import (
	"sync"

	"github.com/agbru/numkit/internal/logging"
)

// ProgressUpdate is a progress notification from one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator among those run together.
	CalculatorIndex int
	// Value is the completed fraction, 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a single calculation.
type ProgressCallback func(progress float64)

// ProgressObserver is notified of progress for a given calculator index.
type ProgressObserver interface {
	Update(calcIndex int, progress float64)
}

// ProgressSubject fans progress out to registered observers.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Freeze returns a callback bound to calcIndex that notifies the observers
// registered at the time of the call. Later registrations are not seen.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, o := range snapshot {
			o.Update(calcIndex, progress)
		}
	}
}

// ChannelObserver forwards updates to a channel without blocking: when the
// channel is full the update is dropped, since a later one supersedes it.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer writing to ch. A nil channel yields
// an observer that does nothing.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}:
	default:
	}
}

// ProgressLogThreshold is the step used for debug progress logging.
const ProgressLogThreshold = 0.25

// LoggingObserver writes progress to a Logger at debug level, at most once
// per threshold step (e.g. 0.25 logs at 25%, 50%, ...).
type LoggingObserver struct {
	logger    logging.Logger
	threshold float64

	mu   sync.Mutex
	last map[int]float64
}

// NewLoggingObserver creates a logging observer.
func NewLoggingObserver(logger logging.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{logger: logger, threshold: threshold, last: make(map[int]float64)}
}

func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	last, seen := o.last[calcIndex]
	report := !seen || progress-last >= o.threshold || (progress >= 1 && last < 1)
	if report {
		o.last[calcIndex] = progress
	}
	o.mu.Unlock()

	if report {
		o.logger.Debug("progress",
			logging.Int("calculator", calcIndex),
			logging.Float64("value", progress))
	}
}

// stepReporter converts step counts into throttled fractional progress.
func stepReporter(cb ProgressCallback, total uint64) func(k uint64) {
	if cb == nil || total == 0 {
		return func(uint64) {}
	}
	every := total / progressSteps
	if every == 0 {
		every = 1
	}
	return func(k uint64) {
		if k%every == 0 || k == total {
			cb(float64(k) / float64(total))
		}
	}
}
