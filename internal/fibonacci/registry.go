package fibonacci

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/agbru/numkit/internal/errors"
)

// CalculatorFactory resolves calculators by short name.
type CalculatorFactory interface {
	Get(name string) (Calculator, error)
	List() []string
	GetAll() map[string]Calculator
	Register(name string, calc Calculator)
}

// DefaultFactory is a thread-safe registry of calculators.
type DefaultFactory struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

var _ CalculatorFactory = (*DefaultFactory)(nil)

// builtins is filled at init time; optional algorithms (e.g. the GMP one,
// behind a build tag) append themselves to it.
var builtins = map[string]func() Calculator{
	"recursive": func() Calculator { return NewCalculator(&RecursiveCalculator{}) },
	"iterative": func() Calculator { return NewCalculator(&IterativeCalculator{}) },
	"big":       func() Calculator { return NewCalculator(&BigIterativeCalculator{}) },
}

// NewDefaultFactory returns a factory with every built-in calculator registered.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{calculators: make(map[string]Calculator, len(builtins))}
	for name, mk := range builtins {
		f.calculators[name] = mk()
	}
	return f
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() { globalFactory = NewDefaultFactory() })
	return globalFactory
}

// Register adds or replaces a calculator.
func (f *DefaultFactory) Register(name string, calc Calculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calculators[name] = calc
}

// Get returns the calculator registered under name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	calc, ok := f.calculators[name]
	f.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewConfigError("unknown algorithm %q (available: %s)", name, strings.Join(f.List(), ", "))
	}
	return calc, nil
}

// MustGet is Get that panics on unknown names. Intended for tests and
// static wiring.
func (f *DefaultFactory) MustGet(name string) Calculator {
	calc, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("fibonacci: %v", err))
	}
	return calc
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the registry.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]Calculator, len(f.calculators))
	for k, v := range f.calculators {
		out[k] = v
	}
	return out
}
