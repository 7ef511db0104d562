package tui

import (
	"errors"
	"testing"

	"github.com/agbru/numkit/internal/numeric"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		input     string
		isInteger bool
		even      bool
		hasFib    bool
		fib       uint64
		overflow  bool
		scalars   int
	}{
		{"Envelope", "Envelope", false, false, false, 0, false, 8},
		{"two billion", "2000000000", true, true, true, 0, true, 10},
		{"ten", "10", true, true, true, 55, false, 2},
		{"padded five", " 5 ", true, false, true, 5, false, 3},
		{"negative", "-4", true, true, false, 0, false, 2},
		{"max index", "93", true, false, true, 12200160415121876738, false, 2},
		{"first overflow", "94", true, true, true, 0, true, 2},
		{"empty", "", false, false, false, 0, false, 0},
		{"emoji", "😀", false, false, false, 0, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev := Evaluate(tt.input)
			if ev.IsInteger != tt.isInteger || ev.HasFib != tt.hasFib {
				t.Fatalf("IsInteger=%v HasFib=%v, want %v %v", ev.IsInteger, ev.HasFib, tt.isInteger, tt.hasFib)
			}
			if tt.isInteger && ev.Even != tt.even {
				t.Errorf("Even = %v, want %v", ev.Even, tt.even)
			}
			if tt.overflow != errors.Is(ev.FibErr, numeric.ErrOverflow) {
				t.Errorf("FibErr = %v, overflow expected %v", ev.FibErr, tt.overflow)
			}
			if tt.hasFib && !tt.overflow && ev.Fib != tt.fib {
				t.Errorf("Fib = %d, want %d", ev.Fib, tt.fib)
			}
			if ev.Stats.Scalars != tt.scalars {
				t.Errorf("Scalars = %d, want %d", ev.Stats.Scalars, tt.scalars)
			}
		})
	}
}

func TestEvaluation_FibBits(t *testing.T) {
	t.Parallel()
	if got := Evaluate("10").FibBits(); got != 6 {
		t.Errorf("bits of F(10)=55: got %d, want 6", got)
	}
	if got := Evaluate("93").FibBits(); got != 64 {
		t.Errorf("bits of F(93): got %d, want 64", got)
	}
	for _, in := range []string{"0", "94", "text"} {
		if got := Evaluate(in).FibBits(); got != 0 {
			t.Errorf("FibBits(%q) = %d, want 0", in, got)
		}
	}
}
