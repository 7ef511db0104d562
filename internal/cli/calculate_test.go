package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/numkit/internal/config"
	"github.com/agbru/numkit/internal/fibonacci"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintExecutionConfig(config.AppConfig{N: 42, Timeout: 5 * time.Second, MaxRecursive: 40}, &buf)
	for _, want := range []string{"F(42)", "5s", "logical processors", "Recursive limit: 40"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := fibonacci.NewDefaultFactory()
	tests := []struct {
		name  string
		calcs []fibonacci.Calculator
		want  string
	}{
		{"none", nil, "no algorithm supports this index"},
		{"single", []fibonacci.Calculator{factory.MustGet("iterative")}, "Single calculation with the Iterative (O(n), uint64) algorithm"},
		{"several", []fibonacci.Calculator{factory.MustGet("iterative"), factory.MustGet("big")}, "Parallel comparison of 2 algorithms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintExecutionMode(tt.calcs, &buf)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrintSkipped(t *testing.T) {
	t.Parallel()
	factory := fibonacci.NewDefaultFactory()
	var buf bytes.Buffer
	PrintSkipped([]fibonacci.Calculator{factory.MustGet("recursive")}, 50, fibonacci.Options{}, &buf)
	want := "Skipping Recursive (naive, O(φⁿ)): F(50) is beyond its limit of 40."
	if !strings.Contains(buf.String(), want) {
		t.Errorf("output %q missing %q", buf.String(), want)
	}
}
