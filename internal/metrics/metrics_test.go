package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperation(t *testing.T) {
	t.Parallel()
	m := New()
	m.ObserveOperation("fib", "iterative", time.Millisecond, nil)
	m.ObserveOperation("fib", "iterative", time.Millisecond, nil)
	m.ObserveOperation("fib", "recursive", time.Second, errors.New("timeout"))

	if got := testutil.ToFloat64(m.operations.WithLabelValues("fib", "iterative", StatusSuccess)); got != 2 {
		t.Errorf("iterative successes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("fib", "recursive", StatusFailure)); got != 1 {
		t.Errorf("recursive failures = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.duration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestActiveGaugeAndMismatch(t *testing.T) {
	t.Parallel()
	m := New()
	m.IncrementActive()
	m.IncrementActive()
	m.DecrementActive()
	if got := testutil.ToFloat64(m.active); got != 1 {
		t.Errorf("active = %v, want 1", got)
	}
	m.IncMismatch()
	if got := testutil.ToFloat64(m.mismatches); got != 1 {
		t.Errorf("mismatches = %v, want 1", got)
	}
	m.SetResultBits("big", 69)
	if got := testutil.ToFloat64(m.resultBits.WithLabelValues("big")); got != 69 {
		t.Errorf("result bits = %v, want 69", got)
	}
}

func TestInstancesDoNotCollide(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("creating two Metrics panicked: %v", r)
		}
	}()
	New()
	New()
}

func TestRegistry_Collectors(t *testing.T) {
	t.Parallel()
	m := New()
	m.ObserveOperation("even", "generic", time.Microsecond, nil)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{"numkit_operations_total", "numkit_heap_alloc_bytes", "go_goroutines"} {
		if !names[want] {
			t.Errorf("registry should expose %q", want)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	m := New()
	m.ObserveOperation("len", "scalars", time.Microsecond, nil)

	path := filepath.Join(t.TempDir(), "numkit.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `numkit_operations_total{algo="scalars",op="len",status="success"} 1`) {
		t.Errorf("textfile missing counter line:\n%s", data)
	}

	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")); err == nil {
		t.Error("writing into a missing directory should fail")
	}
}
