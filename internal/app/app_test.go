package app

import (
	"bytes"
	"context"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/logging"
)

// brokenCalculator returns F(n)+1 to provoke a comparison mismatch.
type brokenCalculator struct{}

func (brokenCalculator) Name() string { return "Broken" }

func (brokenCalculator) Calculate(ctx context.Context, _ chan<- fibonacci.ProgressUpdate, _ int, n uint64, opts fibonacci.Options) (*big.Int, error) {
	v, err := fibonacci.NewDefaultFactory().MustGet("big").Calculate(ctx, nil, 0, n, opts)
	if err != nil {
		return nil, err
	}
	return v.Add(v, big.NewInt(1)), nil
}

func newTestApp(t *testing.T, args []string, opts ...AppOption) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	opts = append([]AppOption{WithLogger(logging.Nop()), WithFactory(fibonacci.NewDefaultFactory())}, opts...)
	a, err := New(append([]string{"numkit"}, args...), &errBuf, opts...)
	if err != nil {
		t.Fatalf("New(%v): %v\nstderr: %s", args, err, errBuf.String())
	}
	return a, &errBuf
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"fib quiet", []string{"-n", "30", "-q"}, apperrors.ExitSuccess, "832040\n"},
		{"fib text", []string{"-n", "10", "-c", "-d"}, apperrors.ExitSuccess, "F(10) = 55"},
		{"fib single algo", []string{"-n", "20", "--algo", "iterative", "-c"}, apperrors.ExitSuccess, "Single calculation"},
		{"fib large skips bounded", []string{"-n", "120", "-q"}, apperrors.ExitSuccess, "5358359254990966640871840\n"},
		{"fib overflow", []string{"-n", "94", "--algo", "iterative"}, apperrors.ExitErrorConfig, "Global Status: Failure"},
		{"parity", []string{"--op", "even", "--value", "-4"}, apperrors.ExitSuccess, "-4 is even"},
		{"parity defaults to n", []string{"--op", "even", "-n", "7", "-q"}, apperrors.ExitSuccess, "false\n"},
		{"length", []string{"--op", "len", "--text", "héllo 😀"}, apperrors.ExitSuccess, `Length of "héllo 😀": 7 scalars`},
		{"length json", []string{"--op", "len", "--format", "json", "Envelope"}, apperrors.ExitSuccess, `"length": 8`},
		{"demo", []string{"--demo"}, apperrors.ExitSuccess, "true\n5\n5\nLength of the string is 8\n"},
		{"completion", []string{"--completion", "fish"}, apperrors.ExitSuccess, "complete -c numkit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, tt.args)
			var out bytes.Buffer
			code := a.Run(context.Background(), &out)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\n%s", code, tt.wantCode, out.String())
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out.String())
			}
		})
	}
}

func TestRun_QuietErrorsGoToStderr(t *testing.T) {
	a, errBuf := newTestApp(t, []string{"-n", "60", "--algo", "recursive", "-q"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if out.Len() != 0 {
		t.Errorf("stdout should stay empty, got %q", out.String())
	}
	if !strings.Contains(errBuf.String(), "recursive limit") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestRun_Mismatch(t *testing.T) {
	factory := fibonacci.NewDefaultFactory()
	factory.Register("broken", brokenCalculator{})

	for _, quiet := range []bool{false, true} {
		args := []string{"-n", "20"}
		if quiet {
			args = append(args, "-q")
		}
		a, _ := newTestApp(t, args, WithFactory(factory))
		var out bytes.Buffer
		if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorMismatch {
			t.Errorf("quiet=%v: exit code = %d, want %d\n%s", quiet, code, apperrors.ExitErrorMismatch, out.String())
		}
		want := `
# HELP numkit_result_mismatches_total Comparisons in which algorithms disagreed.
# TYPE numkit_result_mismatches_total counter
numkit_result_mismatches_total 1
`
		if err := testutil.GatherAndCompare(a.Metrics.Registry(), strings.NewReader(want), "numkit_result_mismatches_total"); err != nil {
			t.Errorf("quiet=%v: %v", quiet, err)
		}
	}
}

func TestRun_Canceled(t *testing.T) {
	a, _ := newTestApp(t, []string{"-n", "40", "--algo", "recursive"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d\n%s", code, apperrors.ExitErrorCanceled, out.String())
	}
}

func TestRun_DebugLogsProgress(t *testing.T) {
	var logBuf bytes.Buffer
	logger := logging.NewZerologAdapter(zerolog.New(&logBuf).Level(zerolog.DebugLevel))
	a, _ := newTestApp(t, []string{"-n", "30", "-q"}, WithLogger(logger))

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out.String())
	}
	if out.String() != "832040\n" {
		t.Errorf("stdout = %q, want the bare value", out.String())
	}
	if !strings.Contains(logBuf.String(), `"message":"progress"`) {
		t.Errorf("debug log should carry progress entries:\n%s", logBuf.String())
	}
}

func TestRun_TimeoutNamesLimit(t *testing.T) {
	a, _ := newTestApp(t, []string{"-n", "40", "--algo", "recursive", "--timeout", "1ms"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorTimeout {
		t.Fatalf("exit code = %d, want %d\n%s", code, apperrors.ExitErrorTimeout, out.String())
	}
	if !strings.Contains(out.String(), "limit of 1ms for Recursive") {
		t.Errorf("timeout message should name the limit and algorithm:\n%s", out.String())
	}
}

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	resultPath := filepath.Join(dir, "fib.txt")
	metricsPath := filepath.Join(dir, "metrics.prom")

	a, _ := newTestApp(t, []string{"-n", "25", "-o", resultPath, "--metrics-file", metricsPath})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "Result saved to: "+resultPath) {
		t.Errorf("missing save notice:\n%s", out.String())
	}

	result, err := os.ReadFile(resultPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Run: " + a.RunID, "# N: 25", "F(25) =\n75025"} {
		if !strings.Contains(string(result), want) {
			t.Errorf("result file missing %q:\n%s", want, result)
		}
	}

	prom, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prom), `numkit_operations_total{algo="Iterative (O(n), math/big)",op="fib",status="success"} 1`) {
		t.Errorf("metrics file:\n%s", prom)
	}
}

func TestNew_Errors(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"numkit", "--help"}, &errBuf)
	if !IsHelpError(err) {
		t.Errorf("--help should yield flag.ErrHelp, got %v", err)
	}

	errBuf.Reset()
	_, err = New([]string{"numkit", "--algo", "fast"}, &errBuf)
	if err == nil || IsHelpError(err) {
		t.Fatalf("expected a config error, got %v", err)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
		t.Errorf("exit code for %v = %d", err, apperrors.ExitCodeFor(err))
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	for _, args := range [][]string{{"--version"}, {"-n", "3", "-V"}, {"-version"}} {
		if !HasVersionFlag(args) {
			t.Errorf("HasVersionFlag(%v) = false", args)
		}
	}
	if HasVersionFlag([]string{"-v", "-n", "3"}) {
		t.Error("-v means verbose, not version")
	}

	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "numkit "+Version) || !strings.Contains(buf.String(), "runtime:") {
		t.Errorf("PrintVersion = %q", buf.String())
	}
}
