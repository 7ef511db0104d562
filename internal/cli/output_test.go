package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/numkit/internal/config"
	"github.com/agbru/numkit/internal/numeric"
	"github.com/agbru/numkit/internal/orchestration"
)

func TestNewRunID(t *testing.T) {
	t.Parallel()
	a, b := NewRunID(), NewRunID()
	if len(a) != 36 || a == b {
		t.Errorf("run ids %q and %q should be distinct UUIDs", a, b)
	}
}

func TestEncodeRecord(t *testing.T) {
	t.Parallel()
	rec := NewFibRecord(big.NewInt(55), 10, 3*time.Millisecond, "Iterative (O(n), uint64)", "run-1")

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := EncodeRecord(&buf, rec, config.FormatText); err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"# Run: run-1", "# Algorithm: Iterative", "# N: 10", "# Bits: 6", "# Digits: 2", "F(10) =\n55\n"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("text output missing %q:\n%s", want, buf.String())
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := EncodeRecord(&buf, rec, config.FormatJSON); err != nil {
			t.Fatal(err)
		}
		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}
		if got["value"] != "55" || got["run_id"] != "run-1" || got["n"] != float64(10) {
			t.Errorf("unexpected JSON fields: %v", got)
		}
		if _, ok := got["even"]; ok {
			t.Error("fib record should omit parity fields")
		}
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := EncodeRecord(&buf, rec, config.FormatYAML); err != nil {
			t.Fatal(err)
		}
		var got map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
		}
		if got["value"] != "55" || got["op"] != "fib" {
			t.Errorf("unexpected YAML fields: %v", got)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		if err := EncodeRecord(&bytes.Buffer{}, rec, "xml"); err == nil {
			t.Error("expected an error for xml")
		}
	})
}

func TestNewOperationRecord(t *testing.T) {
	t.Parallel()
	parity := NewOperationRecord(orchestration.OperationResult{Op: orchestration.OpEven, Input: "-4", Even: true}, "r")
	if parity.Even == nil || !*parity.Even || parity.Length != nil {
		t.Errorf("parity record = %+v", parity)
	}

	length := NewOperationRecord(orchestration.OperationResult{Op: orchestration.OpLen, Input: "Envelope", Length: 8, Stats: numeric.Stats("Envelope")}, "r")
	if length.Length == nil || *length.Length != 8 || length.Stats == nil || length.Even != nil {
		t.Errorf("length record = %+v", length)
	}

	var buf bytes.Buffer
	if err := EncodeRecord(&buf, length, config.FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `len("Envelope") = 8`) {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "fib.yaml")
	cfg := OutputConfig{OutputFile: path, Format: config.FormatYAML, RunID: "abc"}

	if err := WriteResultToFile(big.NewInt(832040), 30, time.Millisecond, "big", cfg); err != nil {
		t.Fatalf("WriteResultToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "value: \"832040\"") || !strings.Contains(string(data), "run_id: abc") {
		t.Errorf("file content:\n%s", data)
	}

	if err := WriteResultToFile(big.NewInt(1), 1, 0, "big", OutputConfig{}); err != nil {
		t.Errorf("empty OutputFile should be a no-op, got %v", err)
	}
}

func TestWriteRecordToFile_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	rec := NewFibRecord(big.NewInt(55), 10, time.Millisecond, "big", "run")

	tests := []struct {
		name string
		cfg  OutputConfig
		want string
	}{
		{"parent is a file", OutputConfig{OutputFile: filepath.Join(blocker, "sub", "fib.txt")}, "failed to create directory: "},
		{"target is a directory", OutputConfig{OutputFile: dir}, "failed to create output file: "},
		{"unknown format", OutputConfig{OutputFile: filepath.Join(dir, "fib.xml"), Format: "xml"}, "failed to write result: unsupported output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := WriteRecordToFile(rec, tt.cfg)
			if err == nil || !strings.HasPrefix(err.Error(), tt.want) {
				t.Errorf("error = %v, want prefix %q", err, tt.want)
			}
			if errors.Unwrap(err) == nil {
				t.Errorf("cause should stay in the chain: %v", err)
			}
		})
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cfg      OutputConfig
		want     string
		excludes string
	}{
		{"quiet", OutputConfig{Quiet: true}, "832040\n", "binary size"},
		{"text", OutputConfig{ShowValue: true}, "F(30) = 832,040", ""},
		{"json", OutputConfig{Format: config.FormatJSON, RunID: "x"}, `"value": "832040"`, "binary size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := DisplayResultWithConfig(&buf, big.NewInt(832040), 30, time.Millisecond, "big", false, tt.cfg); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
			if tt.excludes != "" && strings.Contains(buf.String(), tt.excludes) {
				t.Errorf("output should not contain %q:\n%s", tt.excludes, buf.String())
			}
		})
	}

	t.Run("saved notice", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "out.txt")
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, big.NewInt(5), 5, 0, "big", false, OutputConfig{OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "Result saved to: "+path) {
			t.Errorf("missing save notice:\n%s", buf.String())
		}
	})
}

func TestDisplayOperationWithConfig(t *testing.T) {
	t.Parallel()
	res := orchestration.OperationResult{Op: orchestration.OpEven, Input: "3", Even: false}

	var quiet bytes.Buffer
	if err := DisplayOperationWithConfig(&quiet, res, false, OutputConfig{Quiet: true}); err != nil {
		t.Fatal(err)
	}
	if quiet.String() != "false\n" {
		t.Errorf("quiet output = %q, want %q", quiet.String(), "false\n")
	}

	var js bytes.Buffer
	if err := DisplayOperationWithConfig(&js, res, false, OutputConfig{Format: config.FormatJSON}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"even": false`) {
		t.Errorf("json output = %s", js.String())
	}
}
