package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	overflow := errors.New("overflow")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("algo", "iterative"), "algo", "iterative"},
		{"Int", Int("index", 2), "index", 2},
		{"Uint64", Uint64("n", 93), "n", uint64(93)},
		{"Float64", Float64("progress", 0.5), "progress", 0.5},
		{"Bool", Bool("even", true), "even", true},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(overflow), "error", overflow},
		{"Err with nil error", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

// TestNewLogger tests the component-tagged logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "orchestration")

	logger.Info("calculation finished", String("algo", "recursive"), Uint64("n", 30))
	output := buf.String()

	for _, want := range []string{"orchestration", "calculation finished", "recursive", "30", "info"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fields   []Field
		contains []string
	}{
		{"with error", errors.New("fibonacci overflow"), nil, []string{"fibonacci overflow", "error"}},
		{"with nil error", nil, nil, []string{"error"}},
		{"with error and fields", errors.New("timeout"), []Field{String("algo", "recursive"), Int("index", 1)}, []string{"timeout", "recursive"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Error("calculation failed", tt.err, tt.fields...)

			output := buf.String()
			for _, want := range append(tt.contains, "calculation failed") {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests that debug entries respect the level.
func TestZerologAdapter_Debug(t *testing.T) {
	t.Run("emitted at debug level", func(t *testing.T) {
		var buf bytes.Buffer
		NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel)).Debug("progress", Float64("value", 0.25))
		if !strings.Contains(buf.String(), "0.25") {
			t.Errorf("Debug output should contain the field, got: %s", buf.String())
		}
	})

	t.Run("suppressed at warn level", func(t *testing.T) {
		var buf bytes.Buffer
		NewZerologAdapter(zerolog.New(&buf).Level(zerolog.WarnLevel)).Debug("progress")
		if buf.Len() != 0 {
			t.Errorf("Debug output should be suppressed, got: %s", buf.String())
		}
	})
}

// TestZerologAdapter_PrintfPrintln tests the printf-style helpers.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("F(%d) = %d", 10, 55)
	logger.Println("length", 8)

	output := buf.String()
	if !strings.Contains(output, "F(10) = 55") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "length 8") {
		t.Errorf("Println should join arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "Envelope"}, "Envelope"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(-9223372036854775808)}, "-9223372036854775808"},
		{"uint64 field", Field{Key: "huge", Value: uint64(12200160415121876738)}, "12200160415121876738"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 7}}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("test", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "app", zerolog.InfoLevel, true)

	logger.Info("ready", String("op", "fib"))
	logger.Debug("hidden")

	output := buf.String()
	if !strings.Contains(output, "ready") || !strings.Contains(output, "op=fib") {
		t.Errorf("console output missing message or field: %s", output)
	}
	if strings.Contains(output, "hidden") {
		t.Errorf("debug entry should be filtered at info level: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"chatty", zerolog.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestStdLoggerAdapter tests the std-log backed adapter.
func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"Info", func(l Logger) { l.Info("parity", Bool("even", true)) }, []string{"[INFO]", "parity", "even=true"}},
		{"Error", func(l Logger) { l.Error("failed", errors.New("boom"), String("algo", "big")) }, []string{"[ERROR]", "failed", "boom", "algo=big"}},
		{"Debug", func(l Logger) { l.Debug("trace", Int("line", 42)) }, []string{"[DEBUG]", "trace", "line=42"}},
		{"Printf", func(l Logger) { l.Printf("value is %d", 123) }, []string{"value is 123"}},
		{"Println", func(l Logger) { l.Println("a", "b", "c") }, []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("discarded")
	l.Error("discarded", errors.New("x"))
}
