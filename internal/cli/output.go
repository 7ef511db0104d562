// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a string without performing I/O.
//   - Write* functions create files.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/agbru/numkit/internal/config"
	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/numeric"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Format is text, json or yaml. It applies to the file and, when not
	// text, to standard output as well.
	Format    string
	Quiet     bool
	Verbose   bool
	ShowValue bool
	// RunID tags the result; see NewRunID.
	RunID string
}

// NewRunID returns a random identifier for one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// ResultRecord is the structured form of a result, shared by the text, JSON
// and YAML encodings.
type ResultRecord struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Generated time.Time `json:"generated" yaml:"generated"`
	Op        string    `json:"op" yaml:"op"`
	Algorithm string    `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Duration  string    `json:"duration" yaml:"duration"`

	N      *uint64 `json:"n,omitempty" yaml:"n,omitempty"`
	Bits   int     `json:"bits,omitempty" yaml:"bits,omitempty"`
	Digits int     `json:"digits,omitempty" yaml:"digits,omitempty"`
	Value  string  `json:"value,omitempty" yaml:"value,omitempty"`

	Input  string             `json:"input,omitempty" yaml:"input,omitempty"`
	Even   *bool              `json:"even,omitempty" yaml:"even,omitempty"`
	Length *int               `json:"length,omitempty" yaml:"length,omitempty"`
	Stats  *numeric.TextStats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// NewFibRecord describes a Fibonacci result.
func NewFibRecord(result *big.Int, n uint64, duration time.Duration, algo, runID string) ResultRecord {
	s := result.String()
	return ResultRecord{
		RunID:     runID,
		Generated: time.Now().UTC().Truncate(time.Second),
		Op:        orchestration.OpFib,
		Algorithm: algo,
		Duration:  duration.String(),
		N:         &n,
		Bits:      result.BitLen(),
		Digits:    len(s),
		Value:     s,
	}
}

// NewOperationRecord describes a parity or length result.
func NewOperationRecord(res orchestration.OperationResult, runID string) ResultRecord {
	rec := ResultRecord{
		RunID:     runID,
		Generated: time.Now().UTC().Truncate(time.Second),
		Op:        res.Op,
		Duration:  res.Duration.String(),
		Input:     res.Input,
	}
	switch res.Op {
	case orchestration.OpEven:
		even := res.Even
		rec.Even = &even
	case orchestration.OpLen:
		length, stats := res.Length, res.Stats
		rec.Length, rec.Stats = &length, &stats
	}
	return rec
}

// EncodeRecord writes rec to w in the given format.
func EncodeRecord(w io.Writer, rec ResultRecord, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatText, "":
		return encodeText(w, rec)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func encodeText(w io.Writer, rec ResultRecord) error {
	fmt.Fprintf(w, "# numkit result\n")
	fmt.Fprintf(w, "# Run: %s\n", rec.RunID)
	fmt.Fprintf(w, "# Generated: %s\n", rec.Generated.Format(time.RFC3339))
	if rec.Algorithm != "" {
		fmt.Fprintf(w, "# Algorithm: %s\n", rec.Algorithm)
	}
	fmt.Fprintf(w, "# Duration: %s\n", rec.Duration)

	var err error
	switch {
	case rec.N != nil:
		fmt.Fprintf(w, "# N: %d\n", *rec.N)
		fmt.Fprintf(w, "# Bits: %d\n", rec.Bits)
		fmt.Fprintf(w, "# Digits: %d\n\n", rec.Digits)
		_, err = fmt.Fprintf(w, "F(%d) =\n%s\n", *rec.N, rec.Value)
	case rec.Even != nil:
		_, err = fmt.Fprintf(w, "\neven(%s) = %t\n", rec.Input, *rec.Even)
	case rec.Length != nil:
		_, err = fmt.Fprintf(w, "\nlen(%q) = %d\n", rec.Input, *rec.Length)
	}
	return err
}

// WriteRecordToFile encodes rec into cfg.OutputFile, creating parent
// directories as needed. It does nothing when no file is configured.
func WriteRecordToFile(rec ResultRecord, cfg OutputConfig) (err error) {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = apperrors.WrapError(cerr, "failed to close output file")
		}
	}()

	if err := EncodeRecord(file, rec, cfg.Format); err != nil {
		return apperrors.WrapError(err, "failed to write result")
	}
	return nil
}

// WriteResultToFile saves a Fibonacci result to cfg.OutputFile.
func WriteResultToFile(result *big.Int, n uint64, duration time.Duration, algo string, cfg OutputConfig) error {
	return WriteRecordToFile(NewFibRecord(result, n, duration, algo, cfg.RunID), cfg)
}

// FormatQuietResult returns the bare decimal value, for scripting.
func FormatQuietResult(result *big.Int) string {
	return result.String()
}

func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// FormatQuietOperation returns "true"/"false" for parity and the scalar
// count for length.
func FormatQuietOperation(res orchestration.OperationResult) string {
	if res.Op == orchestration.OpEven {
		return strconv.FormatBool(res.Even)
	}
	return strconv.Itoa(res.Length)
}

// DisplayResultWithConfig prints a Fibonacci result according to cfg and
// saves it when an output file is configured.
func DisplayResultWithConfig(out io.Writer, result *big.Int, n uint64, duration time.Duration, algo string, details bool, cfg OutputConfig) error {
	switch {
	case cfg.Format != "" && cfg.Format != config.FormatText:
		if err := EncodeRecord(out, NewFibRecord(result, n, duration, algo, cfg.RunID), cfg.Format); err != nil {
			return err
		}
	case cfg.Quiet:
		DisplayQuietResult(out, result)
	default:
		DisplayResult(result, n, duration, cfg.Verbose, details, cfg.ShowValue, out)
	}
	if err := WriteResultToFile(result, n, duration, algo, cfg); err != nil {
		return err
	}
	announceSaved(out, cfg)
	return nil
}

// DisplayOperationWithConfig is DisplayResultWithConfig for parity and
// length results.
func DisplayOperationWithConfig(out io.Writer, res orchestration.OperationResult, details bool, cfg OutputConfig) error {
	rec := NewOperationRecord(res, cfg.RunID)
	switch {
	case cfg.Format != "" && cfg.Format != config.FormatText:
		if err := EncodeRecord(out, rec, cfg.Format); err != nil {
			return err
		}
	case cfg.Quiet:
		fmt.Fprintln(out, FormatQuietOperation(res))
	default:
		DisplayOperationResult(res, details, out)
	}
	if err := WriteRecordToFile(rec, cfg); err != nil {
		return err
	}
	announceSaved(out, cfg)
	return nil
}

func announceSaved(out io.Writer, cfg OutputConfig) {
	if cfg.OutputFile == "" || cfg.Quiet || (cfg.Format != "" && cfg.Format != config.FormatText) {
		return
	}
	fmt.Fprintf(out, "\n%s %s\n", ui.Colorize(ui.ColorGreen(), "✓ Result saved to:"),
		ui.Colorize(ui.ColorCyan(), cfg.OutputFile))
}
