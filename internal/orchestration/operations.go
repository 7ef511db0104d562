package orchestration

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/numeric"
)

// Operation names used in results, metrics and spans.
const (
	OpFib  = "fib"
	OpEven = "even"
	OpLen  = "len"
)

// RunParity tests v for evenness.
func RunParity(ctx context.Context, v int64, opts ...Option) OperationResult {
	o := buildOptions(opts)
	_, span := o.tracer.Start(ctx, "IsEven", trace.WithAttributes(attribute.Int64("parity.value", v)))

	start := time.Now()
	even := numeric.IsEven(v)
	elapsed := time.Since(start)

	input := strconv.FormatInt(v, 10)
	span.SetAttributes(attribute.Bool("parity.even", even))
	endSpan(span, nil)
	o.observe(OpEven, "modulo", elapsed, nil)
	o.logger.Debug("parity checked", logging.String("value", input), logging.Bool("even", even))

	return OperationResult{Op: OpEven, Input: input, Even: even, Duration: elapsed}
}

// RunStringLength counts the scalar values of text and gathers its stats.
func RunStringLength(ctx context.Context, text string, opts ...Option) OperationResult {
	o := buildOptions(opts)
	_, span := o.tracer.Start(ctx, "StringLength", trace.WithAttributes(attribute.Int("text.bytes", len(text))))

	start := time.Now()
	length := numeric.StringLength(text)
	stats := numeric.Stats(text)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("text.scalars", length))
	endSpan(span, nil)
	o.observe(OpLen, "scalars", elapsed, nil)
	o.logger.Debug("length measured", logging.Int("bytes", stats.Bytes), logging.Int("scalars", length))

	return OperationResult{Op: OpLen, Input: text, Length: length, Stats: stats, Duration: elapsed}
}
