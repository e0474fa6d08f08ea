package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/eventstream/pkg/eventstream"
)

// Default tracer name for decoder spans.
const defaultTracerName = "eventstream"

// TracerConfig configures a TracedDecoder.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "eventstream").
	TracerName string

	tracer trace.Tracer
}

// TracerOption configures a TracedDecoder.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// TracedDecoder wraps a StreamDecoder so every Feed/Decode pair runs inside
// an OpenTelemetry span carrying frame and resync counts. The tracer comes
// from the global provider; configure it in main() before decoding.
type TracedDecoder struct {
	dec    *eventstream.StreamDecoder
	tracer trace.Tracer
}

// NewTracedDecoder wraps dec with tracing.
func NewTracedDecoder(dec *eventstream.StreamDecoder, opts ...TracerOption) *TracedDecoder {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &TracedDecoder{dec: dec, tracer: config.tracer}
}

// Decoder returns the wrapped decoder.
func (t *TracedDecoder) Decoder() *eventstream.StreamDecoder {
	return t.dec
}

// Feed appends a chunk inside a span recording the chunk size.
func (t *TracedDecoder) Feed(ctx context.Context, chunk []byte) error {
	_, span := t.tracer.Start(ctx, "eventstream.feed", trace.WithAttributes(
		attribute.Int("eventstream.chunk_bytes", len(chunk)),
	))
	defer span.End()

	if err := t.dec.Feed(chunk); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Decode drains completable frames inside a span recording how many frames
// were yielded and how many resync bytes this call cost.
func (t *TracedDecoder) Decode(ctx context.Context) ([]*eventstream.Frame, error) {
	_, span := t.tracer.Start(ctx, "eventstream.decode")
	defer span.End()

	before := t.dec.Stats()
	frames, err := t.dec.Decode()
	after := t.dec.Stats()

	span.SetAttributes(
		attribute.Int("eventstream.frames", len(frames)),
		attribute.Int64("eventstream.resync_skips", after.ResyncSkips-before.ResyncSkips),
		attribute.Int("eventstream.buffered_bytes", t.dec.Buffered()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return frames, err
	}
	return frames, nil
}
