package llm

import (
	"context"
	"time"

	"medquiz/internal/domain"
	"medquiz/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "medquiz/internal/adapter/llm"

// TracingGenerator is a decorator that records a span and a debug log line
// for every call to the wrapped backend.
type TracingGenerator struct {
	inner domain.TextGenerator
}

// WithTracing wraps a TextGenerator with tracing.
func WithTracing(g domain.TextGenerator) domain.TextGenerator {
	return &TracingGenerator{inner: g}
}

func (t *TracingGenerator) Name() string {
	return t.inner.Name()
}

func (t *TracingGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "provider.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("provider.name", t.inner.Name()),
		attribute.Int("request.max_tokens", req.MaxTokens),
		attribute.Float64("request.temperature", req.Temperature),
		attribute.Int("request.user_chars", len(req.User)),
	)

	start := time.Now()
	text, err := t.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
	} else {
		span.SetAttributes(attribute.Int("response.chars", len(text)))
	}

	logger.Get().Debug("Provider call finished",
		zap.String("provider", t.inner.Name()),
		zap.Duration("duration", elapsed),
		zap.Bool("success", err == nil),
	)
	return text, err
}
