package plansearch

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Options defines parameters for the engine.
type Options struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger used for layer and completion messages.
// The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithTracerProvider sets the provider of the tracer that wraps each Plan
// call in a span. The default is the global provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(options *Options) { options.TracerProvider = provider }
}

func defaultOptions() Options {
	return Options{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		TracerProvider: otel.GetTracerProvider(),
	}
}
