package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// With creates a child logger with additional fields and returns a new context
func With(ctx context.Context, fields map[string]any) context.Context {
	childCtx := FromContext(ctx).With()
	for k, v := range fields {
		childCtx = childCtx.Interface(k, v)
	}
	return WithContext(ctx, childCtx.Logger())
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	return withStr(ctx, "component", component)
}

// WithEngineID tags every record of one engine instance.
func WithEngineID(ctx context.Context, engineID string) context.Context {
	return withStr(ctx, "engine_id", engineID)
}

// WithPanelID creates a child logger with a panel_id field
func WithPanelID(ctx context.Context, panelID string) context.Context {
	return withStr(ctx, "panel_id", panelID)
}

// WithContentID creates a child logger with a content_id field
func WithContentID(ctx context.Context, contentID string) context.Context {
	return withStr(ctx, "content_id", contentID)
}

func withStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str(key, value).Logger()
	return WithContext(ctx, childLogger)
}
