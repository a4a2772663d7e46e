// Package logging defines the structured-logging interface used by the
// client core and its slog and zap backends.
package logging

import (
	"context"
	"fmt"
	"io"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Warn(ctx, "request rejected", "status", 401, "path", "/auth/me")
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}

// Supported values for New's format argument.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatZap  = "zap"
)

// New builds a Logger writing to w in the requested format. Text and JSON
// use log/slog handlers; "zap" uses a zap production encoder.
func New(format string, w io.Writer) (Logger, error) {
	switch format {
	case "", FormatText:
		return newSlogTo(w, false), nil
	case FormatJSON:
		return newSlogTo(w, true), nil
	case FormatZap:
		return NewZapLoggerTo(w), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
