package domain

import (
	"context"
)

// Logger is the structured logging port. Implementations take the
// context first so request-scoped identifiers (request ID, session ID,
// user ID) can be pulled into every entry. Fields are alternating
// key-value pairs to keep the interface backend-agnostic.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...any)
	Info(ctx context.Context, msg string, fields ...any)
	Warn(ctx context.Context, msg string, fields ...any)
	Error(ctx context.Context, msg string, fields ...any)
	Fatal(ctx context.Context, msg string, fields ...any)

	// With creates a child logger carrying the given fields.
	With(fields ...any) Logger
}
