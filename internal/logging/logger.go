// Package logging defines the structured logger the rest of the server
// depends on, so packages never import a concrete logging backend.
package logging

import "context"

// Logger accepts a message plus alternating key/value attributes:
//
//	log.Info(ctx, "listening", "addr", addr)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a derived logger carrying the given attributes on
	// every subsequent record.
	With(args ...any) Logger
}
