// Package middleware provides HTTP middleware for the Gin server.
package middleware

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ctxKeyRequestID stores the request ID in context.Context.
const ctxKeyRequestID contextKey = "request_id"

// RequestIDFromContext extracts the request ID from context.Context.
// Returns empty string if not set or if ctx is nil. Client adapters use this
// to propagate the id to the notifier daemon.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if id, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return id
	}

	return ""
}

// ContextWithRequestID stores a request ID in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}
