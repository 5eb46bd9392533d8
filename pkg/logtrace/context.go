package logtrace

import "context"

type ctxKey string

const (
	// CorrelationIDKey carries the id that ties together all log lines of one operation.
	CorrelationIDKey ctxKey = "correlation_id"
	// OriginKey names the phase of the operation that emitted the line.
	OriginKey ctxKey = "origin"
)

// CtxWithCorrelationID returns a new context carrying the correlation id.
func CtxWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

// CtxWithOrigin returns a new context carrying the origin.
func CtxWithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, OriginKey, origin)
}

// CorrelationIDFromContext returns the correlation id or "unknown".
func CorrelationIDFromContext(ctx context.Context) string {
	return extractString(ctx, CorrelationIDKey)
}

// OriginFromContext returns the origin or "unknown".
func OriginFromContext(ctx context.Context) string {
	return extractString(ctx, OriginKey)
}

func extractString(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return "unknown"
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
