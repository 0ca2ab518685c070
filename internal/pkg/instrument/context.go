package instrument

import "context"

type contextKey string

const correlationIDKey contextKey = "instrument.correlation_id"

// SetCorrelationID returns a copy of ctx carrying the request correlation id.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// GetCorrelationID returns the correlation id stored in ctx, or an empty
// string when none is set.
func GetCorrelationID(ctx context.Context) string {
	id, ok := ctx.Value(correlationIDKey).(string)
	if !ok {
		return ""
	}

	return id
}
