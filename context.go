package llmsdoc

import "context"

type requestIDKey struct{}

// NewRequestContext returns a copy of ctx carrying a request id.
func NewRequestContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
