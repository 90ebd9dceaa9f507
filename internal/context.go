package internal

import (
	"context"
	"time"
)

type ctxKey string

// ContextCallerKey holds the network identity of the caller, as resolved
// by the transport layer. Services trust it; authenticating it is the
// transport's problem.
const ContextCallerKey ctxKey = "callerNetworkID"

func CallerFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if networkID, ok := ctx.Value(ContextCallerKey).(string); ok {
		return networkID
	}
	return ""
}

func ContextWithCaller(ctx context.Context, networkID string) context.Context {
	return context.WithValue(ctx, ContextCallerKey, networkID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
