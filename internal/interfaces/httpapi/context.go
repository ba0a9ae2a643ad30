package httpapi

import (
	"context"

	"github.com/riskibarqy/pokedex-api/internal/platform/logging"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// withRequestID stores the id and tags every context-aware log line with it.
func withRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDContextKey, requestID)
	return logging.ContextWith(ctx, "request_id", requestID)
}

func requestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDContextKey).(string)
	return v
}
