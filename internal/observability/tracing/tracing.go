package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type traceID struct{}

// InjectTraceID attaches a fresh trace id to ctx and to the logger returned by log.Ctx.
func InjectTraceID(ctx context.Context) context.Context {
	id := uuid.New().String()
	logger := log.With().Str("traceId", id).Logger()
	ctx = context.WithValue(ctx, traceID{}, id)
	return logger.WithContext(ctx)
}

func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceID{}).(string)
	return id
}
