package logger

import (
	"context"
	"log/slog"
)

type contextAttrsKey struct{}

// ContextWithAttrs attaches attrs to the context so every record logged with
// that context carries them (request IDs and the like).
func ContextWithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing := attrsFromContext(ctx)
	merged := make([]slog.Attr, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, contextAttrsKey{}, merged)
}

func attrsFromContext(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(contextAttrsKey{}).([]slog.Attr)
	return attrs
}
