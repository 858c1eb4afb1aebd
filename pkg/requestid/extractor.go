package requestid

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a logger.ContextExtractor that adds "request_id"
// to every record logged with a request context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
