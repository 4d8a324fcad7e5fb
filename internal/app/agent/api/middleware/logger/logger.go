package logger

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Logger пишет по записи на каждый запрос к агенту.
// 5xx логируются как ошибки, 4xx как предупреждения.
type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{
		log: log.With(slog.String("component", "http_logger")),
	}
}

func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)

		status := ctx.Status()
		attrs := []any{
			slog.String("op", ctx.Operation().OperationID),
			slog.String("method", ctx.Method()),
			slog.String("path", ctx.URL().Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}

		switch {
		case status >= 500:
			l.log.ErrorContext(ctx.Context(), "HTTP request", attrs...)
		case status >= 400:
			l.log.WarnContext(ctx.Context(), "HTTP request", attrs...)
		default:
			l.log.DebugContext(ctx.Context(), "HTTP request", attrs...)
		}
	}
}
