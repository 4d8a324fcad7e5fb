package logger

import (
	"io"
	"os"
	"strings"

	"gophvault/internal/app/client/config"
	"gophvault/internal/utils/logger/handlers/slogpretty"

	"golang.org/x/exp/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New создает логгер по окружению: local - цветной вывод, dev - JSON с DEBUG, prod - JSON с INFO
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return setupPrettySlog()
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// FromConfig учитывает LOG_LEVEL и LOG_FILE. В файл пишется JSON с ротацией.
func FromConfig(cfg *config.Config) *slog.Logger {
	if cfg.LogFile == "" && cfg.LogLevel == "" {
		return New(cfg.Env)
	}

	level := parseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		if cfg.IsLocal() {
			return newPretty(os.Stderr, level)
		}
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(slog.NewJSONHandler(rotating(cfg.LogFile), &slog.HandlerOptions{Level: level}))
}

func rotating(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupPrettySlog() *slog.Logger {
	return newPretty(os.Stderr, slog.LevelDebug)
}

func newPretty(out io.Writer, level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}
	return slog.New(opts.NewPrettyHandler(out))
}
