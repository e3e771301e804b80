// Package logger: slog-логгер сервиса. Пишет в файл и в stderr одновременно.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config: настройки логирования. Переменные: MOMENTUM_LOG_LEVEL, MOMENTUM_LOG_FILE, MOMENTUM_LOG_FORMAT.
// Пустой File: только stderr.
type Config struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	File   string `envconfig:"FILE" default:"app.log"`
	Format string `envconfig:"FORMAT" default:"text"` // text | json
}

// logWriter открывает файл лога и возвращает writer в файл + stderr.
// При ошибке открытия файла возвращает только stderr.
func logWriter(file string) io.Writer {
	if file == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr
	}
	return io.MultiWriter(f, os.Stderr)
}

// ParseLevel разбирает уровень (debug, info, warn, error). Неизвестный уровень: info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New возвращает логгер по конфигу.
func New(cfg Config) *slog.Logger {
	return newLogger(logWriter(cfg.File), cfg)
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
