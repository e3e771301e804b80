// Package httputil: HTTP-запросы с повторами и экспоненциальной задержкой.
package httputil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type RetryConfig struct {
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	BaseDelay   time.Duration `envconfig:"BASE_DELAY" default:"500ms"`
	MaxDelay    time.Duration `envconfig:"MAX_DELAY" default:"5s"`
}

var DefaultRetry = RetryConfig{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	MaxDelay:    5 * time.Second,
}

// Do выполняет запрос с повторами на ошибках транспорта и ответах 5xx/429.
// buildReq вызывается на каждую попытку: тело запроса одноразовое.
// Ответ с кодом < 500 (кроме 429) возвращается как есть, тело закрывает вызывающий.
func Do(ctx context.Context, client *http.Client, cfg RetryConfig, log *slog.Logger, buildReq func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultRetry.MaxAttempts
	}
	if log == nil {
		log = slog.Default()
	}

	var lastErr error
	delay := cfg.BaseDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		req, err := buildReq(ctx)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := client.Do(req)
		if err == nil && !retryable(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		} else {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		log.Debug("http attempt failed, retrying",
			"attempt", attempt, "max", cfg.MaxAttempts, "delay", delay, "error", lastErr)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return nil, fmt.Errorf("all %d attempts failed, last error: %w", cfg.MaxAttempts, lastErr)
}

func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}
