package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"momentumRider/internal/ports"
)

var _ ports.IDistributedCache = (*Cache)(nil)

// Cache реализует распределённый уровень кэша. Значение хранится как есть, TTL выставляется на SET.
type Cache struct {
	cli *Client
	log *slog.Logger
}

// NewCache возвращает распределённый уровень поверх клиента.
func NewCache(cli *Client, log *slog.Logger) *Cache {
	return &Cache{cli: cli, log: log}
}

// Get возвращает значение по ключу. Если ключа нет, found == false.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.cli.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		c.log.Debug("redis get failed", "key", key, "error", err)
		return nil, false, err
	}
	return b, true, nil
}

// Set сохраняет значение с TTL. Существующий ключ перезаписывается, TTL обновляется.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.cli.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Debug("redis set failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Delete удаляет ключ. Отсутствующий ключ не ошибка.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.cli.Del(ctx, key).Err()
}

// Ping проверяет доступность Redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.cli.Ping(ctx)
}
