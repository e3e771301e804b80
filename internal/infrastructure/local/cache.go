// Package local: локальный уровень кэша в памяти процесса (ristretto). Используется, когда Redis не
// настроен или недоступен.
package local

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"momentumRider/internal/ports"
)

var _ ports.ICacheTier = (*Cache)(nil)

// Config: лимиты локального кэша. Стоимость записи равна длине значения в байтах.
type Config struct {
	MaxCostBytes int64 `envconfig:"MAX_COST_BYTES" default:"67108864"`
	NumCounters  int64 `envconfig:"NUM_COUNTERS" default:"100000"`
}

// Cache реализует уровень кэша поверх ristretto.
type Cache struct {
	c *ristretto.Cache
}

// New создаёт локальный кэш.
func New(cfg Config) (*Cache, error) {
	if cfg.MaxCostBytes <= 0 {
		cfg.MaxCostBytes = 64 << 20
	}
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = 1e5
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        cfg.NumCounters,
		MaxCost:            cfg.MaxCostBytes,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto: %w", err)
	}
	return &Cache{c: c}, nil
}

// Get возвращает значение по ключу. Просроченная запись считается отсутствующей.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("local cache: unexpected value type %T", v)
	}
	return b, true, nil
}

// Set сохраняет значение с TTL. Запись видна сразу после возврата.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.c.SetWithTTL(key, value, int64(len(value))+1, ttl) {
		return fmt.Errorf("local cache: set %q rejected", key)
	}
	c.c.Wait()
	return nil
}

// Delete удаляет ключ.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.c.Del(key)
	return nil
}

// Close останавливает фоновые горутины ristretto.
func (c *Cache) Close() {
	c.c.Close()
}
