package ports

//go:generate mockgen -source=cache.go -destination=../mocks/cache_mock.go -package=mocks

import (
	"context"
	"time"

	"momentumRider/internal/domain"
)

// ICacheTier: один уровень кэша. Значение: сериализованный payload, ttl обязателен.
// Отсутствие ключа не ошибка: found == false.
type ICacheTier interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IDistributedCache: распределённый уровень (Redis). Ping для health check.
type IDistributedCache interface {
	ICacheTier
	Ping(ctx context.Context) error
}

// Loader считает значение для ключа при промахе или прогреве.
type Loader func(ctx context.Context, key string) ([]byte, error)

// ITieredCache: двухуровневый кэш с защитой от stampede, прогревом и health check.
type ITieredCache interface {
	GetOrLoad(ctx context.Context, key string, load Loader) (value []byte, hit bool, err error)
	Invalidate(ctx context.Context, key string) error
	Warm(ctx context.Context, keys []string, load Loader) int
	HealthCheck(ctx context.Context) domain.CacheHealth
}
