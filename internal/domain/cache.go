package domain

import "time"

// CacheTier: уровень кэша.
type CacheTier string

const (
	TierDistributed CacheTier = "distributed"
	TierFallback    CacheTier = "fallback"
)

// CacheEntry: запись кэша. Value: сериализованный JSON.
type CacheEntry struct {
	Key   string
	Value []byte
	TTL   time.Duration
	Tier  CacheTier
}

// CacheStatus: результат health check распределённого уровня.
type CacheStatus string

const (
	CacheHealthy     CacheStatus = "healthy"
	CacheDegraded    CacheStatus = "degraded"
	CacheUnreachable CacheStatus = "unreachable"
)

// CacheHealth: состояние кэша. Tier показывает, какой уровень сейчас обслуживает операции.
type CacheHealth struct {
	Status     CacheStatus `json:"status"`
	Tier       CacheTier   `json:"tier"`
	Configured bool        `json:"configured"`
	CheckedAt  time.Time   `json:"checkedAt"`
}
