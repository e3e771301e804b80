package cache

import "time"

// Config: настройки кэш-сервиса. Переменные: MOMENTUM_CACHE_TTL, MOMENTUM_CACHE_TIMEOUT и т.д.
// TTL фиксирован конфигом и не зависит от запроса.
type Config struct {
	TTL             time.Duration `envconfig:"TTL" default:"15m"`
	Timeout         time.Duration `envconfig:"TIMEOUT" default:"250ms"`
	LoadTimeout     time.Duration `envconfig:"LOAD_TIMEOUT" default:"20s"`
	WarmConcurrency int           `envconfig:"WARM_CONCURRENCY" default:"4"`
	WarmOnStart     bool          `envconfig:"WARM_ON_START" default:"true"`
	WarmCron        string        `envconfig:"WARM_CRON" default:"@every 10m"`
	HealthCron      string        `envconfig:"HEALTH_CRON" default:"@every 30s"`
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = 15 * time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 250 * time.Millisecond
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = 20 * time.Second
	}
	if c.WarmConcurrency <= 0 {
		c.WarmConcurrency = 4
	}
	return c
}
