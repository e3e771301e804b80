package ratelimit

import "time"

// Config: квоты из окружения. Переменные: MOMENTUM_RATELIMIT_GLOBAL_LIMIT и т.д.
type Config struct {
	GlobalLimit   int           `envconfig:"GLOBAL_LIMIT" default:"120"`
	GlobalWindow  time.Duration `envconfig:"GLOBAL_WINDOW" default:"1m"`
	ReadLimit     int           `envconfig:"READ_LIMIT" default:"60"`
	ReadWindow    time.Duration `envconfig:"READ_WINDOW" default:"1m"`
	ComputeLimit  int           `envconfig:"COMPUTE_LIMIT" default:"20"`
	ComputeWindow time.Duration `envconfig:"COMPUTE_WINDOW" default:"1m"`
	SweepCron     string        `envconfig:"SWEEP_CRON" default:"@every 5m"`
}

// Quotas раскладывает конфиг на глобальную квоту и квоты классов.
func (c Config) Quotas() (Quota, map[Class]Quota) {
	return Quota{Limit: c.GlobalLimit, Window: c.GlobalWindow}, map[Class]Quota{
		ClassRead:    {Limit: c.ReadLimit, Window: c.ReadWindow},
		ClassCompute: {Limit: c.ComputeLimit, Window: c.ComputeWindow},
	}
}
