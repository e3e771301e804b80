package app

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"momentumRider/internal/api/http"
	"momentumRider/internal/cache"
	"momentumRider/internal/infrastructure/click"
	"momentumRider/internal/infrastructure/kafka"
	"momentumRider/internal/infrastructure/local"
	"momentumRider/internal/infrastructure/pg"
	"momentumRider/internal/infrastructure/redis"
	"momentumRider/internal/infrastructure/yahoo"
	"momentumRider/internal/instruments"
	"momentumRider/internal/pkg/logger"
	"momentumRider/internal/ratelimit"
	"momentumRider/internal/usecase/momentum"
)

const AppName = "MOMENTUM"

// Config: конфиг приложения. Заполняется через envconfig с префиксом MOMENTUM, например
// MOMENTUM_SERVER_PORT, MOMENTUM_REDIS_HOST. Пустые адреса Redis, БД, Kafka и ClickHouse выключают
// соответствующую инфраструктуру.
type Config struct {
	Log         logger.Config      `envconfig:"LOG"`
	Server      http.ServerConfig  `envconfig:"SERVER"`
	Cache       cache.Config       `envconfig:"CACHE"`
	Redis       redis.Config       `envconfig:"REDIS"`
	Local       local.Config       `envconfig:"LOCAL"`
	RateLimit   ratelimit.Config   `envconfig:"RATELIMIT"`
	Prices      yahoo.Config       `envconfig:"PRICES"`
	Instruments instruments.Config `envconfig:"INSTRUMENTS"`
	Score       momentum.Config    `envconfig:"SCORE"`
	DB          pg.Config          `envconfig:"DB"`
	Kafka       kafka.Config       `envconfig:"KAFKA"`
	ClickHouse  click.Config       `envconfig:"CLICKHOUSE"`
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), если он есть, затем заполняет структуру
// из окружения (envconfig).
func LoadCfg() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем окружение: %v", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
