package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config: настройки подключения к Redis. Пустой Host означает, что распределённый кэш не настроен
// и сервис работает только на локальном уровне.
type Config struct {
	Host     string        `envconfig:"HOST" default:""`
	Port     string        `envconfig:"PORT" default:"6379"`
	Password string        `envconfig:"PASSWORD" default:""`
	DB       int           `envconfig:"DB" default:"0"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"250ms"`
}

// Configured: задан ли адрес Redis.
func (c *Config) Configured() bool {
	return c.Host != ""
}

// Addr возвращает адрес "host:port".
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Client: обёртка над redis.Client.
type Client struct {
	*redis.Client
}

// New создаёт клиента по конфигу. Соединение ленивое: недоступный при старте Redis не роняет
// приложение, его состояние определяет health check кэша.
func New(cfg *Config) *Client {
	cli := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		MaxRetries:   -1,
	})
	return &Client{Client: cli}
}

// Close закрывает соединение.
func (c *Client) Close() error {
	return c.Client.Close()
}

// Ping проверяет соединение.
func (c *Client) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
