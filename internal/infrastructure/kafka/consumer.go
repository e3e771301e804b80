package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

// Consumer: обёртка над kafka.Reader, декодирует сообщения в domain.ScoreEvent и вызывает use case.
type Consumer struct {
	r   reader
	uc  ports.IMomentumUseCase
	log *slog.Logger
}

type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewConsumer создаёт консьюмера по конфигу, use case и логгеру. После использования вызови Close().
func NewConsumer(cfg *Config, uc ports.IMomentumUseCase, log *slog.Logger) *Consumer {
	c := New(cfg).Consumer()
	c.uc = uc
	c.log = log
	return c
}

// Run в цикле читает сообщения, декодирует JSON в domain.ScoreEvent, вызывает uc.HandleScoreEvent
// и коммитит при успехе. Битое сообщение коммитится и пропускается. Выход по отмене ctx или
// при ошибке чтения.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		var ev domain.ScoreEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.log.Warn("kafka unmarshal error, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			_ = c.r.CommitMessages(ctx, msg)
			continue
		}

		if err := c.uc.HandleScoreEvent(ctx, ev); err != nil {
			c.log.Warn("kafka handle error, will redeliver", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			continue
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
