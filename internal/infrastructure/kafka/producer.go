package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

var _ ports.IProducer = (*Producer)(nil)

// Заголовки события о расчёте. Консьюмеры могут фильтровать по ним, не разбирая тело.
const (
	HeaderEventID    = "event-id"
	HeaderHorizonSet = "horizon-set"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события о расчётах скоров в топик.
type Producer struct {
	w writer
}

// NewProducer создаёт продюсера по конфигу. После использования вызови Close().
func NewProducer(cfg *Config) *Producer {
	return New(cfg).Producer()
}

// PublishScore отправляет событие одним сообщением. Ключ: тикер, поэтому события одного
// инструмента попадают в одну партицию и читаются по порядку расчёта.
func (p *Producer) PublishScore(ctx context.Context, ev domain.ScoreEvent) error {
	msg, err := scoreMessage(ev)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish %s: %w", ev.Ticker, err)
	}
	return nil
}

func scoreMessage(ev domain.ScoreEvent) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("score event marshal: %w", err)
	}
	return kafka.Message{
		Key:   []byte(ev.Ticker),
		Value: value,
		Time:  ev.ComputedAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(ev.ID.String())},
			{Key: HeaderHorizonSet, Value: []byte(ev.HorizonSet)},
		},
	}, nil
}

// Close закрывает продюсера.
func (p *Producer) Close() error {
	return p.w.Close()
}
