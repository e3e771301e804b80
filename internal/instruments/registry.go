// Package instruments: реестр инструментов из YAML. По умолчанию встроенный список, можно
// подменить файлом (MOMENTUM_INSTRUMENTS_FILE).
package instruments

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

var _ ports.IInstrumentRegistry = (*Registry)(nil)

//go:embed default.yaml
var defaultYAML []byte

// Config: путь к файлу реестра. Пусто: встроенный список.
type Config struct {
	File string `envconfig:"FILE" default:""`
}

type document struct {
	Instruments []domain.Instrument `yaml:"instruments"`
}

// Registry: неизменяемый реестр в памяти.
type Registry struct {
	list   []domain.Instrument
	byTick map[string]domain.Instrument
}

// Load читает реестр из файла по конфигу или из встроенного списка.
func Load(cfg Config) (*Registry, error) {
	data := defaultYAML
	if cfg.File != "" {
		b, err := os.ReadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("read instruments: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse разбирает YAML-документ реестра. Тикеры нормализуются, дубликаты запрещены.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse instruments: %w", err)
	}
	return New(doc.Instruments)
}

// New собирает реестр из списка.
func New(list []domain.Instrument) (*Registry, error) {
	r := &Registry{byTick: make(map[string]domain.Instrument, len(list))}
	for _, inst := range list {
		inst.Ticker = domain.NormalizeTicker(inst.Ticker)
		if inst.Ticker == "" {
			return nil, fmt.Errorf("instruments: empty ticker")
		}
		if _, dup := r.byTick[inst.Ticker]; dup {
			return nil, fmt.Errorf("instruments: duplicate ticker %q", inst.Ticker)
		}
		r.byTick[inst.Ticker] = inst
		r.list = append(r.list, inst)
	}
	return r, nil
}

// All возвращает копию полного списка в исходном порядке.
func (r *Registry) All() []domain.Instrument {
	out := make([]domain.Instrument, len(r.list))
	copy(out, r.list)
	return out
}

func (r *Registry) Lookup(_ context.Context, ticker string) (domain.Instrument, bool, error) {
	inst, ok := r.byTick[domain.NormalizeTicker(ticker)]
	return inst, ok, nil
}

func (r *Registry) Hot(context.Context) ([]domain.Instrument, error) {
	var hot []domain.Instrument
	for _, inst := range r.list {
		if inst.Hot {
			hot = append(hot, inst)
		}
	}
	return hot, nil
}

func (r *Registry) Ping(context.Context) error { return nil }
