package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

var _ ports.IInstrumentRegistry = (*InstrumentRepo)(nil)

// InstrumentRepo: реестр инструментов в PostgreSQL.
type InstrumentRepo struct {
	db  *DB
	log *slog.Logger
}

// NewInstrumentRepo возвращает репозиторий инструментов.
func NewInstrumentRepo(db *DB, log *slog.Logger) *InstrumentRepo {
	return &InstrumentRepo{db: db, log: log}
}

// SeedIfEmpty заполняет пустую таблицу списком. Непустая таблица не трогается.
// Возвращает число вставленных строк.
func (r *InstrumentRepo) SeedIfEmpty(ctx context.Context, list []domain.Instrument) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM instruments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count instruments: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, inst := range list {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO instruments (ticker, name, hot) VALUES ($1, $2, $3)
			 ON CONFLICT (ticker) DO NOTHING`,
			domain.NormalizeTicker(inst.Ticker), inst.Name, inst.Hot)
		if err != nil {
			return 0, fmt.Errorf("insert instrument %s: %w", inst.Ticker, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	r.log.Info("instruments seeded", "count", len(list))
	return len(list), nil
}

// Lookup ищет инструмент по тикеру.
func (r *InstrumentRepo) Lookup(ctx context.Context, ticker string) (domain.Instrument, bool, error) {
	var inst domain.Instrument
	err := r.db.QueryRowContext(ctx,
		`SELECT ticker, name, hot FROM instruments WHERE ticker = $1`,
		domain.NormalizeTicker(ticker)).Scan(&inst.Ticker, &inst.Name, &inst.Hot)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Instrument{}, false, nil
	}
	if err != nil {
		r.log.Debug("Lookup failed", "ticker", ticker, "error", err)
		return domain.Instrument{}, false, err
	}
	return inst, true, nil
}

// Hot возвращает инструменты для прогрева кэша, по тикеру.
func (r *InstrumentRepo) Hot(ctx context.Context) ([]domain.Instrument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ticker, name, hot FROM instruments WHERE hot ORDER BY ticker`)
	if err != nil {
		r.log.Debug("Hot failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var list []domain.Instrument
	for rows.Next() {
		var inst domain.Instrument
		if err := rows.Scan(&inst.Ticker, &inst.Name, &inst.Hot); err != nil {
			return nil, err
		}
		list = append(list, inst)
	}
	return list, rows.Err()
}

// Ping проверяет доступность БД (readiness).
func (r *InstrumentRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
