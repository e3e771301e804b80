package click

import (
	"context"
	"fmt"

	"momentumRider/internal/domain"
	"momentumRider/internal/ports"
)

var _ ports.IScoreAnalytics = (*ScoreWriter)(nil)

const scoresTable = "momentum_scores"

// ScoreWriter пишет рассчитанные скоры в ClickHouse: одна строка на горизонт, чтобы считать
// распределения доходностей через GROUP BY horizon.
type ScoreWriter struct {
	db *Client
}

// NewScoreWriter создаёт писатель скоров.
func NewScoreWriter(db *Client) *ScoreWriter {
	return &ScoreWriter{db: db}
}

// EnsureTable создаёт таблицу скоров, если её ещё нет. Вызови один раз при старте приложения.
// ReplacingMergeTree по event_id схлопывает повторно доставленные события.
func (w *ScoreWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			event_id UUID,
			ticker LowCardinality(String),
			horizon_set LowCardinality(String),
			horizon LowCardinality(String),
			return_pct Decimal(18, 2),
			composite_score Decimal(18, 2),
			approximate Bool,
			computed_at DateTime64(3)
		) ENGINE = ReplacingMergeTree()
		ORDER BY (ticker, computed_at, event_id, horizon)
		PARTITION BY toYYYYMM(computed_at)`,
		scoresTable,
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteScore пишет событие одной транзакцией (batch на стороне драйвера).
func (w *ScoreWriter) WriteScore(ctx context.Context, ev domain.ScoreEvent) error {
	tx, err := w.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (event_id, ticker, horizon_set, horizon, return_pct, composite_score, approximate, computed_at)",
		scoresTable))
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for horizon, ret := range ev.HorizonReturns {
		_, err := stmt.ExecContext(ctx,
			ev.ID, ev.Ticker, ev.HorizonSet, horizon, ret, ev.CompositeScore, ev.Approximate, ev.ComputedAt)
		if err != nil {
			return fmt.Errorf("insert score %s/%s: %w", ev.Ticker, horizon, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit score: %w", err)
	}
	return nil
}
