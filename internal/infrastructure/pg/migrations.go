package pg

import (
	"context"
)

const createInstrumentsTable = `
CREATE TABLE IF NOT EXISTS instruments (
	ticker     VARCHAR(16) PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	hot        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate создаёт таблицу instruments, если её ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, createInstrumentsTable)
	return err
}
