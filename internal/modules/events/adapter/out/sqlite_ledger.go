package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mindgate/internal/modules/events/domain"
	eventsout "mindgate/internal/modules/events/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteLedger struct {
	db *sql.DB
}

func NewSQLiteLedger(dbPath string) (eventsout.Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	ledger := &SQLiteLedger{db: db}
	if err := ledger.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return ledger, nil
}

func (l *SQLiteLedger) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  kind TEXT NOT NULL,
  target_id TEXT,
  intention_id TEXT,
  detail TEXT,
  at TEXT NOT NULL
);
`
	if _, err := l.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) Append(ctx context.Context, event domain.Event) error {
	const stmt = `INSERT INTO events (kind, target_id, intention_id, detail, at) VALUES (?, ?, ?, ?, ?)`
	_, err := l.db.ExecContext(ctx, stmt,
		string(event.Kind),
		event.TargetID,
		event.IntentionID,
		event.Detail,
		event.At.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) Tail(ctx context.Context, limit int) ([]domain.Event, error) {
	const query = `SELECT kind, target_id, intention_id, detail, at FROM events ORDER BY id DESC LIMIT ?`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var kind, targetID, intentionID, detail, at string
		if err := rows.Scan(&kind, &targetID, &intentionID, &detail, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("parse event time: %w", err)
		}
		events = append(events, domain.Event{
			Kind:        domain.Kind(kind),
			TargetID:    targetID,
			IntentionID: intentionID,
			Detail:      detail,
			At:          parsed,
		})
	}
	return events, rows.Err()
}
