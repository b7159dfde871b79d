package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultLocalDBName = "blackjack_local.db"

type SQLiteService struct {
	db          *sql.DB
	recentLimit int
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	dbPath := strings.TrimSpace(os.Getenv("LOCAL_DB_PATH"))
	if dbPath == "" {
		dbPath = defaultLocalDBName
	}
	return NewSQLiteService(dbPath)
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS round_history (
    id           TEXT PRIMARY KEY,
    table_id     TEXT NOT NULL,
    round        INTEGER NOT NULL,
    winners      TEXT NOT NULL,
    pushes       TEXT NOT NULL,
    losers       TEXT NOT NULL,
    dealer_total INTEGER NOT NULL,
    played_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_round_history_played_at ON round_history (played_at DESC);
`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteService{
		db:          db,
		recentLimit: envIntOrDefault("HISTORY_RECENT_LIMIT", defaultRecentLimit),
	}, nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) RecordRound(ctx context.Context, rec RoundRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO round_history (id, table_id, round, winners, pushes, losers, dealer_total, played_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING
`, rec.ID, rec.TableID, rec.Round, rec.Winners, rec.Pushes, rec.Losers, rec.DealerTotal, rec.PlayedAt.UTC())
	return err
}

func (s *SQLiteService) ListRecent(ctx context.Context, limit int) ([]RoundRecord, error) {
	limit = clampLimit(limit, s.recentLimit)
	rows, err := s.db.QueryContext(ctx, `
SELECT id, table_id, round, winners, pushes, losers, dealer_total, played_at
FROM round_history
ORDER BY played_at DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoundRecords(rows)
}

func scanRoundRecords(rows *sql.Rows) ([]RoundRecord, error) {
	out := []RoundRecord{}
	for rows.Next() {
		var rec RoundRecord
		if err := rows.Scan(&rec.ID, &rec.TableID, &rec.Round, &rec.Winners,
			&rec.Pushes, &rec.Losers, &rec.DealerTotal, &rec.PlayedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
