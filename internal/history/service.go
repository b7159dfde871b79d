// Package history persists per-round outcome records. Like the ledger
// in other deployments it is strictly best-effort: a failed write is
// logged and never blocks or corrupts the table.
package history

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultRecentLimit = 100

// RoundRecord is one finished round.
type RoundRecord struct {
	ID          string    `json:"id"`
	TableID     string    `json:"table_id"`
	Round       int       `json:"round"`
	Winners     string    `json:"winners"`
	Pushes      string    `json:"pushes"`
	Losers      string    `json:"losers"`
	DealerTotal int       `json:"dealer_total"`
	PlayedAt    time.Time `json:"played_at"`
}

type Service interface {
	Close() error
	RecordRound(ctx context.Context, rec RoundRecord) error
	ListRecent(ctx context.Context, limit int) ([]RoundRecord, error)
}

const (
	ModeMemory   = "memory"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

// NewServiceFromEnv builds the store selected by HISTORY_MODE. The
// default is the in-memory noop so the server runs with no database at
// hand.
func NewServiceFromEnv() (Service, string, error) {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("HISTORY_MODE")))
	switch mode {
	case "", ModeMemory, "mem", "noop":
		return &noopService{}, ModeMemory, nil
	case ModeSQLite, "local":
		svc, err := NewSQLiteServiceFromEnv()
		if err != nil {
			return nil, "", err
		}
		return svc, ModeSQLite, nil
	case ModePostgres, "postgresql", "pg", "db":
		svc, err := NewPostgresServiceFromEnv()
		if err != nil {
			return nil, "", err
		}
		return svc, ModePostgres, nil
	default:
		return nil, "", fmt.Errorf("invalid HISTORY_MODE %q (supported: %s, %s, %s)",
			mode, ModeMemory, ModeSQLite, ModePostgres)
	}
}

type noopService struct{}

func (n *noopService) Close() error { return nil }

func (n *noopService) RecordRound(_ context.Context, _ RoundRecord) error { return nil }

func (n *noopService) ListRecent(_ context.Context, _ int) ([]RoundRecord, error) {
	return []RoundRecord{}, nil
}

func envIntOrDefault(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 || limit > 1000 {
		return fallback
	}
	return limit
}
