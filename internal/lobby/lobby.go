// Package lobby tracks all live tables and places new connections.
package lobby

import (
	"fmt"
	"log"
	"sync"

	"blackjack-lite/internal/history"
	"blackjack-lite/internal/table"
)

// Lobby manages all tables and player placement.
type Lobby struct {
	mu     sync.RWMutex
	tables map[string]*table.Table
	nextID uint64

	defaultConfig table.TableConfig
	history       history.Service
}

// New creates a lobby that seeds every table with cfg.
func New(cfg table.TableConfig, historyService history.Service) *Lobby {
	return &Lobby{
		tables:        make(map[string]*table.Table),
		defaultConfig: cfg,
		history:       historyService,
	}
}

// QuickStart finds a table with room for another player, creating one
// when every existing table is full.
func (l *Lobby) QuickStart(playerID uint64, broadcastFn func(playerID uint64, line string)) *table.Table {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range l.tables {
		if t.HasCapacity() {
			log.Printf("[Lobby] QuickStart: player %d joining existing table %s", playerID, t.ID)
			return t
		}
	}

	l.nextID++
	tableID := fmt.Sprintf("table_%d", l.nextID)
	t := table.New(tableID, l.defaultConfig, broadcastFn, l.history)
	l.tables[tableID] = t

	log.Printf("[Lobby] QuickStart: player %d created new table %s", playerID, tableID)
	return t
}

// GetTable returns a table by ID.
func (l *Lobby) GetTable(tableID string) *table.Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tables[tableID]
}

// ListTables returns all table IDs.
func (l *Lobby) ListTables() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.tables))
	for id := range l.tables {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown stops every table.
func (l *Lobby) Shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.tables {
		t.Stop()
	}
}
