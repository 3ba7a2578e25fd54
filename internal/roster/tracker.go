package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/informagico/fantavibe/internal/storage"
)

// Storage keys. Statuses and budget are persisted independently.
const (
	keyPlayerStatus = "player_status"
	keyBudget       = "budget"
)

// New creates a Tracker, loading any persisted state. Corrupted stored data
// is discarded rather than surfaced: the tracker starts from a clean slate.
func New(ctx context.Context, store storage.Store, defaultBudget int) Tracker {
	t := &tracker{
		store:         store,
		status:        make(map[string]Record),
		budget:        defaultBudget,
		defaultBudget: defaultBudget,
	}
	t.load(ctx, defaultBudget)
	return t
}

var _ Tracker = (*tracker)(nil)

func (t *tracker) load(ctx context.Context, defaultBudget int) {
	raw, ok, err := t.store.Get(ctx, keyPlayerStatus)
	if err != nil {
		log.Error("Failed to load player statuses", "error", err)
	} else if ok {
		t.status = decodeStatuses(raw)
	}
	log.Info("Player statuses loaded", "tracked", len(t.status))

	raw, ok, err = t.store.Get(ctx, keyBudget)
	if err != nil {
		log.Error("Failed to load budget", "error", err)
		return
	}
	if ok {
		budget, err := strconv.Atoi(string(raw))
		if err != nil || budget <= 0 {
			log.Warn("Stored budget is corrupted, using default", "value", string(raw))
		} else {
			t.budget = budget
		}
	}
	log.Info("Budget loaded", "budget", t.budget, "default", defaultBudget)
}

// decodeStatuses tolerates both the current record format and the legacy one
// where the value was a bare status string.
func decodeStatuses(raw []byte) map[string]Record {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Warn("Stored player statuses are corrupted, starting empty", "error", err)
		return make(map[string]Record)
	}

	statuses := make(map[string]Record, len(entries))
	for playerID, entry := range entries {
		var record Record
		if err := json.Unmarshal(entry, &record); err == nil && record.Status != "" {
			statuses[playerID] = record
			continue
		}
		var legacy string
		if err := json.Unmarshal(entry, &legacy); err == nil && legacy != "" {
			statuses[playerID] = Record{Status: Status(legacy), Timestamp: time.Now().UTC().Format(time.RFC3339)}
			continue
		}
		log.Warn("Dropping unreadable status entry", "playerID", playerID)
	}
	return statuses
}

// UpdatePlayerStatus creates or overwrites the record for a player. Setting
// a player back to available deletes the record. Fantamilioni is recorded
// only for acquisitions with a positive amount.
func (t *tracker) UpdatePlayerStatus(ctx context.Context, playerID string, status Status, fantamilioni int) error {
	t.mu.Lock()
	switch status {
	case StatusAvailable:
		delete(t.status, playerID)
	case StatusAcquired, StatusUnavailable:
		record := Record{
			Status:    status,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if status == StatusAcquired && fantamilioni > 0 {
			record.Fantamilioni = fantamilioni
		}
		t.status[playerID] = record
	default:
		t.mu.Unlock()
		return fmt.Errorf("unknown player status: %q", status)
	}
	t.mu.Unlock()

	return t.persistStatuses(ctx)
}

func (t *tracker) PlayerStatus(playerID string) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	record, ok := t.status[playerID]
	return record, ok
}

func (t *tracker) AcquiredPlayers() []AcquiredPlayer {
	t.mu.RLock()
	defer t.mu.RUnlock()

	acquired := make([]AcquiredPlayer, 0)
	for playerID, record := range t.status {
		if record.Status != StatusAcquired {
			continue
		}
		acquired = append(acquired, AcquiredPlayer{
			PlayerID:     playerID,
			Fantamilioni: record.Fantamilioni,
			Timestamp:    record.Timestamp,
		})
	}
	return acquired
}

func (t *tracker) TotalFantamilioni() int {
	total := 0
	for _, p := range t.AcquiredPlayers() {
		total += p.Fantamilioni
	}
	return total
}

func (t *tracker) Budget() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.budget
}

func (t *tracker) SetBudget(ctx context.Context, budget int) error {
	if budget <= 0 {
		return fmt.Errorf("budget must be positive, got %d", budget)
	}
	t.mu.Lock()
	t.budget = budget
	t.mu.Unlock()

	return t.store.Set(ctx, keyBudget, []byte(strconv.Itoa(budget)))
}

func (t *tracker) RemainingBudget() int {
	return t.Budget() - t.TotalFantamilioni()
}

// CanAfford reports whether an acquisition fits in the remaining budget.
// This is the gate callers apply before recording an acquisition; the data
// layer itself does not enforce it.
func (t *tracker) CanAfford(fantamilioni int) bool {
	return fantamilioni <= t.RemainingBudget()
}

func (t *tracker) Stats() BudgetStats {
	acquired := t.AcquiredPlayers()
	totalSpent := 0
	for _, p := range acquired {
		totalSpent += p.Fantamilioni
	}
	budget := t.Budget()

	stats := BudgetStats{
		TotalBudget:     budget,
		TotalSpent:      totalSpent,
		RemainingBudget: budget - totalSpent,
		PlayersCount:    len(acquired),
	}
	if len(acquired) > 0 {
		stats.AverageSpentPerPlayer = int(float64(totalSpent)/float64(len(acquired)) + 0.5)
	}
	if budget > 0 {
		stats.BudgetUtilization = int(float64(totalSpent)/float64(budget)*100 + 0.5)
	}
	return stats
}

// Clear wipes the roster and resets the budget to its configured default,
// so the running session matches what a restart would load.
func (t *tracker) Clear(ctx context.Context) error {
	t.mu.Lock()
	t.status = make(map[string]Record)
	t.budget = t.defaultBudget
	t.mu.Unlock()

	if err := t.store.Delete(ctx, keyPlayerStatus); err != nil {
		return err
	}
	return t.store.Delete(ctx, keyBudget)
}

func (t *tracker) persistStatuses(ctx context.Context) error {
	t.mu.RLock()
	raw, err := json.Marshal(t.status)
	t.mu.RUnlock()
	if err != nil {
		return err
	}
	return t.store.Set(ctx, keyPlayerStatus, raw)
}
