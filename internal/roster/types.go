package roster

import (
	"sync"

	"github.com/informagico/fantavibe/internal/storage"
)

// Status is the draft state of a player. Available is the default and is
// never stored: resetting a player to available deletes their record.
type Status string

const (
	StatusAcquired    Status = "acquired"
	StatusUnavailable Status = "unavailable"
	StatusAvailable   Status = "available"
)

// Record is the stored draft state for one player. Fantamilioni is present
// only when the player was acquired for a positive amount.
type Record struct {
	Status       Status `json:"status"`
	Fantamilioni int    `json:"fantamilioni,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// AcquiredPlayer is one roster entry with its spend.
type AcquiredPlayer struct {
	PlayerID     string `json:"player_id"`
	Fantamilioni int    `json:"fantamilioni"`
	Timestamp    string `json:"timestamp"`
}

// BudgetStats summarizes the auction budget position.
type BudgetStats struct {
	TotalBudget           int `json:"total_budget"`
	TotalSpent            int `json:"total_spent"`
	RemainingBudget       int `json:"remaining_budget"`
	PlayersCount          int `json:"players_count"`
	AverageSpentPerPlayer int `json:"average_spent_per_player"`
	BudgetUtilization     int `json:"budget_utilization"`
}

// tracker keeps the roster in memory and writes through to the storage port
// after every change.
type tracker struct {
	store         storage.Store
	mu            sync.RWMutex
	status        map[string]Record
	budget        int
	defaultBudget int
}
