package roster

import (
	"context"

	"github.com/informagico/fantavibe/internal/catalog"
)

// Tracker defines the interface for the auction draft state: per-player
// statuses, spend tracking and the budget.
type Tracker interface {
	UpdatePlayerStatus(ctx context.Context, playerID string, status Status, fantamilioni int) error
	PlayerStatus(playerID string) (Record, bool)
	AcquiredPlayers() []AcquiredPlayer
	TotalFantamilioni() int
	Budget() int
	SetBudget(ctx context.Context, budget int) error
	RemainingBudget() int
	CanAfford(fantamilioni int) bool
	Stats() BudgetStats
	Export(players []catalog.Player) ([]byte, error)
	Import(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
