package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/informagico/fantavibe/internal/catalog"
)

const exportVersion = "2.1"

type exportEnvelope struct {
	Version      string            `json:"version"`
	Timestamp    string            `json:"timestamp"`
	Data         map[string]Record `json:"data"`
	Budget       int               `json:"budget"`
	Summary      exportSummary     `json:"summary"`
	ReadableData []readableEntry   `json:"readable_data,omitempty"`
}

type exportSummary struct {
	TotalPlayers      int `json:"total_players"`
	AcquiredPlayers   int `json:"acquired_players"`
	TotalFantamilioni int `json:"total_fantamilioni"`
	Budget            int `json:"budget"`
	RemainingBudget   int `json:"remaining_budget"`
}

type readableEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Role       string `json:"role"`
	Team       string `json:"team"`
	Record
}

// Export serializes the roster and budget as a JSON backup. When the catalog
// is supplied, entries carry readable player names.
func (t *tracker) Export(players []catalog.Player) ([]byte, error) {
	t.mu.RLock()
	statuses := make(map[string]Record, len(t.status))
	for playerID, record := range t.status {
		statuses[playerID] = record
	}
	budget := t.budget
	t.mu.RUnlock()

	total := 0
	acquired := 0
	for _, record := range statuses {
		if record.Status == StatusAcquired {
			acquired++
			total += record.Fantamilioni
		}
	}

	envelope := exportEnvelope{
		Version:   exportVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      statuses,
		Budget:    budget,
		Summary: exportSummary{
			TotalPlayers:      len(statuses),
			AcquiredPlayers:   acquired,
			TotalFantamilioni: total,
			Budget:            budget,
			RemainingBudget:   budget - total,
		},
	}

	if len(players) > 0 {
		byID := make(map[string]catalog.Player, len(players))
		for _, p := range players {
			byID[p.ID] = p
		}
		for playerID, record := range statuses {
			entry := readableEntry{PlayerID: playerID, PlayerName: "Unknown", Role: "N/A", Team: "N/A", Record: record}
			if p, ok := byID[playerID]; ok {
				entry.PlayerName = p.Name
				entry.Role = string(p.Role)
				entry.Team = p.Team
			}
			envelope.ReadableData = append(envelope.ReadableData, entry)
		}
	}

	return json.MarshalIndent(envelope, "", "  ")
}

// Import restores a backup produced by Export. The whole payload is
// validated before anything is applied.
func (t *tracker) Import(ctx context.Context, data []byte) error {
	var envelope exportEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("invalid backup payload: %w", err)
	}
	if envelope.Data == nil {
		return fmt.Errorf("invalid backup payload: missing data field")
	}
	for playerID, record := range envelope.Data {
		if record.Status == "" {
			return fmt.Errorf("invalid backup entry for player %q", playerID)
		}
	}

	t.mu.Lock()
	t.status = envelope.Data
	if envelope.Budget > 0 {
		t.budget = envelope.Budget
	}
	budget := t.budget
	t.mu.Unlock()

	if err := t.persistStatuses(ctx); err != nil {
		return err
	}
	if envelope.Budget > 0 {
		if err := t.SetBudget(ctx, budget); err != nil {
			return err
		}
	}

	log.Info("Backup imported", "players", len(envelope.Data), "budget", budget)
	return nil
}
