package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/informagico/fantavibe/internal/catalog"
	"github.com/informagico/fantavibe/internal/roster"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		roleFilter := catalog.ParseRoleFilter(query.Get("role"))
		sortField := catalog.SortField(query.Get("sort"))
		if sortField == "" {
			sortField = catalog.SortConvenience
		}
		ascending := query.Get("order") == "asc"

		numericFilters, err := parseNumericFilters(query)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		boolFilters, err := parseBoolFilters(query)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		players := s.Loader.Catalog().Players
		players = catalog.FilterByRole(players, roleFilter)
		players = catalog.ApplyNumericFilters(players, numericFilters)
		players = catalog.ApplyBoolFilters(players, boolFilters)
		players = catalog.SortByField(players, sortField, ascending)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(players); err != nil {
			log.Error("Failed to encode players to JSON", "error", err)
		}
	}
}

// parseNumericFilters reads <stat>_min/<stat>_max query parameter pairs.
// A range applies only when both bounds are given.
func parseNumericFilters(query url.Values) (map[catalog.SortField]catalog.NumericRange, error) {
	filters := make(map[catalog.SortField]catalog.NumericRange)
	for _, field := range catalog.SortFields {
		minRaw := query.Get(string(field) + "_min")
		maxRaw := query.Get(string(field) + "_max")
		if minRaw == "" || maxRaw == "" {
			continue
		}
		minValue, err := strconv.ParseFloat(minRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s_min value %q", field, minRaw)
		}
		maxValue, err := strconv.ParseFloat(maxRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s_max value %q", field, maxRaw)
		}
		filters[field] = catalog.NumericRange{Min: minValue, Max: maxValue}
	}
	return filters, nil
}

// parseBoolFilters reads flag query parameters like injured=true.
func parseBoolFilters(query url.Values) (map[catalog.BoolField]bool, error) {
	filters := make(map[catalog.BoolField]bool)
	for _, field := range catalog.BoolFields {
		raw := query.Get(string(field))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", field, raw)
		}
		filters[field] = value
	}
	return filters, nil
}

func (s *Server) SearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, "Missing 'q' parameter", http.StatusBadRequest)
			return
		}

		start := time.Now()
		results := s.Searcher.Search(query, s.Loader.Catalog())
		s.Metrics.ObserveSearchDuration(time.Since(start).Seconds())
		log.Debug("Search completed", "query", query, "results", len(results))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			log.Error("Failed to encode search results to JSON", "error", err)
		}
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting forced dataset refresh...")
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have refreshed the dataset")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "Dry run: refresh skipped.")
			return
		}

		if err := s.Loader.Load(r.Context(), true); err != nil {
			log.Error("Forced refresh failed", "error", err)
			http.Error(w, "Failed to refresh dataset", http.StatusServiceUnavailable)
			return
		}

		status := s.Loader.Status()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Error("Failed to encode refresh status to JSON", "error", err)
		}
		log.Info("Forced refresh finished", "source", string(status.Source), "players", status.PlayerCount)
	}
}

func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Loader.Status()); err != nil {
			log.Error("Failed to encode status to JSON", "error", err)
		}
	}
}

// rosterView is the aggregate returned by the roster endpoint.
type rosterView struct {
	Acquired          []roster.AcquiredPlayer `json:"acquired"`
	TotalFantamilioni int                     `json:"total_fantamilioni"`
	Budget            int                     `json:"budget"`
	RemainingBudget   int                     `json:"remaining_budget"`
}

func (s *Server) RosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := rosterView{
			Acquired:          s.Roster.AcquiredPlayers(),
			TotalFantamilioni: s.Roster.TotalFantamilioni(),
			Budget:            s.Roster.Budget(),
			RemainingBudget:   s.Roster.RemainingBudget(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(view); err != nil {
			log.Error("Failed to encode roster to JSON", "error", err)
		}
	}
}

type acquireRequest struct {
	PlayerID     string `json:"player_id"`
	Fantamilioni int    `json:"fantamilioni"`
}

func (s *Server) AcquirePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req acquireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode acquire request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "Missing player_id", http.StatusBadRequest)
			return
		}
		if req.Fantamilioni < 0 {
			http.Error(w, "Fantamilioni must not be negative", http.StatusBadRequest)
			return
		}

		if !s.Roster.CanAfford(req.Fantamilioni) {
			log.Warn("Acquisition exceeds remaining budget", "playerID", req.PlayerID, "fantamilioni", req.Fantamilioni, "remaining", s.Roster.RemainingBudget())
			http.Error(w, "Insufficient budget", http.StatusPaymentRequired)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have acquired player", "playerID", req.PlayerID, "fantamilioni", req.Fantamilioni)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "Dry run: acquisition skipped.")
			return
		}

		if err := s.Roster.UpdatePlayerStatus(r.Context(), req.PlayerID, roster.StatusAcquired, req.Fantamilioni); err != nil {
			log.Error("Failed to acquire player", "playerID", req.PlayerID, "error", err)
			http.Error(w, "Failed to acquire player", http.StatusInternalServerError)
			return
		}
		log.Info("Player acquired", "playerID", req.PlayerID, "fantamilioni", req.Fantamilioni, "remaining", s.Roster.RemainingBudget())
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Player acquired.")
	}
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *Server) ReleasePlayerHandler() http.HandlerFunc {
	return s.updateStatusHandler(roster.StatusAvailable, "Player released.")
}

func (s *Server) MarkUnavailableHandler() http.HandlerFunc {
	return s.updateStatusHandler(roster.StatusUnavailable, "Player marked unavailable.")
}

func (s *Server) updateStatusHandler(status roster.Status, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode status request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "Missing player_id", http.StatusBadRequest)
			return
		}

		if err := s.Roster.UpdatePlayerStatus(r.Context(), req.PlayerID, status, 0); err != nil {
			log.Error("Failed to update player status", "playerID", req.PlayerID, "status", string(status), "error", err)
			http.Error(w, "Failed to update player status", http.StatusInternalServerError)
			return
		}
		log.Info("Player status updated", "playerID", req.PlayerID, "status", string(status))
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, message)
	}
}

func (s *Server) ExportRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.Roster.Export(s.Loader.Catalog().Players)
		if err != nil {
			log.Error("Failed to export roster", "error", err)
			http.Error(w, "Failed to export roster", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=\"fantavibe-backup.json\"")
		w.Write(data)
	}
}

func (s *Server) ImportRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}

		if err := s.Roster.Import(r.Context(), data); err != nil {
			log.Error("Failed to import roster backup", "error", err)
			http.Error(w, "Invalid backup payload", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Backup imported.")
	}
}

type budgetRequest struct {
	Budget int `json:"budget"`
}

func (s *Server) BudgetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			view := map[string]int{
				"budget":           s.Roster.Budget(),
				"remaining_budget": s.Roster.RemainingBudget(),
			}
			if err := json.NewEncoder(w).Encode(view); err != nil {
				log.Error("Failed to encode budget to JSON", "error", err)
			}
		case http.MethodPut, http.MethodPost:
			var req budgetRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				log.Error("Failed to decode budget request", "error", err)
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if err := s.Roster.SetBudget(r.Context(), req.Budget); err != nil {
				log.Warn("Rejected budget update", "budget", req.Budget, "error", err)
				http.Error(w, "Budget must be positive", http.StatusBadRequest)
				return
			}
			log.Info("Budget updated", "budget", req.Budget)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Budget set to %s.\n", strconv.Itoa(req.Budget))
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) BudgetStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Roster.Stats()); err != nil {
			log.Error("Failed to encode budget stats to JSON", "error", err)
		}
	}
}

func (s *Server) ClearRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear roster")
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have cleared the roster")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "Dry run: clear skipped.")
			return
		}

		if err := s.Roster.Clear(r.Context()); err != nil {
			log.Error("Failed to clear roster", "error", err)
			http.Error(w, "Failed to clear roster", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Roster cleared!")
		log.Info("Roster cleared successfully")
	}
}
