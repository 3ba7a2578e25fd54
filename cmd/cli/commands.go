package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	playersRole  string
	playersSort  string
	playersOrder string
)

func init() {
	playersCmd.Flags().StringVar(&playersRole, "role", "", "Filter by role (POR, DIF, CEN, TRQ, ATT, CEN_TRQ)")
	playersCmd.Flags().StringVar(&playersSort, "sort", "", "Sort field (convenience, fantasy_avg, appearances, overall_score, expected_goals)")
	playersCmd.Flags().StringVar(&playersOrder, "order", "", "Sort order (asc or desc)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(acquireCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(unavailableCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a dataset refresh and catalog rebuild",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/refresh", nil)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset freshness and catalog size",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/status")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List catalog players, optionally filtered and sorted",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if playersRole != "" {
			params.Set("role", playersRole)
		}
		if playersSort != "" {
			params.Set("sort", playersSort)
		}
		if playersOrder != "" {
			params.Set("order", playersOrder)
		}
		endpoint := "/players"
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
		return performGetRequest(endpoint)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search players by name, team or flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/search?q=" + url.QueryEscape(args[0]))
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Show the acquired players and budget position",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/roster")
	},
}

var acquireCmd = &cobra.Command{
	Use:   "acquire <player-id> <fantamilioni>",
	Short: "Record a player acquisition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid fantamilioni amount %q: %w", args[1], err)
		}
		body := fmt.Sprintf(`{"player_id":%q,"fantamilioni":%d}`, args[0], amount)
		return performPostRequest("/roster/acquire", []byte(body))
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release <player-id>",
	Short: "Set a player back to available",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"player_id":%q}`, args[0])
		return performPostRequest("/roster/release", []byte(body))
	},
}

var unavailableCmd = &cobra.Command{
	Use:   "unavailable <player-id>",
	Short: "Mark a player as taken by another team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"player_id":%q}`, args[0])
		return performPostRequest("/roster/unavailable", []byte(body))
	},
}

var budgetCmd = &cobra.Command{
	Use:   "budget [amount]",
	Short: "Show the budget, or set it when an amount is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return performGetRequest("/budget/stats")
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid budget amount %q: %w", args[0], err)
		}
		body := fmt.Sprintf(`{"budget":%d}`, amount)
		return performPostRequest("/budget", []byte(body))
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the roster and reset the budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/clear", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := viper.GetString("host") + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body []byte) error {
	url := viper.GetString("host") + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
