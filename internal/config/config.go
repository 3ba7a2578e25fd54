package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

const defaultDatasetURL = "https://github.com/informagico/fantavibe-dataset/blob/release/latest_fpedia_analysis.xlsx?raw=true"

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get an env var with a fallback default.
	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	dataDir := getEnv("DATA_DIR", defaultDataDir())

	ttl := 24 * time.Hour
	if raw, ok := os.LookupEnv("DATASET_CACHE_TTL_HOURS"); ok {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			log.Warn("Invalid DATASET_CACHE_TTL_HOURS, using default", "value", raw)
		} else {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	budget := 500
	if raw, ok := os.LookupEnv("DEFAULT_BUDGET"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Warn("Invalid DEFAULT_BUDGET, using default", "value", raw)
		} else {
			budget = parsed
		}
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME", filepath.Join(dataDir, "fantavibe.db")),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT", "8080"),
		Dataset: DatasetConfig{
			FileURL:     getEnv("DATASET_FILE_URL", defaultDatasetURL),
			BundledPath: getEnv("DATASET_BUNDLED_PATH", filepath.Join(dataDir, "fpedia_analysis.xlsx")),
			CacheTTL:    ttl,
		},
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		DefaultBudget: budget,
	}
	return cfg
}

// defaultDataDir resolves ~/.fantavibe, falling back to the working directory
// when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		log.Warn("Could not resolve home directory, using working directory", "error", err)
		return "."
	}
	return filepath.Join(home, ".fantavibe")
}
