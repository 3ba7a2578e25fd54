package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Dataset       DatasetConfig
	Turso         TursoConfig
	DefaultBudget int
}

// DatasetConfig describes where the player dataset comes from and how long a
// cached copy stays trustworthy without a remote check.
type DatasetConfig struct {
	FileURL     string
	BundledPath string
	CacheTTL    time.Duration
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
