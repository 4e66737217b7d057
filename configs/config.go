package configs

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Account   AccountConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// AccountConfig holds the seed parameters for the demo account created at
// startup
type AccountConfig struct {
	ID             string
	Owner          string
	InitialDeposit float64
}

// SchedulerConfig holds the mark-to-market snapshot schedule
type SchedulerConfig struct {
	SnapshotCron string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Account: AccountConfig{
			ID:             getEnv("ACCOUNT_ID", "acct-demo"),
			Owner:          getEnv("ACCOUNT_OWNER", ""),
			InitialDeposit: getEnvFloat("INITIAL_DEPOSIT", 10000.0),
		},
		Scheduler: SchedulerConfig{
			SnapshotCron: getEnv("SNAPSHOT_CRON", "*/1 * * * *"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
