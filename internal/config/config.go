package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/reflow/internal/scheduler"
	"github.com/joho/godotenv"
)

// Config holds runtime settings for the reflow binary.
type Config struct {
	DBPath            string
	LogUseCases       bool
	LogLevel          slog.Level
	MaintenancePolicy scheduler.MaintenancePolicy
}

// DefaultConfig returns the settings used when nothing is configured.
// The database lives under the user's home directory.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath:            filepath.Join(home, ".reflow", "reflow.db"),
		LogLevel:          slog.LevelInfo,
		MaintenancePolicy: scheduler.PolicyResume,
	}, nil
}

// Load reads configuration from the environment after applying any of the
// given dotenv files that exist. Variables already present in the
// environment win over dotenv values. With no files, ".env" in the working
// directory is tried.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv("REFLOW_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("REFLOW_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("REFLOW_LOG_LEVEL"); v != "" {
		if lvl, ok := parseLevel(v); ok {
			cfg.LogLevel = lvl
		}
	}
	if v := os.Getenv("REFLOW_MAINTENANCE_POLICY"); v != "" {
		p, err := scheduler.ParseMaintenancePolicy(v)
		if err != nil {
			return Config{}, fmt.Errorf("REFLOW_MAINTENANCE_POLICY: %w", err)
		}
		cfg.MaintenancePolicy = p
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
