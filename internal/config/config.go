package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// SnapshotPath is the persisted state file. Empty keeps state in memory only.
	SnapshotPath   string
	SnapshotFormat string `validate:"oneof=hemisphere compact"`

	// In-memory store retention (only used without a snapshot path).
	SnapshotHistory int `validate:"min=0"`

	// Write breaker for the snapshot file.
	BreakerFailures int           `validate:"min=1"`
	BreakerTimeout  time.Duration `validate:"gt=0"`

	Policy     string `validate:"oneof=margin quarters table"`
	MarginPre  int    `validate:"min=0,max=180"`
	MarginPost int    `validate:"min=0,max=90"`

	// MemoDayOnly keys the classifier memo on the day alone, ignoring hemisphere changes.
	MemoDayOnly bool

	// CheckpointInterval controls periodic snapshot saves (0 = only on toggle and shutdown).
	CheckpointInterval time.Duration `validate:"min=0"`

	LogLevel string `validate:"oneof=debug info warn error"`
}

// Load reads configuration from environment with sensible defaults.
// A missing .env file is not an error.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.SnapshotPath = getenvAllowEmpty("SNAPSHOT_PATH", "season-manager.prf")
	cfg.SnapshotFormat = strings.ToLower(getenvDefault("SNAPSHOT_FORMAT", "hemisphere"))
	cfg.SnapshotHistory = getenvInt("SNAPSHOT_HISTORY", 16)
	cfg.BreakerFailures = getenvInt("SNAPSHOT_BREAKER_FAILURES", 3)

	timeout, err := time.ParseDuration(getenvDefault("SNAPSHOT_BREAKER_TIMEOUT", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_BREAKER_TIMEOUT: %w", err)
	}
	cfg.BreakerTimeout = timeout

	cfg.Policy = strings.ToLower(getenvDefault("SEASON_POLICY", "margin"))
	cfg.MarginPre = getenvInt("SEASON_MARGIN_PRE", 65)
	cfg.MarginPost = getenvInt("SEASON_MARGIN_POST", 15)
	cfg.MemoDayOnly = getenvBool("SEASON_MEMO_DAY_ONLY", false)

	// Checkpoint interval: default 5 minutes.
	interval, err := time.ParseDuration(getenvDefault("CHECKPOINT_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKPOINT_INTERVAL: %w", err)
	}
	cfg.CheckpointInterval = interval

	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvAllowEmpty distinguishes an unset variable from one set to "".
func getenvAllowEmpty(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
