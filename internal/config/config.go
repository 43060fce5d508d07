package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/misterclayt0n/tribase/internal/analytics"
	"github.com/misterclayt0n/tribase/internal/models"
)

const (
	BackendSQLite = "sqlite"
	BackendLibSQL = "libsql"
	BackendSheets = "sheets"
	BackendMemory = "memory"
)

type Config struct {
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
	Coach CoachConfig `toml:"coach"`
}

type StoreConfig struct {
	Backend          string        `toml:"backend"`
	ConnectionString string        `toml:"connection_string"` // The entire DB connection string.
	SpreadsheetID    string        `toml:"spreadsheet_id"`
	SheetName        string        `toml:"sheet_name"`
	CredentialsFile  string        `toml:"credentials_file"`
	Timeout          time.Duration `toml:"timeout"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	JSON   bool   `toml:"json"`
	Stderr bool   `toml:"stderr"`
}

type CoachConfig struct {
	RecoveryType string               `toml:"recovery_type"`
	WindowDays   int                  `toml:"window_days"`
	Thresholds   analytics.Thresholds `toml:"thresholds"`
}

// Returns ~/.config/tribase, creating it if needed.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "tribase")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Default() Config {
	cfg := Config{
		Store: StoreConfig{
			Backend:   BackendSQLite,
			SheetName: "Sessions",
			Timeout:   15 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Stderr: true,
		},
		Coach: CoachConfig{
			RecoveryType: models.RecoveryType,
			WindowDays:   7,
			Thresholds:   analytics.DefaultThresholds(),
		},
	}
	if dir, err := GetConfigDir(); err == nil {
		cfg.Store.ConnectionString = "file:" + filepath.Join(dir, "tribase.db")
	}
	return cfg
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing file leaves the defaults in place. Variables
// from a .env file in the working directory and the environment override
// the file.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("Failed to read config %s: %w", path, err)
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRIBASE_STORE"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("TRIBASE_DATABASE_URL"); v != "" {
		cfg.Store.ConnectionString = v
		if cfg.Store.Backend == BackendSQLite && !strings.HasPrefix(v, "file:") && strings.Contains(v, "://") {
			cfg.Store.Backend = BackendLibSQL
		}
	}
	if v := os.Getenv("TRIBASE_SPREADSHEET_ID"); v != "" {
		cfg.Store.SpreadsheetID = v
	}
	if v := os.Getenv("TRIBASE_SHEET_NAME"); v != "" {
		cfg.Store.SheetName = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" && cfg.Store.CredentialsFile == "" {
		cfg.Store.CredentialsFile = v
	}
	if v := os.Getenv("TRIBASE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.Store.Backend = BackendSQLite
		cfg.Store.ConnectionString = "file:./local.db?cache=shared&mode=rwc"
	}
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendLibSQL:
		if c.Store.ConnectionString == "" {
			return errors.New("store.connection_string is required for database backends")
		}
	case BackendSheets:
		if c.Store.SpreadsheetID == "" {
			return errors.New("store.spreadsheet_id is required for the sheets backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Coach.WindowDays <= 0 {
		return fmt.Errorf("coach.window_days must be positive, got %d", c.Coach.WindowDays)
	}
	th := c.Coach.Thresholds
	if th.StableDecoupling > th.CautionDecoupling {
		return fmt.Errorf("coach.thresholds: stable_decoupling (%v) exceeds caution_decoupling (%v)",
			th.StableDecoupling, th.CautionDecoupling)
	}
	return nil
}
