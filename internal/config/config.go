package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sim holds all configuration for the osrs-sim tool.
type Sim struct {
	LogLevel string `yaml:"log_level" env:"OSRS_SIM_LOG_LEVEL"`

	// Catalog sources. Empty paths use the catalog compiled into the binary.
	DataDir     string `yaml:"data_dir"     env:"OSRS_SIM_DATA_DIR"`
	EffectsFile string `yaml:"effects_file" env:"OSRS_SIM_EFFECTS_FILE"`

	// Game tick length
	TickMillis int64 `yaml:"tick_ms" env:"OSRS_SIM_TICK_MS"`

	Batch BatchConfig `yaml:"batch" envPrefix:"OSRS_SIM_BATCH_"`

	// Database for catalog snapshots
	Database DatabaseConfig `yaml:"database" envPrefix:"OSRS_SIM_DB_"`
}

// BatchConfig controls concurrent candidate scoring.
type BatchConfig struct {
	Workers int `yaml:"workers" env:"WORKERS"` // 0 = GOMAXPROCS
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"HOST"`
	Port     int    `yaml:"port"     env:"PORT"`
	User     string `yaml:"user"     env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname"   env:"NAME"`
	SSLMode  string `yaml:"sslmode"  env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSim returns Sim config with sensible defaults.
func DefaultSim() Sim {
	return Sim{
		LogLevel:   "info",
		TickMillis: 600,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "osrs",
			Password: "osrs",
			DBName:   "osrs_sim",
			SSLMode:  "disable",
		},
	}
}

// LoadSim loads config from a YAML file, then applies OSRS_SIM_* environment
// overrides. If the file doesn't exist, defaults are used.
func LoadSim(path string) (Sim, error) {
	cfg := DefaultSim()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Sim) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.TickMillis <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMillis)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	return nil
}
