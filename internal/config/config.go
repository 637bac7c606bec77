package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the battle simulator binaries.
type Simulator struct {
	// Scenario file describing the rosters (see internal/data).
	ScenarioPath string `yaml:"scenario_path"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	Battle Battle `yaml:"battle"`

	// Report persistence
	PersistReports bool           `yaml:"persist_reports"`
	Database       DatabaseConfig `yaml:"database"`
}

// Battle tunes the combat engine. Zero values fall back to the engine
// defaults, so a partial YAML file only overrides what it names.
type Battle struct {
	Difficulty      string `yaml:"difficulty"` // easy, normal, hard, expert
	TurnTimeLimitMs int32  `yaml:"turn_time_limit_ms"`
	AllowRun        bool   `yaml:"allow_run"`

	RunChance          float64  `yaml:"run_chance"`
	PhysicalProcChance float64  `yaml:"physical_proc_chance"`
	MagicalProcChance  float64  `yaml:"magical_proc_chance"`
	ProcEffects        []string `yaml:"proc_effects"`
	ProcDurationMs     int32    `yaml:"proc_duration_ms"`
	DefendDurationMs   int32    `yaml:"defend_duration_ms"`

	ThinkDelayMs int32 `yaml:"think_delay_ms"`
	LogCapacity  int   `yaml:"log_capacity"`

	ExperienceFactor int32 `yaml:"experience_factor"`
	CurrencyFactor   int32 `yaml:"currency_factor"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		ScenarioPath: "scenario.yaml",
		LogLevel:     "info",
		Battle: Battle{
			Difficulty:      "normal",
			TurnTimeLimitMs: 30000,
			AllowRun:        true,
			RunChance:       0.5,
			ThinkDelayMs:    1000,
			LogCapacity:     50,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "arena",
			Password: "arena",
			DBName:   "arena",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulator loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
