// Package config loads backtest run configuration from YAML or JSON
// files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents a complete backtest configuration.
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Optimize OptimizeConfig `json:"optimize,omitempty" yaml:"optimize,omitempty"`
}

// DataConfig locates the daily bar series.
type DataConfig struct {
	CSVPath string `json:"csv_path" yaml:"csv_path"`
	From    string `json:"from,omitempty" yaml:"from,omitempty"` // 2006-01-02
	To      string `json:"to,omitempty" yaml:"to,omitempty"`
}

// StrategyConfig names the signal source and its parameters.
type StrategyConfig struct {
	Name   string             `json:"name" yaml:"name"`
	Params map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
}

// BacktestConfig contains the engine parameters.
type BacktestConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	Commission     float64 `json:"commission" yaml:"commission"`
	RiskFree       float64 `json:"risk_free" yaml:"risk_free"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	LedgerFile string `json:"ledger_file,omitempty" yaml:"ledger_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// OptimizeConfig holds an optional parameter grid for sweeps.
type OptimizeConfig struct {
	Grid    map[string][]float64 `json:"grid,omitempty" yaml:"grid,omitempty"`
	Workers int                  `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on
// content; YAML is tried first).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Data.CSVPath == "" {
		return fmt.Errorf("data.csv_path is required")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Backtest.Commission < 0 || c.Backtest.Commission >= 1 {
		return fmt.Errorf("backtest.commission must be in [0, 1)")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.LedgerFile == "" {
			return fmt.Errorf("journal runs_file and ledger_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			CSVPath: "data/bars.csv",
		},
		Strategy: StrategyConfig{
			Name: "momentum",
			Params: map[string]float64{
				"short_window": 20,
				"long_window":  60,
			},
		},
		Backtest: BacktestConfig{
			InitialCapital: 100000,
			Commission:     0.001425,
			RiskFree:       0.02,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./backtests.sqlite",
		},
	}
}
