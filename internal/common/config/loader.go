// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the layered configuration: base config.yaml, then the
// environment-specific overlay, then environment variables.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_REDIS_ADDRESS
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // overlay is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the usual locations so the loader works
// from the repo root and from package test directories.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tracevista-aggregator"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Planner.MaxQueries == 0 {
		cfg.Planner.MaxQueries = 8
	}
	if cfg.Aggregation.MaxInFlight == 0 {
		cfg.Aggregation.MaxInFlight = 1
	}
	if cfg.Aggregation.CallTimeout == 0 {
		cfg.Aggregation.CallTimeout = 5000
	}
	if cfg.Aggregation.BaseDelay == 0 {
		cfg.Aggregation.BaseDelay = 500
	}
	if cfg.Aggregation.MaxDelay == 0 {
		cfg.Aggregation.MaxDelay = 5000
	}
	if cfg.Aggregation.LowResultThreshold == 0 {
		cfg.Aggregation.LowResultThreshold = 5
	}
	if cfg.Aggregation.EarlyStopProviders == 0 {
		cfg.Aggregation.EarlyStopProviders = 3
	}
	if cfg.Aggregation.EarlyStopEntityTypes == 0 {
		cfg.Aggregation.EarlyStopEntityTypes = 3
	}
	if cfg.Session.KeyPrefix == "" {
		cfg.Session.KeyPrefix = "tracevista:session"
	}
	if cfg.Session.HistoryLimit == 0 {
		cfg.Session.HistoryLimit = 20
	}
	for name, p := range cfg.Providers {
		if p.Timeout == 0 {
			p.Timeout = 5000
		}
		if p.MaxResults == 0 {
			p.MaxResults = 10
		}
		cfg.Providers[name] = p
	}
}
