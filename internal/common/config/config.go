// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig                 `mapstructure:"app"`
	Database    DatabaseConfig            `mapstructure:"database"`
	Providers   map[string]ProviderConfig `mapstructure:"providers"`
	Planner     PlannerConfig             `mapstructure:"planner"`
	Aggregation AggregationConfig         `mapstructure:"aggregation"`
	Session     SessionConfig             `mapstructure:"session"`
	Budget      BudgetConfig              `mapstructure:"budget"`
	Logging     LoggingConfig             `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // single URL shortcut
}

// GetURL returns the first address or the URL field.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// ProviderConfig holds per-provider adapter settings. The key in the
// Providers map is the provider name ("websearch", "emailintel",
// "scraperproxy", "records").
type ProviderConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	EngineID    string  `mapstructure:"engine_id"` // websearch only
	Index       string  `mapstructure:"index"`     // records only
	Timeout     int     `mapstructure:"timeout"`   // milliseconds
	MaxResults  int     `mapstructure:"max_results"`
	CostPerCall float64 `mapstructure:"cost_per_call"`
}

// PlannerConfig bounds query generation.
type PlannerConfig struct {
	MaxQueries int `mapstructure:"max_queries"` // cap on emitted queries, by priority
}

// AggregationConfig drives the orchestrator's scheduling policy. Delays
// and timeouts are policy, not correctness: tests run them at zero.
type AggregationConfig struct {
	MaxInFlight          int  `mapstructure:"max_in_flight"`   // concurrent provider calls, 1 = sequential
	CallTimeout          int  `mapstructure:"call_timeout"`    // per-provider-call, milliseconds
	BaseDelay            int  `mapstructure:"base_delay"`      // inter-call delay seed, milliseconds
	MaxDelay             int  `mapstructure:"max_delay"`       // delay cap, milliseconds
	LowResultThreshold   int  `mapstructure:"low_result_threshold"`
	EarlyStopProviders   int  `mapstructure:"early_stop_providers"`    // providers with >=1 entity
	EarlyStopEntityTypes int  `mapstructure:"early_stop_entity_types"` // distinct entity types seen
	DisableEarlyStop     bool `mapstructure:"disable_early_stop"`
}

// SessionConfig controls the session store edge.
type SessionConfig struct {
	KeyPrefix    string `mapstructure:"key_prefix"`
	TTL          int    `mapstructure:"ttl"` // minutes, 0 = no expiry
	HistoryLimit int    `mapstructure:"history_limit"`
}

// BudgetConfig holds the default run budget; callers may override per run.
type BudgetConfig struct {
	MaxCost    float64 `mapstructure:"max_cost"`    // 0 = unlimited
	MaxCredits float64 `mapstructure:"max_credits"` // 0 = unlimited
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	for name, p := range cfg.Providers {
		if p.Enabled && name != "records" && p.BaseURL == "" {
			return fmt.Errorf("provider %q enabled without base_url", name)
		}
	}
	if cfg.Aggregation.MaxInFlight < 1 {
		return fmt.Errorf("aggregation.max_in_flight must be >= 1")
	}
	if cfg.Planner.MaxQueries < 1 {
		return fmt.Errorf("planner.max_queries must be >= 1")
	}
	return nil
}
