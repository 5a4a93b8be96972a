// internal/aggregate/config.go
package aggregate

import (
	"time"

	"tracevista/internal/common/config"
	"tracevista/internal/correlate"
	"tracevista/internal/planner"
	"tracevista/internal/scoring"
)

// Config drives one orchestrator. Delays and the early-stop heuristic
// are scheduling policy, not correctness: tests run with zero delay and
// early stop disabled.
type Config struct {
	MaxInFlight          int           // concurrent provider calls, 1 = sequential
	CallTimeout          time.Duration // per provider call
	BaseDelay            time.Duration // inter-call delay seed, escalates geometrically
	MaxDelay             time.Duration // delay cap
	LowResultThreshold   int
	EarlyStopProviders   int // providers that returned >= 1 entity
	EarlyStopEntityTypes int // distinct entity types seen
	DisableEarlyStop     bool

	Planner     planner.Config
	Scoring     scoring.Config
	Correlation correlate.Config
}

// DefaultConfig returns the reference orchestrator settings.
func DefaultConfig() Config {
	return Config{
		MaxInFlight:          1,
		CallTimeout:          5 * time.Second,
		BaseDelay:            500 * time.Millisecond,
		MaxDelay:             5 * time.Second,
		LowResultThreshold:   5,
		EarlyStopProviders:   3,
		EarlyStopEntityTypes: 3,
		Planner:              planner.DefaultConfig(),
		Scoring:              scoring.DefaultConfig(),
		Correlation:          correlate.DefaultConfig(),
	}
}

// FromAppConfig maps the application configuration onto an orchestrator
// Config, keeping the reference scoring calibration.
func FromAppConfig(agg config.AggregationConfig, pl config.PlannerConfig) Config {
	cfg := DefaultConfig()
	cfg.MaxInFlight = agg.MaxInFlight
	cfg.CallTimeout = time.Duration(agg.CallTimeout) * time.Millisecond
	cfg.BaseDelay = time.Duration(agg.BaseDelay) * time.Millisecond
	cfg.MaxDelay = time.Duration(agg.MaxDelay) * time.Millisecond
	cfg.LowResultThreshold = agg.LowResultThreshold
	cfg.EarlyStopProviders = agg.EarlyStopProviders
	cfg.EarlyStopEntityTypes = agg.EarlyStopEntityTypes
	cfg.DisableEarlyStop = agg.DisableEarlyStop
	cfg.Planner.MaxQueries = pl.MaxQueries
	return cfg
}
