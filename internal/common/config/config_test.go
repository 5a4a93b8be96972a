// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Providers: map[string]ProviderConfig{
			"websearch": {Enabled: true, BaseURL: "https://search.example.com"},
			"records":   {Enabled: true},
		},
		Planner:     PlannerConfig{MaxQueries: 8},
		Aggregation: AggregationConfig{MaxInFlight: 1},
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfigEnabledProviderNeedsBaseURL(t *testing.T) {
	cfg := validTestConfig()
	cfg.Providers["scraperproxy"] = ProviderConfig{Enabled: true}

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scraperproxy")
}

func TestValidateConfigRecordsNeedsNoBaseURL(t *testing.T) {
	cfg := validTestConfig()
	cfg.Providers["records"] = ProviderConfig{Enabled: true, Index: "investigations"}

	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfigDisabledProviderIsIgnored(t *testing.T) {
	cfg := validTestConfig()
	cfg.Providers["scraperproxy"] = ProviderConfig{Enabled: false}

	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfigBounds(t *testing.T) {
	cfg := validTestConfig()
	cfg.Aggregation.MaxInFlight = 0
	assert.Error(t, validateConfig(cfg))

	cfg = validTestConfig()
	cfg.Planner.MaxQueries = 0
	assert.Error(t, validateConfig(cfg))
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{
		Providers: map[string]ProviderConfig{
			"websearch": {Enabled: true, BaseURL: "https://search.example.com"},
		},
	}
	applyDefaults(cfg)

	assert.Equal(t, "tracevista-aggregator", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8, cfg.Planner.MaxQueries)
	assert.Equal(t, 1, cfg.Aggregation.MaxInFlight)
	assert.Equal(t, 5000, cfg.Aggregation.CallTimeout)
	assert.Equal(t, 500, cfg.Aggregation.BaseDelay)
	assert.Equal(t, 5000, cfg.Aggregation.MaxDelay)
	assert.Equal(t, 5, cfg.Aggregation.LowResultThreshold)
	assert.Equal(t, 3, cfg.Aggregation.EarlyStopProviders)
	assert.Equal(t, 3, cfg.Aggregation.EarlyStopEntityTypes)
	assert.Equal(t, "tracevista:session", cfg.Session.KeyPrefix)
	assert.Equal(t, 20, cfg.Session.HistoryLimit)
	assert.Equal(t, 5000, cfg.Providers["websearch"].Timeout)
	assert.Equal(t, 10, cfg.Providers["websearch"].MaxResults)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Planner:     PlannerConfig{MaxQueries: 4},
		Aggregation: AggregationConfig{MaxInFlight: 3, LowResultThreshold: 2},
	}
	applyDefaults(cfg)

	assert.Equal(t, 4, cfg.Planner.MaxQueries)
	assert.Equal(t, 3, cfg.Aggregation.MaxInFlight)
	assert.Equal(t, 2, cfg.Aggregation.LowResultThreshold)
}

func TestElasticsearchGetURL(t *testing.T) {
	assert.Equal(t, "http://es:9200", ElasticsearchConfig{URL: "http://es:9200"}.GetURL())
	assert.Equal(t, "http://a:9200", ElasticsearchConfig{Addresses: []string{"http://a:9200", "http://b:9200"}}.GetURL())
	assert.Equal(t, "", ElasticsearchConfig{}.GetURL())
}
