// internal/providers/websearch/config.go
package websearch

import "time"

type Config struct {
	BaseURL     string
	APIKey      string
	EngineID    string
	MaxResults  int
	CostPerCall float64
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxResults:  10,
		CostPerCall: 1.0,
		Timeout:     5 * time.Second,
	}
}
