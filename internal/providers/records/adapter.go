// internal/providers/records/adapter.go
// Package records adapts the internal investigations index: subjects
// seen in prior reports are one more independent source in the fan-out.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tracevista/internal/common/logger"
	"tracevista/internal/models"
	"tracevista/internal/providers"

	"github.com/elastic/go-elasticsearch/v8"
)

const Name = "records"

type Config struct {
	Index       string
	MaxResults  int
	CostPerCall float64
}

func DefaultConfig() Config {
	return Config{
		Index:       "investigations",
		MaxResults:  10,
		CostPerCall: 0, // our own index is free to query
	}
}

type Adapter struct {
	config Config
	client *elasticsearch.Client
	logger logger.Logger
}

func New(config Config, client *elasticsearch.Client, log logger.Logger) *Adapter {
	return &Adapter{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"provider": Name}),
	}
}

func (a *Adapter) Name() string { return Name }

// Supports: prior reports answer identity and location questions, not
// platform-scoped or email-intelligence lookups.
func (a *Adapter) Supports(category models.QueryCategory) bool {
	switch category {
	case models.CategoryBasic, models.CategoryLocation, models.CategoryPhone,
		models.CategoryAddress, models.CategoryPublicRecord:
		return true
	default:
		return false
	}
}

func (a *Adapter) EstimateCost(models.ProviderQuery) float64 { return a.config.CostPerCall }

func (a *Adapter) Call(ctx context.Context, q models.ProviderQuery) (*providers.RawResult, error) {
	query := fmt.Sprintf(`{
		"size": %d,
		"query": {
			"multi_match": {
				"query": %s,
				"fields": ["subject^2", "summary", "details"]
			}
		}
	}`, a.config.MaxResults, mustJSON(q.Query))

	res, err := a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(a.config.Index),
		a.client.Search.WithBody(strings.NewReader(query)),
		a.client.Search.WithTimeout(5*time.Second),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, &providers.HTTPStatusError{StatusCode: res.StatusCode}
	}

	var searchResponse struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source struct {
					Subject string `json:"subject"`
					Summary string `json:"summary"`
					URL     string `json:"url"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResponse); err != nil {
		return nil, &providers.MalformedPayloadError{Reason: err.Error()}
	}

	items := make([]providers.RawItem, 0, len(searchResponse.Hits.Hits))
	for _, hit := range searchResponse.Hits.Hits {
		itemURL := hit.Source.URL
		if itemURL == "" {
			itemURL = fmt.Sprintf("records://%s/%s", a.config.Index, hit.ID)
		}
		items = append(items, providers.RawItem{
			Title:   hit.Source.Subject,
			Snippet: hit.Source.Summary,
			URL:     itemURL,
			Score:   hit.Score,
		})
	}

	a.logger.Debug("records lookup completed", map[string]interface{}{
		"query":       q.Query,
		"resultCount": len(items),
	})

	return &providers.RawResult{
		Items: items,
		Cost:  a.config.CostPerCall,
	}, nil
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
