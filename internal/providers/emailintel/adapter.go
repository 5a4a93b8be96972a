// internal/providers/emailintel/adapter.go
// Package emailintel adapts an email-intelligence API: given an email
// address it returns breach/profile sightings as search results.
package emailintel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"tracevista/internal/common/httpclient"
	"tracevista/internal/common/logger"
	"tracevista/internal/models"
	"tracevista/internal/providers"
)

const Name = "emailintel"

type Config struct {
	BaseURL     string
	APIKey      string
	MaxResults  int
	CostPerCall float64
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxResults:  10,
		CostPerCall: 1.5,
		Timeout:     5 * time.Second,
	}
}

type Adapter struct {
	config Config
	client *httpclient.Client
	logger logger.Logger
}

func New(config Config, log logger.Logger) *Adapter {
	return &Adapter{
		config: config,
		client: httpclient.New(config.Timeout),
		logger: log.WithFields(map[string]interface{}{"provider": Name}),
	}
}

func (a *Adapter) Name() string { return Name }

// Supports: only email-qualified queries carry an address this API can
// look up.
func (a *Adapter) Supports(category models.QueryCategory) bool {
	return category == models.CategoryEmail
}

func (a *Adapter) EstimateCost(models.ProviderQuery) float64 { return a.config.CostPerCall }

func (a *Adapter) Call(ctx context.Context, q models.ProviderQuery) (*providers.RawResult, error) {
	endpoint, _ := url.Parse(a.config.BaseURL)
	params := url.Values{}
	params.Add("email", q.Query)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &providers.HTTPStatusError{StatusCode: resp.StatusCode}
	}

	var apiResponse struct {
		Sightings []struct {
			Site    string `json:"site"`
			Title   string `json:"title"`
			Summary string `json:"summary"`
			URL     string `json:"url"`
		} `json:"sightings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, &providers.MalformedPayloadError{Reason: err.Error()}
	}

	items := make([]providers.RawItem, 0, len(apiResponse.Sightings))
	for _, s := range apiResponse.Sightings {
		title := s.Title
		if title == "" {
			title = s.Site
		}
		items = append(items, providers.RawItem{
			Title:   title,
			Snippet: s.Summary,
			URL:     s.URL,
		})
		if len(items) >= a.config.MaxResults {
			break
		}
	}

	a.logger.Debug("email lookup completed", map[string]interface{}{
		"query":       q.Query,
		"resultCount": len(items),
	})

	return &providers.RawResult{
		Items: items,
		Cost:  a.config.CostPerCall,
	}, nil
}
