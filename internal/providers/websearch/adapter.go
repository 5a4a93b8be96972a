// internal/providers/websearch/adapter.go
// Package websearch adapts a general web-search JSON API (Google
// Programmable Search shaped) to the provider boundary.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"tracevista/internal/common/httpclient"
	"tracevista/internal/common/logger"
	"tracevista/internal/models"
	"tracevista/internal/providers"

	"github.com/xeipuuv/gojsonschema"
)

const Name = "websearch"

// envelopeSchema rejects response bodies that do not carry the expected
// items array before any field access.
const envelopeSchema = `{
	"type": "object",
	"properties": {
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"title":   {"type": "string"},
					"link":    {"type": "string"},
					"snippet": {"type": "string"}
				}
			}
		}
	}
}`

var envelopeLoader = gojsonschema.NewStringLoader(envelopeSchema)

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

// Supports: general search serves every query category.
func (a *Adapter) Supports(models.QueryCategory) bool { return true }

func (a *Adapter) EstimateCost(models.ProviderQuery) float64 { return a.config.CostPerCall }

func (a *Adapter) Call(ctx context.Context, q models.ProviderQuery) (*providers.RawResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.searchURL(q.Query), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &providers.HTTPStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	check, err := gojsonschema.Validate(envelopeLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, &providers.MalformedPayloadError{Reason: err.Error()}
	}
	if !check.Valid() {
		return nil, &providers.MalformedPayloadError{Reason: schemaErrors(check)}
	}

	var apiResponse struct {
		Items []struct {
			Link    string `json:"link"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, &providers.MalformedPayloadError{Reason: err.Error()}
	}

	items := make([]providers.RawItem, 0, len(apiResponse.Items))
	for _, item := range apiResponse.Items {
		items = append(items, providers.RawItem{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
		if len(items) >= a.config.MaxResults {
			break
		}
	}

	a.logger.Debug("web search completed", map[string]interface{}{
		"query":       q.Query,
		"resultCount": len(items),
	})

	return &providers.RawResult{
		Items: items,
		Cost:  a.config.CostPerCall,
	}, nil
}

func (a *Adapter) searchURL(query string) string {
	baseURL, _ := url.Parse(a.config.BaseURL)
	params := url.Values{}
	params.Add("key", a.config.APIKey)
	params.Add("cx", a.config.EngineID)
	params.Add("q", query)
	params.Add("num", fmt.Sprintf("%d", a.config.MaxResults))
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}

func schemaErrors(result *gojsonschema.Result) string {
	if len(result.Errors()) == 0 {
		return "schema validation failed"
	}
	return result.Errors()[0].String()
}
