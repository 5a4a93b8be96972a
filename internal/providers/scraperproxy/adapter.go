// internal/providers/scraperproxy/adapter.go
// Package scraperproxy adapts a proxy-backed scraping service: the
// proxy fetches a people-search page for a query, returns its HTML
// wrapped in a JSON envelope, and bills credits per call.
package scraperproxy

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tracevista/internal/common/httpclient"
	"tracevista/internal/common/logger"
	"tracevista/internal/models"
	"tracevista/internal/providers"

	"golang.org/x/net/html"
)

const Name = "scraperproxy"

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
		CostPerCall: 2.0,
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

// Supports: scraping pays off on identity pages, not on email lookups.
func (a *Adapter) Supports(category models.QueryCategory) bool {
	return category != models.CategoryEmail
}

func (a *Adapter) EstimateCost(q models.ProviderQuery) float64 {
	if q.EstimatedCost > 0 {
		return q.EstimatedCost
	}
	return a.config.CostPerCall
}

func (a *Adapter) Call(ctx context.Context, q models.ProviderQuery) (*providers.RawResult, error) {
	endpoint, _ := url.Parse(a.config.BaseURL)
	params := url.Values{}
	params.Add("api_key", a.config.APIKey)
	params.Add("q", q.Query)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
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

	var envelope struct {
		HTML string `json:"html"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &providers.MalformedPayloadError{Reason: err.Error()}
	}
	if envelope.HTML == "" {
		return nil, &providers.MalformedPayloadError{Reason: "envelope carries no html"}
	}

	credits, known := ParseCredits(body)
	if !known {
		a.logger.Warn("unknown credit shape, counting zero credits", map[string]interface{}{
			"query": q.Query,
		})
	}

	title, text := parsePage(envelope.HTML)
	items := toItems(title, text, envelope.URL, a.config.MaxResults)

	a.logger.Debug("scrape completed", map[string]interface{}{
		"query":       q.Query,
		"resultCount": len(items),
		"credits":     credits,
	})

	return &providers.RawResult{
		Items:       items,
		Cost:        a.config.CostPerCall,
		CreditsUsed: credits,
	}, nil
}

// parsePage walks the scraped document and pulls out the title and the
// visible text, script and style subtrees excluded.
func parsePage(rawHTML string) (title string, text string) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "title":
				if n.FirstChild != nil && title == "" {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, strings.TrimSpace(sb.String())
}

// toItems slices the page text into snippet-sized windows so the
// extractor downstream sees manageable chunks.
func toItems(title, text, pageURL string, maxResults int) []providers.RawItem {
	if text == "" {
		return nil
	}

	const window = 400
	var items []providers.RawItem
	for start := 0; start < len(text) && len(items) < maxResults; start += window {
		end := start + window
		if end > len(text) {
			end = len(text)
		}
		items = append(items, providers.RawItem{
			Title:   title,
			Snippet: text[start:end],
			URL:     pageURL,
		})
	}
	return items
}
