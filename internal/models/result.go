// internal/models/result.go
package models

import (
	"strings"
	"time"
)

// SearchResult is one provider hit. Its Entities list holds only entities
// extracted from this result's own title/snippet; cross-result correlation
// produces a separate view and never mutates this list.
type SearchResult struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Snippet        string    `json:"snippet"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	Confidence     int       `json:"confidence"`
	RelevanceScore int       `json:"relevanceScore"`
	Timestamp      time.Time `json:"timestamp"`
	Query          string    `json:"query"`
	Entities       []Entity  `json:"entities"`
}

// DedupeKey is the case-normalized (title, url) identity used by the
// deduplicator.
func (r SearchResult) DedupeKey() string {
	return strings.ToLower(strings.TrimSpace(r.Title)) + "|" + strings.ToLower(strings.TrimSpace(r.URL))
}

// ProviderError records one provider-level failure. Provider failures are
// always non-fatal to the aggregation run.
type ProviderError struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// BudgetSkip records a call that was never attempted because it would
// have exceeded the run's budget. Distinct from a failure.
type BudgetSkip struct {
	Provider      string  `json:"provider"`
	Query         string  `json:"query"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// AggregatedReport is the single settled output of an aggregation run.
type AggregatedReport struct {
	Results          []SearchResult  `json:"results"`
	Entities         []Entity        `json:"entities"`
	Errors           []ProviderError `json:"errors"`
	Skipped          []BudgetSkip    `json:"skipped"`
	HasLowResults    bool            `json:"hasLowResults"`
	TotalCost        float64         `json:"totalCost"`
	CreditsUsed      float64         `json:"creditsUsed"`
	CorrelationScore float64         `json:"correlationScore"`
	Partial          bool            `json:"partial"` // true when the run was cancelled mid-flight
}
