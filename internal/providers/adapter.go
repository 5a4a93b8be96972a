// internal/providers/adapter.go
// Package providers defines the adapter boundary: each provider is
// pluggable, rate-limited, fallible I/O returning an opaque raw result
// list or an error.
package providers

import (
	"context"
	"fmt"

	"tracevista/internal/models"
)

// RawItem is one provider hit before normalization.
type RawItem struct {
	Title   string
	Snippet string
	URL     string
	Score   float64 // provider-reported score, 0 if the provider has none
}

// RawResult is an adapter's response to one query, including the actual
// spend the call incurred.
type RawResult struct {
	Items       []RawItem
	Cost        float64
	CreditsUsed float64
}

// Adapter is one external data source. Implementations must honor the
// context deadline and return rather than retry internally: the
// orchestrator owns failure policy.
type Adapter interface {
	Name() string
	Supports(category models.QueryCategory) bool
	EstimateCost(q models.ProviderQuery) float64
	Call(ctx context.Context, q models.ProviderQuery) (*RawResult, error)
}

// HTTPStatusError reports a non-2xx provider response.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("provider returned HTTP %d", e.StatusCode)
}

// MalformedPayloadError reports a response body the adapter could not
// interpret.
type MalformedPayloadError struct {
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return "malformed provider payload: " + e.Reason
}
