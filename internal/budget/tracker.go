// internal/budget/tracker.go
// Package budget replaces ambient cost counters with an explicit value
// object: a Tracker is created per aggregation run, passed in, and its
// totals are returned in the report.
package budget

import (
	"sync"

	"tracevista/internal/models"
)

// Tracker accumulates spend against a per-run Budget. A limit of zero
// means unlimited for that dimension.
//
// Safe for concurrent use: the orchestrator may dispatch provider calls
// concurrently.
type Tracker struct {
	mu          sync.Mutex
	maxCost     float64
	maxCredits  float64
	cost        float64
	credits     float64
	perProvider map[string]float64
}

// NewTracker creates a tracker for one run.
func NewTracker(b models.Budget) *Tracker {
	return &Tracker{
		maxCost:     b.MaxCost,
		maxCredits:  b.MaxCredits,
		perProvider: make(map[string]float64),
	}
}

// CanAfford reports whether an attempt with the given estimated cost
// fits within the remaining budget. A call that cannot be afforded is
// skipped, not attempted.
func (t *Tracker) CanAfford(estimatedCost float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.maxCost > 0 && t.cost+estimatedCost > t.maxCost {
		return false
	}
	if t.maxCredits > 0 && t.credits >= t.maxCredits {
		return false
	}
	return true
}

// Spend records the actual cost and credits of a completed call.
func (t *Tracker) Spend(provider string, cost, credits float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cost += cost
	t.credits += credits
	t.perProvider[provider] += cost
}

// TotalCost returns cumulative cost across all providers.
func (t *Tracker) TotalCost() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cost
}

// CreditsUsed returns cumulative scraping credits consumed.
func (t *Tracker) CreditsUsed() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.credits
}

// PerProvider returns a copy of the per-provider cost breakdown.
func (t *Tracker) PerProvider() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]float64, len(t.perProvider))
	for k, v := range t.perProvider {
		out[k] = v
	}
	return out
}
