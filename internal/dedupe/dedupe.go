// internal/dedupe/dedupe.go
// Package dedupe collapses a result list to unique items by the
// normalized (title, url) key. First occurrence wins; later duplicates
// are dropped entirely, not merged. Entity correlation runs over the
// pre-dedup list, so dropping a duplicate display row loses nothing.
package dedupe

import "tracevista/internal/models"

// Results removes duplicate search results, preserving first-seen order.
func Results(results []models.SearchResult) []models.SearchResult {
	if len(results) == 0 {
		return []models.SearchResult{}
	}

	seen := make(map[string]bool, len(results))
	out := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		key := r.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
