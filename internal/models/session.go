// internal/models/session.go
package models

// SearchSession accumulates everything found about one subject across
// repeated searches. Mutated only through the session reducer; never
// partially rolled back.
type SearchSession struct {
	CompiledResults []SearchResult `json:"compiledResults"` // deduplicated, relevance desc
	Entities        []Entity       `json:"entities"`        // correlated, unique by identity key
	SearchHistory   []string       `json:"searchHistory"`   // most recent queries, bounded
	HasLowResults   bool           `json:"hasLowResults"`
}
