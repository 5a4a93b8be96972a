// internal/aggregate/guard.go
package aggregate

import "tracevista/internal/models"

// DefaultLowResultThreshold is the compiled result count below which a
// run is flagged as low-signal.
const DefaultLowResultThreshold = 5

// LowSignal reports whether too few real results were found. This is a
// state flag, not an error: the run still returns whatever exists, and
// the engine never synthesizes placeholder results to pad the count.
func LowSignal(results []models.SearchResult, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultLowResultThreshold
	}
	return len(results) < threshold
}
