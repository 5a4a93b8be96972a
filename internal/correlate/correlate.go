// internal/correlate/correlate.go
// Package correlate cross-references entities across every fetched
// result, pre-dedup. Recurrence across independent sources is the only
// mechanism that auto-verifies an entity below the confidence threshold.
package correlate

import (
	"tracevista/internal/models"
)

// Config carries the correlation constants.
type Config struct {
	SourceBoost       int // added per additional distinct source
	VerifiedThreshold int // confidence at which a single source verifies
	MinSources        int // distinct sources that verify regardless of confidence
}

// DefaultConfig returns the reference calibration.
func DefaultConfig() Config {
	return Config{
		SourceBoost:       10,
		VerifiedThreshold: 70,
		MinSources:        2,
	}
}

// Outcome is the correlated view over all results' entity lists. The
// input results are never mutated.
type Outcome struct {
	Entities         []models.Entity
	CorrelationScore float64 // percentage of entities that are verified
}

type accumulator struct {
	entity  models.Entity
	sources map[string]bool
}

// Run builds the correlated entity set. For each identity key it tracks
// occurrence count and the distinct source set; confidence is boosted by
// SourceBoost per additional distinct source and clamped to 100.
func Run(results []models.SearchResult, cfg Config) Outcome {
	byKey := make(map[string]*accumulator)
	var order []string

	for _, r := range results {
		for _, e := range r.Entities {
			key := e.IdentityKey()
			acc, ok := byKey[key]
			if !ok {
				acc = &accumulator{
					entity:  e, // struct copy; the result's own list stays untouched
					sources: make(map[string]bool),
				}
				byKey[key] = acc
				order = append(order, key)
			}
			if e.Confidence > acc.entity.Confidence {
				acc.entity.Confidence = e.Confidence
			}
			if e.Source != "" {
				acc.sources[e.Source] = true
			}
		}
	}

	if len(order) == 0 {
		return Outcome{Entities: []models.Entity{}}
	}

	entities := make([]models.Entity, 0, len(order))
	verified := 0
	for _, key := range order {
		acc := byKey[key]
		e := acc.entity

		distinct := len(acc.sources)
		if distinct > 1 {
			e.Confidence = models.ClampConfidence(e.Confidence + cfg.SourceBoost*(distinct-1))
		}
		e.Verified = e.Confidence >= cfg.VerifiedThreshold || distinct >= cfg.MinSources
		if e.Verified {
			verified++
		}
		entities = append(entities, e)
	}

	return Outcome{
		Entities:         entities,
		CorrelationScore: 100 * float64(verified) / float64(len(entities)),
	}
}
