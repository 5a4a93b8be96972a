// internal/session/reducer.go
// Package session holds the accumulated investigation state for one
// subject. State changes flow through a pure reducer over discrete
// actions; the Store at the edge is the only mutable holder.
package session

import (
	"sort"

	"tracevista/internal/dedupe"
	"tracevista/internal/models"
)

// ActionType enumerates the reducer's mutation events.
type ActionType string

const (
	ActionAddResults   ActionType = "ADD_RESULTS"
	ActionAddEntities  ActionType = "ADD_ENTITIES"
	ActionAddToHistory ActionType = "ADD_TO_HISTORY"
	ActionClearAll     ActionType = "CLEAR_ALL"
)

// Action is one mutation event. Exactly one payload field is read,
// depending on Type.
type Action struct {
	Type     ActionType            `json:"type"`
	Results  []models.SearchResult `json:"results,omitempty"`
	Entities []models.Entity       `json:"entities,omitempty"`
	Query    string                `json:"query,omitempty"`
}

// Config bounds the reducer.
type Config struct {
	HistoryLimit       int // most recent queries kept
	LowResultThreshold int
}

// DefaultConfig returns the reference session settings.
func DefaultConfig() Config {
	return Config{
		HistoryLimit:       20,
		LowResultThreshold: 5,
	}
}

// Reduce applies one action to a session and returns the next state.
// Pure: the input state and action payloads are never mutated, and
// merged data stays until an explicit CLEAR_ALL.
func Reduce(state models.SearchSession, action Action, cfg Config) models.SearchSession {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultConfig().HistoryLimit
	}
	if cfg.LowResultThreshold <= 0 {
		cfg.LowResultThreshold = DefaultConfig().LowResultThreshold
	}

	switch action.Type {
	case ActionAddResults:
		merged := make([]models.SearchResult, 0, len(state.CompiledResults)+len(action.Results))
		merged = append(merged, state.CompiledResults...)
		merged = append(merged, action.Results...)
		merged = dedupe.Results(merged)
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].RelevanceScore > merged[j].RelevanceScore
		})
		state.CompiledResults = merged
		state.HasLowResults = len(merged) < cfg.LowResultThreshold
		return state

	case ActionAddEntities:
		state.Entities = mergeEntities(state.Entities, action.Entities)
		return state

	case ActionAddToHistory:
		if action.Query == "" {
			return state
		}
		history := make([]string, 0, len(state.SearchHistory)+1)
		history = append(history, state.SearchHistory...)
		history = append(history, action.Query)
		if len(history) > cfg.HistoryLimit {
			history = history[len(history)-cfg.HistoryLimit:]
		}
		state.SearchHistory = history
		return state

	case ActionClearAll:
		return models.SearchSession{}

	default:
		return state
	}
}

// mergeEntities merges by identity key: the higher-confidence copy wins
// and verification, once gained, is never lost.
func mergeEntities(existing, incoming []models.Entity) []models.Entity {
	byKey := make(map[string]int, len(existing))
	out := make([]models.Entity, len(existing))
	copy(out, existing)
	for i, e := range out {
		byKey[e.IdentityKey()] = i
	}

	for _, e := range incoming {
		key := e.IdentityKey()
		idx, ok := byKey[key]
		if !ok {
			byKey[key] = len(out)
			out = append(out, e)
			continue
		}
		if e.Confidence > out[idx].Confidence {
			verified := out[idx].Verified || e.Verified
			out[idx] = e
			out[idx].Verified = verified
		} else if e.Verified {
			out[idx].Verified = true
		}
	}
	return out
}
