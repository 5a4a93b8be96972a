// internal/session/reducer_test.go
package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracevista/internal/models"
)

func testResult(id, title, url string, relevance int) models.SearchResult {
	return models.SearchResult{ID: id, Title: title, URL: url, RelevanceScore: relevance}
}

func TestReduceAddResultsMergesAndSorts(t *testing.T) {
	cfg := DefaultConfig()
	state := models.SearchSession{
		CompiledResults: []models.SearchResult{testResult("a", "A", "u1", 40)},
	}

	next := Reduce(state, Action{
		Type: ActionAddResults,
		Results: []models.SearchResult{
			testResult("b", "B", "u2", 90),
			testResult("c", "C", "u3", 10),
		},
	}, cfg)

	require.Len(t, next.CompiledResults, 3)
	assert.Equal(t, "b", next.CompiledResults[0].ID)
	assert.Equal(t, "a", next.CompiledResults[1].ID)
	assert.Equal(t, "c", next.CompiledResults[2].ID)
	assert.True(t, next.HasLowResults) // 3 < default threshold 5

	// the input state is untouched
	assert.Len(t, state.CompiledResults, 1)
}

func TestReduceAddResultsDeduplicatesAcrossDispatches(t *testing.T) {
	cfg := DefaultConfig()

	state := Reduce(models.SearchSession{}, Action{
		Type:    ActionAddResults,
		Results: []models.SearchResult{testResult("a", "Same Title", "https://example.com", 50)},
	}, cfg)
	state = Reduce(state, Action{
		Type:    ActionAddResults,
		Results: []models.SearchResult{testResult("b", "same title", "HTTPS://EXAMPLE.COM", 99)},
	}, cfg)

	require.Len(t, state.CompiledResults, 1)
	assert.Equal(t, "a", state.CompiledResults[0].ID)
}

func TestReduceAddResultsClearsLowFlagAtThreshold(t *testing.T) {
	cfg := Config{HistoryLimit: 20, LowResultThreshold: 3}

	var results []models.SearchResult
	for i := 0; i < 3; i++ {
		results = append(results, testResult(fmt.Sprintf("r%d", i), fmt.Sprintf("T%d", i), fmt.Sprintf("u%d", i), 50))
	}
	state := Reduce(models.SearchSession{HasLowResults: true}, Action{Type: ActionAddResults, Results: results}, cfg)

	assert.False(t, state.HasLowResults)
}

func TestReduceAddEntitiesHigherConfidenceWins(t *testing.T) {
	cfg := DefaultConfig()
	state := models.SearchSession{
		Entities: []models.Entity{{
			Type: models.EntityPhone, Value: "(212) 555-0100", Confidence: 60, Source: "websearch",
		}},
	}

	next := Reduce(state, Action{
		Type: ActionAddEntities,
		Entities: []models.Entity{{
			Type: models.EntityPhone, Value: "212-555-0100", Confidence: 75, Source: "records",
		}},
	}, cfg)

	require.Len(t, next.Entities, 1)
	assert.Equal(t, 75, next.Entities[0].Confidence)
	assert.Equal(t, "records", next.Entities[0].Source)
}

func TestReduceAddEntitiesVerificationIsSticky(t *testing.T) {
	cfg := DefaultConfig()
	state := models.SearchSession{
		Entities: []models.Entity{{
			Type: models.EntityEmail, Value: "x@example.com", Confidence: 60, Verified: true,
		}},
	}

	next := Reduce(state, Action{
		Type: ActionAddEntities,
		Entities: []models.Entity{{
			Type: models.EntityEmail, Value: "x@example.com", Confidence: 80, Verified: false,
		}},
	}, cfg)

	require.Len(t, next.Entities, 1)
	assert.Equal(t, 80, next.Entities[0].Confidence)
	assert.True(t, next.Entities[0].Verified)
}

func TestReduceAddEntitiesNewKeyAppends(t *testing.T) {
	cfg := DefaultConfig()
	state := models.SearchSession{
		Entities: []models.Entity{{Type: models.EntityPhone, Value: "(212) 555-0100", Confidence: 60}},
	}

	next := Reduce(state, Action{
		Type:     ActionAddEntities,
		Entities: []models.Entity{{Type: models.EntityEmail, Value: "x@example.com", Confidence: 70}},
	}, cfg)

	require.Len(t, next.Entities, 2)
	assert.Equal(t, models.EntityPhone, next.Entities[0].Type)
	assert.Equal(t, models.EntityEmail, next.Entities[1].Type)
}

func TestReduceHistoryBounded(t *testing.T) {
	cfg := Config{HistoryLimit: 3, LowResultThreshold: 5}

	var state models.SearchSession
	for i := 1; i <= 5; i++ {
		state = Reduce(state, Action{Type: ActionAddToHistory, Query: fmt.Sprintf("q%d", i)}, cfg)
	}

	assert.Equal(t, []string{"q3", "q4", "q5"}, state.SearchHistory)
}

func TestReduceHistoryIgnoresEmptyQuery(t *testing.T) {
	state := Reduce(models.SearchSession{}, Action{Type: ActionAddToHistory}, DefaultConfig())
	assert.Empty(t, state.SearchHistory)
}

func TestReduceClearAll(t *testing.T) {
	state := models.SearchSession{
		CompiledResults: []models.SearchResult{testResult("a", "T", "u", 50)},
		Entities:        []models.Entity{{Type: models.EntityPhone, Value: "(212) 555-0100"}},
		SearchHistory:   []string{"q1"},
		HasLowResults:   true,
	}

	next := Reduce(state, Action{Type: ActionClearAll}, DefaultConfig())
	assert.Equal(t, models.SearchSession{}, next)
}

func TestReduceUnknownActionIsNoOp(t *testing.T) {
	state := models.SearchSession{SearchHistory: []string{"q1"}}
	next := Reduce(state, Action{Type: "UNKNOWN"}, DefaultConfig())
	assert.Equal(t, state, next)
}
