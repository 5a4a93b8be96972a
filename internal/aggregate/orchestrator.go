// internal/aggregate/orchestrator.go
// Package aggregate fans a planned query list out to the configured
// provider adapters, merges partial results under partial failure, and
// runs the extraction/scoring/dedup/correlation pipeline over whatever
// came back.
package aggregate

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"sync"
	"time"

	"tracevista/internal/budget"
	"tracevista/internal/common/errors"
	"tracevista/internal/common/logger"
	"tracevista/internal/common/metrics"
	"tracevista/internal/correlate"
	"tracevista/internal/dedupe"
	"tracevista/internal/extract"
	"tracevista/internal/models"
	"tracevista/internal/planner"
	"tracevista/internal/providers"
	"tracevista/internal/scoring"

	"github.com/google/uuid"
)

// Orchestrator runs aggregation over a provider registry.
type Orchestrator struct {
	cfg       Config
	registry  *providers.Registry
	extractor *extract.Extractor
	logger    logger.Logger
}

func New(cfg Config, registry *providers.Registry, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		registry:  registry,
		extractor: extract.New(cfg.Scoring),
		logger:    log.WithFields(map[string]interface{}{"component": "orchestrator"}),
	}
}

// plannedCall is one (query, adapter) pair in the deterministic schedule.
type plannedCall struct {
	order   int
	query   models.ProviderQuery
	adapter providers.Adapter
}

// mergeState is the single shared merge target. Provider calls write to
// it only under the mutex; the pipeline steps after the fan-out run
// single-threaded over the settled state.
type mergeState struct {
	mu                sync.Mutex
	fetched           map[int][]models.SearchResult // call order -> results
	errs              []models.ProviderError
	providersWithHits map[string]bool
	entityTypes       map[models.EntityType]bool
	stopped           bool
}

// Run validates the subject, plans its queries, and aggregates. The only
// fatal error is validation failure; provider failures surface as
// ProviderError entries in the report.
func (o *Orchestrator) Run(ctx context.Context, params models.SubjectParams, b models.Budget) (*models.AggregatedReport, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, errors.ValidationError("subject name is required")
	}
	queries := planner.Plan(params, o.cfg.Planner)
	return o.RunQueries(ctx, params, queries, b)
}

// RunQueries aggregates an already-planned query list. Queries are
// consumed exactly once, in priority order against each supporting
// adapter in registry order.
func (o *Orchestrator) RunQueries(ctx context.Context, params models.SubjectParams, queries []models.ProviderQuery, b models.Budget) (*models.AggregatedReport, error) {
	tracker := budget.NewTracker(b)
	state := &mergeState{
		fetched:           make(map[int][]models.SearchResult),
		providersWithHits: make(map[string]bool),
		entityTypes:       make(map[models.EntityType]bool),
	}

	var schedule []plannedCall
	for _, q := range queries {
		for _, a := range o.registry.For(q.Category) {
			schedule = append(schedule, plannedCall{order: len(schedule), query: q, adapter: a})
		}
	}

	o.logger.Info("aggregation starting", map[string]interface{}{
		"subject":  params.Name,
		"queries":  len(queries),
		"schedule": len(schedule),
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	maxInFlight := o.cfg.MaxInFlight
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	sem := make(chan struct{}, maxInFlight)

	var skipped []models.BudgetSkip
	var wg sync.WaitGroup
	callsMade := 0

dispatch:
	for _, call := range schedule {
		if runCtx.Err() != nil {
			break
		}

		estimated := call.adapter.EstimateCost(call.query)
		if !tracker.CanAfford(estimated) {
			// never attempted: a skip, not a failure
			skipped = append(skipped, models.BudgetSkip{
				Provider:      call.adapter.Name(),
				Query:         call.query.Query,
				EstimatedCost: estimated,
			})
			metrics.BudgetSkips.WithLabelValues(call.adapter.Name()).Inc()
			continue
		}

		if callsMade > 0 {
			if delay := o.interCallDelay(callsMade); delay > 0 {
				timer := time.NewTimer(delay)
				select {
				case <-runCtx.Done():
					timer.Stop()
					break dispatch
				case <-timer.C:
				}
			}
		}

		select {
		case <-runCtx.Done():
			break dispatch
		case sem <- struct{}{}:
			// a finishing call may release its slot and trigger early
			// stop at once; the stop wins
			if runCtx.Err() != nil {
				break dispatch
			}
		}

		callsMade++
		wg.Add(1)
		go func(call plannedCall) {
			defer wg.Done()
			defer func() { <-sem }()
			o.callProvider(runCtx, cancel, call, params, tracker, state)
		}(call)
	}

	wg.Wait()

	// External cancellation yields a partial report, never a complete one.
	partial := ctx.Err() != nil

	all := flatten(state.fetched, len(schedule))
	outcome := correlate.Run(all, o.cfg.Correlation)

	compiled := dedupe.Results(all)
	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].RelevanceScore > compiled[j].RelevanceScore
	})

	hasLow := LowSignal(compiled, o.cfg.LowResultThreshold)
	if hasLow {
		metrics.LowSignalRuns.Inc()
	}

	report := &models.AggregatedReport{
		Results:          compiled,
		Entities:         outcome.Entities,
		Errors:           state.errs,
		Skipped:          skipped,
		HasLowResults:    hasLow,
		TotalCost:        tracker.TotalCost(),
		CreditsUsed:      tracker.CreditsUsed(),
		CorrelationScore: outcome.CorrelationScore,
		Partial:          partial,
	}
	if report.Errors == nil {
		report.Errors = []models.ProviderError{}
	}
	if report.Skipped == nil {
		report.Skipped = []models.BudgetSkip{}
	}

	o.logger.Info("aggregation settled", map[string]interface{}{
		"results":       len(report.Results),
		"entities":      len(report.Entities),
		"errors":        len(report.Errors),
		"skipped":       len(report.Skipped),
		"hasLowResults": report.HasLowResults,
		"totalCost":     report.TotalCost,
		"partial":       report.Partial,
	})

	return report, nil
}

// callProvider issues one provider call under the per-call timeout and
// merges either its results or its classified failure.
func (o *Orchestrator) callProvider(runCtx context.Context, stop context.CancelFunc, call plannedCall, params models.SubjectParams, tracker *budget.Tracker, state *mergeState) {
	name := call.adapter.Name()

	callCtx, cancel := context.WithTimeout(runCtx, o.cfg.CallTimeout)
	defer cancel()

	start := time.Now()
	raw, err := call.adapter.Call(callCtx, call.query)
	metrics.ProviderCallDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		code := classify(err, callCtx)
		metrics.ProviderCalls.WithLabelValues(name, "error").Inc()
		o.logger.Warn("provider call failed", map[string]interface{}{
			"provider": name,
			"query":    call.query.Query,
			"code":     string(code),
			"error":    err.Error(),
		})

		state.mu.Lock()
		state.errs = append(state.errs, models.ProviderError{
			Provider: name,
			Code:     string(code),
			Message:  err.Error(),
		})
		state.mu.Unlock()
		return
	}

	// Abandoned in-flight call after cancellation: discard the result.
	if runCtx.Err() != nil {
		return
	}

	metrics.ProviderCalls.WithLabelValues(name, "ok").Inc()
	tracker.Spend(name, raw.Cost, raw.CreditsUsed)
	if raw.CreditsUsed > 0 {
		metrics.CreditsUsed.WithLabelValues(name).Add(raw.CreditsUsed)
	}

	results := o.normalize(raw, call, params)

	state.mu.Lock()
	defer state.mu.Unlock()

	state.fetched[call.order] = results

	hasEntities := false
	for _, r := range results {
		for _, e := range r.Entities {
			hasEntities = true
			state.entityTypes[e.Type] = true
			metrics.EntitiesExtracted.WithLabelValues(string(e.Type)).Inc()
		}
	}
	if hasEntities {
		state.providersWithHits[name] = true
	}

	if !o.cfg.DisableEarlyStop && !state.stopped &&
		len(state.providersWithHits) >= o.cfg.EarlyStopProviders &&
		len(state.entityTypes) >= o.cfg.EarlyStopEntityTypes {
		state.stopped = true
		o.logger.Info("sufficient data collected, stopping early", map[string]interface{}{
			"providers":   len(state.providersWithHits),
			"entityTypes": len(state.entityTypes),
		})
		stop()
	}
}

// normalize converts a raw provider response into scored SearchResults
// with entities extracted from each result's own title and snippet.
func (o *Orchestrator) normalize(raw *providers.RawResult, call plannedCall, params models.SubjectParams) []models.SearchResult {
	now := time.Now()
	extractCtx := extract.Context{
		SearchName:     params.Name,
		SearchLocation: params.Location(),
		Source:         call.adapter.Name(),
	}

	results := make([]models.SearchResult, 0, len(raw.Items))
	for _, item := range raw.Items {
		entities := o.extractor.Extract(item.Title+" "+item.Snippet, extractCtx)
		relevance := scoring.ResultRelevance(item.Title, item.Snippet, call.query.Query, o.cfg.Scoring)

		// Result confidence: average entity confidence when the snippet
		// yielded entities, otherwise the relevance score stands in.
		confidence := relevance
		if len(entities) > 0 {
			sum := 0
			for _, e := range entities {
				sum += e.Confidence
			}
			confidence = models.ClampConfidence(sum / len(entities))
		}

		results = append(results, models.SearchResult{
			ID:             uuid.NewString(),
			Title:          item.Title,
			Snippet:        item.Snippet,
			URL:            item.URL,
			Source:         call.adapter.Name(),
			Confidence:     confidence,
			RelevanceScore: relevance,
			Timestamp:      now,
			Query:          call.query.Query,
			Entities:       entities,
		})
	}
	return results
}

func (o *Orchestrator) interCallDelay(callsMade int) time.Duration {
	if o.cfg.BaseDelay <= 0 {
		return 0
	}
	delay := o.cfg.BaseDelay
	for i := 1; i < callsMade; i++ {
		delay *= 2
		if delay >= o.cfg.MaxDelay {
			return o.cfg.MaxDelay
		}
	}
	if o.cfg.MaxDelay > 0 && delay > o.cfg.MaxDelay {
		delay = o.cfg.MaxDelay
	}
	return delay
}

// classify maps a provider call error onto the error taxonomy.
func classify(err error, callCtx context.Context) errors.ErrorCode {
	var statusErr *providers.HTTPStatusError
	var payloadErr *providers.MalformedPayloadError

	switch {
	case stderrors.Is(err, context.DeadlineExceeded),
		callCtx.Err() == context.DeadlineExceeded,
		strings.Contains(err.Error(), "Client.Timeout"),
		strings.Contains(err.Error(), "deadline exceeded"):
		return errors.ErrCodeProviderTimeout
	case stderrors.As(err, &statusErr):
		if statusErr.StatusCode == 429 {
			return errors.ErrCodeProviderRateLimited
		}
		return errors.ErrCodeProviderHTTPStatus
	case stderrors.As(err, &payloadErr):
		return errors.ErrCodeProviderMalformedPayload
	default:
		return errors.ErrCodeProviderUnavailable
	}
}

// flatten restores fetch order across the per-call result lists.
func flatten(fetched map[int][]models.SearchResult, scheduleLen int) []models.SearchResult {
	var out []models.SearchResult
	for i := 0; i < scheduleLen; i++ {
		out = append(out, fetched[i]...)
	}
	if out == nil {
		out = []models.SearchResult{}
	}
	return out
}
