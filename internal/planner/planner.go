// internal/planner/planner.go
// Package planner turns subject parameters into an ordered list of
// provider queries. Pure and deterministic: the same params always plan
// the same queries.
package planner

import (
	"fmt"
	"sort"

	"tracevista/internal/models"
)

// Config bounds query generation. The cap exists to bound spend, not to
// rank results.
type Config struct {
	MaxQueries int
}

// DefaultConfig returns the reference planner settings.
func DefaultConfig() Config {
	return Config{MaxQueries: 8}
}

// Per-category estimated cost in provider credits. Scraping-heavy
// categories cost more than plain API lookups.
var categoryCost = map[models.QueryCategory]float64{
	models.CategoryBasic:        1.0,
	models.CategoryLocation:     1.0,
	models.CategoryPhone:        1.5,
	models.CategoryEmail:        1.5,
	models.CategoryAddress:      1.5,
	models.CategorySocial:       2.0,
	models.CategoryBusiness:     2.0,
	models.CategoryPublicRecord: 2.5,
}

// Plan generates queries by category, omitting any category whose
// required field is absent, and caps the output at cfg.MaxQueries by
// priority (1 = highest).
func Plan(params models.SubjectParams, cfg Config) []models.ProviderQuery {
	if params.Name == "" {
		return []models.ProviderQuery{}
	}
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = DefaultConfig().MaxQueries
	}

	var queries []models.ProviderQuery
	add := func(category models.QueryCategory, priority int, query string) {
		queries = append(queries, models.ProviderQuery{
			Query:         query,
			Category:      category,
			Priority:      priority,
			EstimatedCost: categoryCost[category],
		})
	}

	add(models.CategoryBasic, 1, fmt.Sprintf("%q", params.Name))

	if loc := params.Location(); loc != "" {
		add(models.CategoryLocation, 1, fmt.Sprintf("%q %s", params.Name, loc))
	}
	if params.Phone != "" {
		add(models.CategoryPhone, 2, fmt.Sprintf("%q %q", params.Name, params.Phone))
	}
	if params.Email != "" {
		add(models.CategoryEmail, 2, fmt.Sprintf("%q", params.Email))
	}
	if params.Address != "" {
		add(models.CategoryAddress, 2, fmt.Sprintf("%q %q", params.Name, params.Address))
	}

	add(models.CategorySocial, 4, fmt.Sprintf("%q profile facebook OR linkedin OR twitter", params.Name))
	add(models.CategoryBusiness, 4, fmt.Sprintf("%q business owner LLC", params.Name))

	publicRecord := fmt.Sprintf("%q court records property", params.Name)
	if params.State != "" {
		publicRecord = fmt.Sprintf("%q %s court records property", params.Name, params.State)
	}
	add(models.CategoryPublicRecord, 5, publicRecord)

	// stable: preserves generation order within a priority
	sort.SliceStable(queries, func(i, j int) bool {
		return queries[i].Priority < queries[j].Priority
	})

	if len(queries) > cfg.MaxQueries {
		queries = queries[:cfg.MaxQueries]
	}
	return queries
}
