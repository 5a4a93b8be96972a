// internal/extract/extractor.go
// Package extract pulls typed identity entities out of unstructured
// snippet text. Matchers run independently per entity type over the same
// text; deduplication is a downstream concern, never done here.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tracevista/internal/models"
	"tracevista/internal/scoring"

	"github.com/google/uuid"
)

var (
	phoneRe = regexp.MustCompile(`(?:\+?1[\s.-]?)?\(?(\d{3})\)?[\s.-]?(\d{3})[\s.-]?(\d{4})\b`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// leading house number, up to 50 word characters, then a street suffix
	addressRe = regexp.MustCompile(`(?i)\b\d{1,6}\s+[\w\s.]{1,50}?\b(St|Street|Ave|Avenue|Rd|Road|Blvd|Boulevard|Dr|Drive|Ln|Lane|Ct|Court|Cir|Circle|Way|Pl|Place)\b`)
	vinRe     = regexp.MustCompile(`\b[A-HJ-NPR-Z0-9]{17}\b`)
	// boundaries only on the digit side; \b cannot sit between two non-word runes
	ssnRe  = regexp.MustCompile(`\*{3}-\*{2}-\d{4}\b|\b\d{3}-\*{2}-\*{4}`)
	nameRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2}\b`)
)

// Context carries the subject parameters a matcher needs: the search
// name (to avoid re-extracting the query itself), the search location
// (address scoring), and the provider source stamped onto each entity.
type Context struct {
	SearchName     string
	SearchLocation string
	Source         string
}

// Extractor applies every pattern matcher to a text. A single text may
// yield multiple entities of multiple types.
type Extractor struct {
	scoring scoring.Config
}

func New(scoringCfg scoring.Config) *Extractor {
	return &Extractor{scoring: scoringCfg}
}

// Extract runs all matchers over text and returns the candidate
// entities with their base confidence.
func (e *Extractor) Extract(text string, ctx Context) []models.Entity {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	now := time.Now()
	var entities []models.Entity

	add := func(t models.EntityType, value string, confidence int) {
		entities = append(entities, models.Entity{
			ID:         uuid.NewString(),
			Type:       t,
			Value:      value,
			Confidence: confidence,
			Source:     ctx.Source,
			Timestamp:  now,
		})
	}

	for _, m := range phoneRe.FindAllStringSubmatch(text, -1) {
		display := fmt.Sprintf("(%s) %s-%s", m[1], m[2], m[3])
		add(models.EntityPhone, display, scoring.PhoneConfidence(display, e.scoring))
	}

	for _, m := range emailRe.FindAllString(text, -1) {
		add(models.EntityEmail, m, scoring.EmailConfidence(m, e.scoring))
	}

	for _, m := range addressRe.FindAllString(text, -1) {
		value := strings.TrimSpace(m)
		add(models.EntityAddress, value, scoring.AddressConfidence(value, ctx.SearchLocation, e.scoring))
	}

	for _, m := range vinRe.FindAllString(text, -1) {
		add(models.EntityVIN, m, models.ClampConfidence(e.scoring.VINBase))
	}

	for _, m := range ssnRe.FindAllString(text, -1) {
		add(models.EntitySSNMasked, m, models.ClampConfidence(e.scoring.SSNMaskedBase))
	}

	searchName := strings.ToLower(ctx.SearchName)
	for _, m := range nameRe.FindAllString(text, -1) {
		// never re-extract the subject's own query
		if searchName != "" && strings.Contains(strings.ToLower(m), searchName) {
			continue
		}
		add(models.EntityName, m, scoring.NameConfidence(m, ctx.SearchName, e.scoring))
	}

	return entities
}
