// internal/scoring/scorer.go
// Package scoring computes per-entity confidence and per-result relevance.
// Every function is pure and deterministic; outputs are always in [0,100].
package scoring

import (
	"regexp"
	"strings"
	"unicode"

	"tracevista/internal/models"
)

var (
	areaCodeRe     = regexp.MustCompile(`^[2-9]\d{2}$`)
	canonicalRe    = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
	emailShapeRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	twoWordRe      = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
	streetSuffixRe = regexp.MustCompile(`(?i)\b(St|Street|Ave|Avenue|Rd|Road|Blvd|Boulevard|Dr|Drive|Ln|Lane|Ct|Court|Cir|Circle|Way|Pl|Place)\b`)
)

// PhoneConfidence scores a phone value. The area code is read from the
// normalized digit string, skipping a leading country code.
func PhoneConfidence(value string, cfg Config) int {
	score := cfg.Phone.Base

	digits := models.NormalizeValue(models.EntityPhone, value)
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	var areaCode string
	if len(digits) == 10 {
		areaCode = digits[:3]
	}

	if areaCode != "" && areaCodeRe.MatchString(areaCode) {
		score += cfg.Phone.ValidAreaCode
	}
	if cfg.KnownAreaCodes[areaCode] {
		score += cfg.Phone.KnownRegion
	}
	if canonicalRe.MatchString(strings.TrimSpace(value)) {
		score += cfg.Phone.CanonicalFormat
	}
	if areaCode != "" && !cfg.TollFreePrefixes[areaCode] {
		score += cfg.Phone.NotTollFree
	}

	return models.ClampConfidence(score)
}

// EmailConfidence scores an email value.
func EmailConfidence(value string, cfg Config) int {
	score := cfg.Email.Base

	v := strings.ToLower(strings.TrimSpace(value))
	if at := strings.LastIndex(v, "@"); at >= 0 && at < len(v)-1 {
		domain := v[at+1:]
		if cfg.CommonDomains[domain] {
			score += cfg.Email.CommonDomain
		} else {
			score += cfg.Email.OtherDomain
		}
	}
	if emailShapeRe.MatchString(v) {
		score += cfg.Email.ValidShape
	}
	if len(v) >= cfg.Email.MinLength && len(v) <= cfg.Email.MaxLength {
		score += cfg.Email.GoodLength
	}

	return models.ClampConfidence(score)
}

// AddressConfidence scores an address value. searchLocation is the
// subject's supplied "City, State" string and may be empty.
func AddressConfidence(value, searchLocation string, cfg Config) int {
	score := cfg.Address.Base

	if strings.IndexFunc(value, unicode.IsDigit) >= 0 {
		score += cfg.Address.HasDigit
	}
	if streetSuffixRe.MatchString(value) {
		score += cfg.Address.HasSuffix
	}
	if searchLocation != "" {
		lower := strings.ToLower(value)
		for _, part := range strings.Split(searchLocation, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" && strings.Contains(lower, part) {
				score += cfg.Address.HasLocation
				break
			}
		}
	}
	if len(value) >= cfg.Address.MinLength && len(value) <= cfg.Address.MaxLength {
		score += cfg.Address.GoodLength
	}

	return models.ClampConfidence(score)
}

// NameConfidence scores a candidate person name. searchName is the
// subject's own search name; a shared surname or given name marks a
// candidate relative and raises confidence.
func NameConfidence(value, searchName string, cfg Config) int {
	score := cfg.Name.Base

	v := strings.TrimSpace(value)
	if twoWordRe.MatchString(v) {
		score += cfg.Name.Capitalized
	}
	if !cfg.PlaceholderNames[strings.ToLower(v)] {
		score += cfg.Name.NotPlaceholder
	}
	if sharesToken(v, searchName) {
		score += cfg.Name.SharedToken
	}
	if len(v) >= cfg.Name.MinLength && len(v) <= cfg.Name.MaxLength {
		score += cfg.Name.GoodLength
	}

	return models.ClampConfidence(score)
}

// ResultRelevance scores a result's title/snippet against the query it
// was fetched for.
func ResultRelevance(title, snippet, query string, cfg Config) int {
	score := 0

	t := strings.ToLower(title)
	s := strings.ToLower(snippet)
	q := strings.ToLower(strings.TrimSpace(query))

	if q != "" && strings.Contains(t, q) {
		score += cfg.Relevance.TitleMatch
	}
	if q != "" && strings.Contains(s, q) {
		score += cfg.Relevance.SnippetMatch
	}

	for _, word := range strings.Fields(q) {
		word = strings.Trim(word, `"()`)
		if len(word) <= cfg.Relevance.MinWordLen {
			continue
		}
		if strings.Contains(t, word) {
			score += cfg.Relevance.TitleWord
		}
		if strings.Contains(s, word) {
			score += cfg.Relevance.SnippetWord
		}
	}

	return models.ClampConfidence(score)
}

func sharesToken(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(b)) {
		seen[tok] = true
	}
	for _, tok := range strings.Fields(strings.ToLower(a)) {
		if seen[tok] {
			return true
		}
	}
	return false
}
