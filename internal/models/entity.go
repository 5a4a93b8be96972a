// internal/models/entity.go
package models

import (
	"strings"
	"time"
	"unicode"
)

// EntityType classifies an extracted identity fact.
type EntityType string

const (
	EntityPhone     EntityType = "phone"
	EntityEmail     EntityType = "email"
	EntityAddress   EntityType = "address"
	EntityName      EntityType = "name"
	EntityVIN       EntityType = "vin"
	EntitySSNMasked EntityType = "ssn_masked"
	EntityBusiness  EntityType = "business"
	EntityRelative  EntityType = "relative"
	EntitySocial    EntityType = "social"
)

// Entity is a typed atomic fact extracted from provider text or supplied
// by the caller.
type Entity struct {
	ID         string     `json:"id"`
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Confidence int        `json:"confidence"` // always clamped to [0,100]
	Source     string     `json:"source"`
	Timestamp  time.Time  `json:"timestamp"`
	Verified   bool       `json:"verified"`
}

// NormalizeValue reduces an entity value to its canonical comparison form.
// Phone and VIN values keep only their alphanumeric payload; everything
// else is lower-cased and trimmed.
func NormalizeValue(t EntityType, value string) string {
	switch t {
	case EntityPhone:
		var b strings.Builder
		for _, r := range value {
			if unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		return b.String()
	case EntityVIN:
		var b strings.Builder
		for _, r := range value {
			if unicode.IsDigit(r) || unicode.IsLetter(r) {
				b.WriteRune(unicode.ToLower(r))
			}
		}
		return b.String()
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// IdentityKey is the deduplication/correlation key: the same real-world
// fact reported with different formatting maps to the same key.
func (e Entity) IdentityKey() string {
	return string(e.Type) + "|" + NormalizeValue(e.Type, e.Value)
}

// ClampConfidence bounds a raw score to the [0,100] range every Entity
// and SearchResult carries.
func ClampConfidence(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
