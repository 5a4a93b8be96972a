// internal/models/query.go
package models

import "strings"

// QueryCategory names the kind of lead a planned query chases.
type QueryCategory string

const (
	CategoryBasic        QueryCategory = "basic"
	CategoryLocation     QueryCategory = "location"
	CategoryPhone        QueryCategory = "phone"
	CategoryEmail        QueryCategory = "email"
	CategoryAddress      QueryCategory = "address"
	CategorySocial       QueryCategory = "social"
	CategoryBusiness     QueryCategory = "business"
	CategoryPublicRecord QueryCategory = "public_record"
)

// ProviderQuery is one planned provider call. Immutable once generated;
// consumed exactly once per aggregation run.
type ProviderQuery struct {
	Query         string        `json:"query"`
	Category      QueryCategory `json:"category"`
	Priority      int           `json:"priority"` // 1 = highest, 5 = lowest
	EstimatedCost float64       `json:"estimatedCost"`
}

// SubjectParams identifies the person under investigation. Name is the
// only required field; every other field unlocks extra query categories.
type SubjectParams struct {
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	DOB     string `json:"dob,omitempty"`
	Address string `json:"address,omitempty"`
}

// Location joins city and state into the display form used for
// location-qualified queries and address scoring.
func (p SubjectParams) Location() string {
	parts := make([]string, 0, 2)
	if p.City != "" {
		parts = append(parts, p.City)
	}
	if p.State != "" {
		parts = append(parts, p.State)
	}
	return strings.Join(parts, ", ")
}

// Budget caps how much an aggregation run may spend. Zero means
// unlimited for either dimension.
type Budget struct {
	MaxCost    float64 `json:"maxCost,omitempty"`
	MaxCredits float64 `json:"maxCredits,omitempty"`
}
