// internal/providers/scraperproxy/credits.go
package scraperproxy

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"
)

// The proxy's credit accounting has shipped in more than one response
// shape. Each known shape is matched strictly; an unknown shape fails
// closed to zero credits rather than guessing.

const flatShapeSchema = `{
	"type": "object",
	"properties": {
		"credits_used":      {"type": "number", "minimum": 0},
		"credits_remaining": {"type": "number", "minimum": 0}
	},
	"required": ["credits_used"]
}`

const nestedShapeSchema = `{
	"type": "object",
	"properties": {
		"meta": {
			"type": "object",
			"properties": {
				"credits": {
					"type": "object",
					"properties": {
						"used":      {"type": "number", "minimum": 0},
						"remaining": {"type": "number", "minimum": 0}
					},
					"required": ["used"]
				}
			},
			"required": ["credits"]
		}
	},
	"required": ["meta"]
}`

var (
	flatShapeLoader   = gojsonschema.NewStringLoader(flatShapeSchema)
	nestedShapeLoader = gojsonschema.NewStringLoader(nestedShapeSchema)
)

// ParseCredits extracts the credits consumed by a proxy call from its
// response body. The second return reports whether a known shape
// matched; unknown shapes report (0, false).
func ParseCredits(body []byte) (float64, bool) {
	doc := gojsonschema.NewBytesLoader(body)

	if ok, _ := gojsonschema.Validate(flatShapeLoader, doc); ok != nil && ok.Valid() {
		var flat struct {
			CreditsUsed float64 `json:"credits_used"`
		}
		if err := json.Unmarshal(body, &flat); err == nil {
			return flat.CreditsUsed, true
		}
	}

	if ok, _ := gojsonschema.Validate(nestedShapeLoader, doc); ok != nil && ok.Valid() {
		var nested struct {
			Meta struct {
				Credits struct {
					Used float64 `json:"used"`
				} `json:"credits"`
			} `json:"meta"`
		}
		if err := json.Unmarshal(body, &nested); err == nil {
			return nested.Meta.Credits.Used, true
		}
	}

	return 0, false
}
