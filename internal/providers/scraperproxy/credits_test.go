// internal/providers/scraperproxy/credits_test.go
package scraperproxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCreditsFlatShape(t *testing.T) {
	used, known := ParseCredits([]byte(`{"html":"<p>x</p>","credits_used":12.5,"credits_remaining":87.5}`))
	assert.True(t, known)
	assert.Equal(t, 12.5, used)
}

func TestParseCreditsNestedShape(t *testing.T) {
	used, known := ParseCredits([]byte(`{"html":"<p>x</p>","meta":{"credits":{"used":3,"remaining":97}}}`))
	assert.True(t, known)
	assert.Equal(t, float64(3), used)
}

func TestParseCreditsUnknownShapeFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no credit fields", `{"html":"<p>x</p>"}`},
		{"renamed field", `{"creditsConsumed":12}`},
		{"credits as string", `{"credits_used":"12"}`},
		{"negative credits", `{"credits_used":-1}`},
		{"nested missing used", `{"meta":{"credits":{"remaining":97}}}`},
		{"not json", `<html></html>`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			used, known := ParseCredits([]byte(tt.body))
			assert.False(t, known)
			assert.Equal(t, float64(0), used)
		})
	}
}

func TestParseCreditsZeroUsedIsAKnownShape(t *testing.T) {
	used, known := ParseCredits([]byte(`{"credits_used":0}`))
	assert.True(t, known)
	assert.Equal(t, float64(0), used)
}
