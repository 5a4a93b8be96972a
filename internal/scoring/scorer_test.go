// internal/scoring/scorer_test.go
package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneConfidence(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{
			name:     "known metro area code in canonical form maxes out",
			value:    "(212) 555-0100",
			expected: 100, // 50+20+15+10+5 clamped
		},
		{
			name:     "invalid area code loses validity and region points",
			value:    "(111) 555-0100",
			expected: 65, // 50+10+5
		},
		{
			name:     "toll free number loses the not-toll-free bonus",
			value:    "(800) 555-0100",
			expected: 80, // 50+20+10
		},
		{
			name:     "uncanonical formatting loses the format bonus",
			value:    "212-555-0100",
			expected: 90, // 50+20+15+5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PhoneConfidence(tt.value, cfg))
		})
	}
}

func TestPhoneConfidenceWithCountryCode(t *testing.T) {
	cfg := DefaultConfig()

	// leading country code is skipped before reading the area code
	assert.Equal(t, 90, PhoneConfidence("+1 212 555 0100", cfg))
}

func TestEmailConfidence(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{
			name:     "common public domain",
			value:    "john@gmail.com",
			expected: 85, // 40+10+20+15
		},
		{
			name:     "custom domain signals identity harder",
			value:    "john@smithplumbing.com",
			expected: 100, // 40+25+20+15
		},
		{
			name:     "shapeless value keeps only base and length",
			value:    "not-an-email",
			expected: 55, // 40+15
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EmailConfidence(tt.value, cfg))
		})
	}
}

func TestAddressConfidence(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 100, AddressConfidence("412 W Main St, Durant", "Durant, OK", cfg))
	assert.Equal(t, 85, AddressConfidence("412 W Main St", "", cfg)) // no location bonus
	assert.Equal(t, 40, AddressConfidence("somewhere rural", "", cfg))
}

func TestNameConfidence(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		value      string
		searchName string
		expected   int
	}{
		{
			name:       "shared surname marks a candidate relative",
			value:      "Mary Smith",
			searchName: "John Smith",
			expected:   100, // 25+20+15+20+20
		},
		{
			name:       "unrelated name",
			value:      "Bob Jones",
			searchName: "John Smith",
			expected:   80, // 25+20+15+20
		},
		{
			name:       "placeholder name loses the denylist bonus",
			value:      "John Doe",
			searchName: "Alice Brown",
			expected:   65, // 25+20+20
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NameConfidence(tt.value, tt.searchName, cfg))
		})
	}
}

func TestResultRelevance(t *testing.T) {
	cfg := DefaultConfig()

	// exact title substring +30, both query words in title +5+5
	assert.Equal(t, 40, ResultRelevance("John Smith - Profile", "", "john smith", cfg))

	// exact snippet substring +20, both words in snippet +3+3
	assert.Equal(t, 26, ResultRelevance("", "About john smith of Durant", "john smith", cfg))

	assert.Equal(t, 0, ResultRelevance("unrelated", "nothing here", "john smith", cfg))
}

func TestConfidenceAlwaysClamped(t *testing.T) {
	cfg := DefaultConfig()
	// inflate every weight well beyond the cap
	cfg.Phone.Base = 500
	cfg.Email.Base = 500
	cfg.Address.Base = 500
	cfg.Name.Base = 500
	cfg.Relevance.TitleMatch = 500

	inputs := []string{
		"", " ", "(212) 555-0100", "john@gmail.com", "412 W Main St",
		"Mary Smith", "!!!###", "0000000000", "a@b.co",
	}
	for i, in := range inputs {
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			for _, got := range []int{
				PhoneConfidence(in, cfg),
				EmailConfidence(in, cfg),
				AddressConfidence(in, "Durant, OK", cfg),
				NameConfidence(in, "John Smith", cfg),
				ResultRelevance(in, in, in, cfg),
			} {
				assert.GreaterOrEqual(t, got, 0)
				assert.LessOrEqual(t, got, 100)
			}
		})
	}
}

func TestConfidenceClampedAtNegativeWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Phone.Base = -500
	cfg.Email.Base = -500
	cfg.Address.Base = -500
	cfg.Name.Base = -500

	assert.Equal(t, 0, PhoneConfidence("(212) 555-0100", cfg))
	assert.Equal(t, 0, EmailConfidence("x", cfg))
	assert.Equal(t, 0, AddressConfidence("x", "", cfg))
	assert.Equal(t, 0, NameConfidence("x", "", cfg))
}
