package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstringMatcher(t *testing.T) {
	cols := []string{"battery_power", "ram", "price-range"}
	m := SubstringMatcher{}

	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"underscore column spoken with space", "show me battery power", []string{"battery_power"}},
		{"hyphen column spoken with space", "chart the price range please", []string{"price-range"}},
		{"exact name", "add ram", []string{"ram"}},
		{"case insensitive", "Show BATTERY_POWER", []string{"battery_power"}},
		{"multiple columns", "battery power vs ram", []string{"battery_power", "ram"}},
		{"no match", "make it a pie", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Mentioned(tt.message, cols)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFuzzyMatcherToleratesTypos(t *testing.T) {
	m := FuzzyMatcher{Threshold: 0.5}
	got := m.Mentioned("plot battery powr", []string{"battery_power", "ram"})
	assert.Equal(t, []string{"battery_power"}, got)
}

func TestFuzzyMatcherRejectsUnrelated(t *testing.T) {
	m := FuzzyMatcher{Threshold: 0.5}
	assert.Empty(t, m.Mentioned("hello there", []string{"battery_power"}))
}
