package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_BucketBoundaries(t *testing.T) {
	// agent 0, layer 0: h = sequence*17 mod 100
	tests := []struct {
		sequence int64
		h        int
		want     Category
	}{
		{100, 0, CategoryConsensus},
		{96, 32, CategoryConsensus},
		{49, 33, CategoryLatency},
		{45, 65, CategoryLatency},
		{98, 66, CategoryResilience},
		{47, 99, CategoryResilience},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(0, tt.sequence, 0), "h=%d", tt.h)
	}
}

func TestCategorize_KnownTriples(t *testing.T) {
	assert.Equal(t, CategoryResilience, Categorize(0, 1, 20)) // 277 -> 77
	assert.Equal(t, CategoryLatency, Categorize(1, 1, 30))    // 438 -> 38
	assert.Equal(t, CategoryConsensus, Categorize(0, 2, 30))  // 424 -> 24
}

func TestCategorize_NegativeLayer(t *testing.T) {
	assert.Equal(t, CategoryConsensus, Categorize(0, 1, -1))   // 4
	assert.Equal(t, CategoryResilience, Categorize(0, 1, -10)) // -113 -> 87
}

func TestCategorize_Deterministic(t *testing.T) {
	for agent := 0; agent < 5; agent++ {
		for seq := int64(1); seq < 50; seq++ {
			first := Categorize(agent, seq, 7)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, Categorize(agent, seq, 7))
			}
		}
	}
}

func TestSummaryRenderer_English(t *testing.T) {
	r := NewSummaryRenderer("en")

	assert.Equal(t, "consensus reinforcement on layer 5", r.Render(CategoryConsensus, 5))
	assert.Equal(t, "latency optimization on layer 12", r.Render(CategoryLatency, 12))
	assert.Equal(t, "resilience testing on layer -3", r.Render(CategoryResilience, -3))
}

func TestSummaryRenderer_Spanish(t *testing.T) {
	r := NewSummaryRenderer("es")

	assert.Equal(t, "Refuerzo de consenso en capa 5", r.Render(CategoryConsensus, 5))
	assert.Equal(t, "Optimización de latencia en capa 12", r.Render(CategoryLatency, 12))
	assert.Equal(t, "Prueba de resiliencia en capa 7", r.Render(CategoryResilience, 7))
}

func TestSummaryRenderer_NoDigitGrouping(t *testing.T) {
	r := NewSummaryRenderer("en")
	assert.Equal(t, "latency optimization on layer 1234567", r.Render(CategoryLatency, 1234567))
}

func TestSummaryRenderer_LocaleMatching(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"", "en"},
		{"en", "en"},
		{"en-GB", "en"},
		{"es", "es"},
		{"es-MX", "es"},
		{"fr", "en"},
		{"not a locale!", "en"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewSummaryRenderer(tt.locale).Locale().String(), "locale %q", tt.locale)
	}
}

func TestSummaryRenderer_EmbedsLayer(t *testing.T) {
	for _, locale := range []string{"en", "es"} {
		r := NewSummaryRenderer(locale)
		for _, c := range Categories {
			assert.Contains(t, r.Render(c, 314), "314", "%s/%s", locale, c)
		}
	}
}
