package engine

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLocale is used when no locale is configured or the configured one
// is not supported.
const DefaultLocale = "en"

var supportedLocales = []language.Tag{language.English, language.Spanish}

var summaryCatalog = mustSummaryCatalog()

func mustSummaryCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	entries := []struct {
		tag      language.Tag
		category Category
		format   string
	}{
		{language.English, CategoryConsensus, "consensus reinforcement on layer %s"},
		{language.English, CategoryLatency, "latency optimization on layer %s"},
		{language.English, CategoryResilience, "resilience testing on layer %s"},
		{language.Spanish, CategoryConsensus, "Refuerzo de consenso en capa %s"},
		{language.Spanish, CategoryLatency, "Optimización de latencia en capa %s"},
		{language.Spanish, CategoryResilience, "Prueba de resiliencia en capa %s"},
	}
	for _, e := range entries {
		if err := b.SetString(e.tag, string(e.category), e.format); err != nil {
			panic(fmt.Sprintf("summary catalog: %v", err))
		}
	}
	return b
}

// SummaryRenderer turns a category and layer into display text for one locale.
//
// The locale is fixed at construction, so for a given renderer the summary
// is a pure function of (category, layer).
type SummaryRenderer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewSummaryRenderer builds a renderer for locale (a BCP 47 tag such as "en"
// or "es-MX"). Unsupported or malformed locales fall back to English.
func NewSummaryRenderer(locale string) *SummaryRenderer {
	tag := matchLocale(locale)
	return &SummaryRenderer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(summaryCatalog)),
	}
}

// Locale returns the matched locale tag.
func (r *SummaryRenderer) Locale() language.Tag {
	return r.tag
}

// Render returns the summary text for category on layer.
// The layer is passed pre-formatted so locales never regroup its digits.
func (r *SummaryRenderer) Render(category Category, layer int) string {
	return r.printer.Sprintf(string(category), strconv.Itoa(layer))
}

func matchLocale(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	matcher := language.NewMatcher(supportedLocales)
	_, idx, conf := matcher.Match(language.Make(locale))
	if conf == language.No {
		return language.English
	}
	return supportedLocales[idx]
}
