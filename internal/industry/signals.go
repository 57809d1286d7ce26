package industry

import "strings"

// signalVocabulary is the fixed set of lexical industry/business/economic
// phrases used as a cheap relevance proxy. Loaded once, never mutated.
var signalVocabulary = []string{
	// core
	"industry", "industries", "industrial", "sector", "sectors", "market", "markets",
	"business", "commerce", "commercial", "trade",

	// value chain / operations
	"supply chain", "value chain", "manufacturing", "production", "distribution",
	"wholesale", "retail", "logistics", "procurement",

	// finance / market structure
	"competition", "competitor", "pricing", "revenue", "profit", "cost",
	"demand", "supply", "market share",

	// regulation / standards
	"regulation", "regulated", "compliance", "standard", "standards",

	// common sector labels
	"services", "service industry", "financial services", "healthcare", "insurance",
	"banking", "telecommunications", "energy", "oil and gas", "mining",
	"construction", "transport", "transportation", "automotive", "pharmaceutical",
	"biotechnology", "aerospace", "defense", "agriculture", "food industry",
	"hospitality", "tourism",
}

// ScoreSignals counts how many distinct vocabulary phrases occur as substrings
// of the normalized text. Each phrase counts at most once regardless of how
// often it repeats; this is a containment count, not a frequency count.
func ScoreSignals(text string) int {
	t := Normalize(text)
	if t == "" {
		return 0
	}
	score := 0
	for _, phrase := range signalVocabulary {
		if strings.Contains(t, phrase) {
			score++
		}
	}
	return score
}
