package lookup

import (
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/extract"
)

// Topical keywords whose co-occurrence in a candidate and the surrounding
// document context nudges the contextual score up.
var contextKeywords = []string{
	"computer", "data", "network", "law", "regulation", "europe", "united",
	"states", "protocol", "web", "page", "pdf", "memory", "processor",
	"graphics", "artificial", "intelligence", "health", "organization",
	"university", "union", "nation",
}

const (
	contextFloor   = 0.1
	contextCeiling = 0.9
	keywordBonus   = 0.04
	contextWindow  = 500

	exactBoost   = 0.30
	partialBoost = 0.15
	boostCap     = 0.95
)

// rescore lifts a source's base score with a contextual heuristic: initials
// alignment plus topical overlap between the candidate and the document
// context. The higher of the two wins.
func rescore(acr, definition, context string, base float64) float64 {
	ini := extract.Initials(definition)
	align := 0.0
	switch {
	case ini == acr:
		align = 1.0
	case ini != "" && (strings.Contains(ini, acr) || strings.Contains(acr, ini)):
		align = 0.7
	}

	ctx := extract.TruncateBytes(strings.ToLower(context), contextWindow)
	defLower := strings.ToLower(definition)
	bonus := 0.0
	for _, key := range contextKeywords {
		if strings.Contains(ctx, key) && strings.Contains(defLower, key) {
			bonus += keywordBonus
		}
	}

	heuristic := 0.5 + 0.3*align + bonus
	if heuristic < contextFloor {
		heuristic = contextFloor
	}
	if heuristic > contextCeiling {
		heuristic = contextCeiling
	}

	if heuristic > base {
		return heuristic
	}
	return base
}

// boost rewards candidates whose initials line up with the acronym.
func boost(acr, definition string, score float64) float64 {
	ini := extract.Initials(definition)
	switch {
	case ini == acr:
		score += exactBoost
	case ini != "" && (strings.Contains(ini, acr) || strings.Contains(acr, ini)):
		score += partialBoost
	}
	if score > boostCap {
		score = boostCap
	}
	return score
}
