package lookup

import (
	"regexp"
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/extract"
)

const (
	minDefinitionWords = 2
	maxDefinitionWords = 8
	maxWindowTokens    = 8
)

var (
	disambiguationMarkers = []string{"may refer to", "list of", "disambiguation"}

	// Cue phrases that introduce an expansion in knowledge-source prose.
	cueRe = regexp.MustCompile(`(?i)(?:stands for|short for|is an? abbreviation (?:of|for)|is an? acronym for|abbreviation of|acronym for|meaning|is (?:a|an|the))\s+((?:[A-Za-z][\w'-]*[ \t]+){1,7}[A-Za-z][\w'-]*)`)

	wordRe = regexp.MustCompile(`[A-Za-z][\w'-]*`)
)

// normalizeDefinition distills a raw knowledge-source snippet into a clean
// expansion phrase for acr. Returns "" when nothing in the snippet
// plausibly expands the acronym; the caller drops the candidate.
func normalizeDefinition(acr, title, raw string) string {
	lower := strings.ToLower(raw)
	for _, marker := range disambiguationMarkers {
		if strings.Contains(lower, marker) {
			return ""
		}
	}

	// Title shortcut: a page titled with the spelled-out form is the best
	// possible evidence. All-caps titles just repeat the acronym.
	title = strings.TrimSpace(title)
	if title != "" && title != strings.ToUpper(title) && extract.Initials(title) == acr {
		return title
	}

	sentence := firstSentence(raw)
	if sentence == "" {
		return ""
	}

	if m := cueRe.FindStringSubmatch(sentence); m != nil {
		phrase := strings.TrimRight(m[1], " .,;:")
		words := strings.Fields(phrase)
		if len(words) >= minDefinitionWords && len(words) <= maxDefinitionWords {
			// Prefer the longest leading span whose initials are exactly
			// the acronym; the capture often drags in a trailing clause.
			for n := len(words); n >= minDefinitionWords; n-- {
				span := strings.Join(words[:n], " ")
				if extract.Initials(span) == acr {
					return span
				}
			}
			if strings.Contains(extract.Initials(phrase), acr) {
				return phrase
			}
		}
	}

	return bestWindow(acr, sentence)
}

// bestWindow slides windows of up to maxWindowTokens tokens over the
// sentence and returns the longest (then most token-rich) span whose
// initials exactly equal the acronym.
func bestWindow(acr, sentence string) string {
	tokens := wordRe.FindAllString(sentence, -1)

	best := ""
	bestTokens := 0
	for start := 0; start < len(tokens); start++ {
		for size := 1; size <= maxWindowTokens && start+size <= len(tokens); size++ {
			span := strings.Join(tokens[start:start+size], " ")
			if extract.Initials(span) != acr {
				continue
			}
			if len(span) > len(best) || (len(span) == len(best) && size > bestTokens) {
				best = span
				bestTokens = size
			}
		}
	}
	return best
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, ". "); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSuffix(s, ".")
}
