package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Tunable thresholds for the in-document matcher. The fallback values follow
// the most defensive variant: a higher bar for accepting a proximity guess.
const (
	// minAlignment gates pattern captures; acronyms of three characters or
	// fewer get a pass because their initials are inherently noisy.
	minAlignment      = 0.6
	shortAcronymLen   = 3
	maxPatternConf    = 0.98
	fallbackThreshold = 0.70
	fallbackBaseConf  = 0.66
	fallbackMaxConf   = 0.90
	fallbackWords     = 10
)

// Match is an in-document definition hit.
type Match struct {
	Phrase     string
	Confidence float64
	Excerpt    string
}

// phrase body: letters, digits, spaces and light punctuation, starting with
// a capitalized word so another acronym never qualifies as the long form.
const longFormBody = `[A-Z][a-z][\w ,\-/&]+`

type pattern struct {
	re        *regexp.Regexp
	baseScore float64
}

// Matcher finds definitions for an acronym near its first occurrence.
type Matcher struct{}

// NewMatcher creates a Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Find scans sentences for the first occurrence of acr and tries, in
// priority order, the structural definition patterns within a one-sentence
// window; failing that, it falls back to a proximity heuristic over the
// sentence tail and the next two sentences. Returns nil if nothing passes
// the thresholds.
func (m *Matcher) Find(acr string, sentences []string) *Match {
	if acr == "" || len(sentences) == 0 {
		return nil
	}

	quoted := regexp.QuoteMeta(acr)
	patterns := []pattern{
		// Long form (ACR)
		{regexp.MustCompile(`\b(` + longFormBody + `?)\s*\(\s*` + quoted + `\s*\)`), 0.95},
		// ACR (Long form)
		{regexp.MustCompile(`\b` + quoted + `\s*\(\s*(` + longFormBody + `?)\s*\)`), 0.90},
		// ACR - Long form / ACR: Long form
		{regexp.MustCompile(`\b` + quoted + `\s*[-:–]\s*(` + longFormBody + `)`), 0.85},
		// ACR, short for / stands for Long form
		{regexp.MustCompile(`(?i)\b` + quoted + `\s*,\s*(?:short for|stands for)\s+([a-z][a-z][\w ,\-/&]+)`), 0.85},
	}

	for i, s := range sentences {
		if !strings.Contains(s, acr) {
			continue
		}
		win := window(sentences, i, 1)

		for _, p := range patterns {
			sub := p.re.FindStringSubmatch(win)
			if sub == nil {
				continue
			}
			phrase := bestAlignedStart(acr, trimPhrase(sub[1]))
			align := AlignmentScore(acr, phrase)
			if align >= minAlignment || len(acr) <= shortAcronymLen {
				conf := p.baseScore * (0.8 + 0.2*align)
				if conf > maxPatternConf {
					conf = maxPatternConf
				}
				return &Match{Phrase: phrase, Confidence: conf, Excerpt: win}
			}
		}

		return m.fallback(acr, sentences, i)
	}
	return nil
}

// fallback takes the text following the acronym across the hit sentence and
// up to the next two sentences, keeps the first few words, and accepts them
// as a definition only when the alignment score clears a high bar.
func (m *Matcher) fallback(acr string, sentences []string, idx int) *Match {
	end := idx + 3
	if end > len(sentences) {
		end = len(sentences)
	}
	context := strings.Join(sentences[idx:end], " ")

	pos := strings.Index(context, acr)
	if pos < 0 {
		return nil
	}
	tail := strings.TrimSpace(context[pos+len(acr):])
	words := strings.Fields(tail)
	if len(words) == 0 {
		return nil
	}
	if len(words) > fallbackWords {
		words = words[:fallbackWords]
	}
	phrase := strings.Join(words, " ")

	align := AlignmentScore(acr, phrase)
	if align < fallbackThreshold {
		return nil
	}
	conf := fallbackBaseConf + (fallbackMaxConf-fallbackBaseConf)*(align-fallbackThreshold)/(1.0-fallbackThreshold)
	if conf > fallbackMaxConf {
		conf = fallbackMaxConf
	}

	return &Match{
		Phrase:     trimPhrase(phrase),
		Confidence: conf,
		Excerpt:    strings.TrimSpace(context),
	}
}

// bestAlignedStart drops leading words from a captured phrase when doing so
// improves initials alignment. Pattern 1 capture starts at the leftmost
// capitalized word, which often drags in sentence lead-in ("We used
// Synthetic Aperture Radar"); the true long form is the best-aligned suffix.
func bestAlignedStart(acr, phrase string) string {
	words := strings.Fields(phrase)
	if len(words) < 2 {
		return phrase
	}
	best := phrase
	bestScore := AlignmentScore(acr, phrase)
	for i := 1; i < len(words); i++ {
		candidate := strings.Join(words[i:], " ")
		if score := AlignmentScore(acr, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}

// trimPhrase strips surrounding whitespace and stray punctuation from a
// captured long form.
func trimPhrase(s string) string {
	return strings.Trim(s, " .;:,")
}

// TableExcerpt formats the excerpt shown for glossary-table hits.
func TableExcerpt(acr, definition string) string {
	return fmt.Sprintf("%s – %s (table)", acr, definition)
}
