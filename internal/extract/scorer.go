package extract

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

var tokenRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// Initials returns the uppercased first characters of the alphanumeric
// tokens of s: "Synthetic Aperture Radar" -> "SAR".
func Initials(s string) string {
	var b strings.Builder
	for _, tok := range tokenRe.FindAllString(s, -1) {
		b.WriteString(strings.ToUpper(tok[:1]))
	}
	return b.String()
}

// AlignmentScore measures how plausibly phrase expands acr, in [0,1].
// It combines the length-normalized matching prefix between the acronym and
// the phrase initials (weight 0.6) with a normalized edit-distance
// similarity of the two strings (weight 0.4), minus a small penalty for
// phrases much longer than the acronym. This is the single source of truth
// for expansion plausibility across the pipeline.
func AlignmentScore(acr, phrase string) float64 {
	ini := Initials(phrase)
	if ini == "" {
		return 0.0
	}

	prefix := 0
	for i := 0; i < len(acr) && i < len(ini); i++ {
		if acr[i] != ini[i] {
			break
		}
		prefix++
	}
	denom := len(acr)
	if denom < 1 {
		denom = 1
	}

	score := 0.6*(float64(prefix)/float64(denom)) + 0.4*editSimilarity(acr, ini)

	penalty := (float64(len(strings.Fields(phrase))) - float64(len(acr))) * 0.02
	if penalty < 0 {
		penalty = 0
	}
	if penalty > 0.2 {
		penalty = 0.2
	}

	return clamp01(score - penalty)
}

// editSimilarity is 1 - levenshtein(a,b)/max(len(a),len(b)).
func editSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
