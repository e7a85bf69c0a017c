package extract

import (
	"sort"

	"github.com/acrodocs/acrodocs-backend/internal/domain"
)

// Detector finds acronym-shaped tokens in raw text.
type Detector struct {
	policy domain.StoplistPolicy
}

// NewDetector creates a Detector with the given stoplist policy.
func NewDetector(policy domain.StoplistPolicy) *Detector {
	return &Detector{policy: policy}
}

// Detect returns the normalized acronyms found in text, duplicates removed,
// in first-occurrence order. Dotted forms (A.I.) are folded into their plain
// form and deduplicated against it.
func (d *Detector) Detect(text string) []string {
	type hit struct {
		pos  int
		term string
	}
	var hits []hit

	for _, loc := range domain.AcronymRe.FindAllStringSubmatchIndex(text, -1) {
		hits = append(hits, hit{pos: loc[0], term: text[loc[2]:loc[3]]})
	}
	for _, loc := range domain.DottedAcronymRe.FindAllStringIndex(text, -1) {
		hits = append(hits, hit{pos: loc[0], term: text[loc[0]:loc[1]]})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]struct{}, len(hits))
	var out []string
	for _, h := range hits {
		term := domain.NormalizeAcronym(h.term)
		if len(term) < 2 {
			continue
		}
		if d.policy.InStoplist(term) {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}
