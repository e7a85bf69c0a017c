package domain

import (
	"strings"
	"time"
)

// Candidate is one proposed expansion for an acronym, tagged with the
// evidence tier it came from and a confidence in [0,1].
type Candidate struct {
	Definition string  `json:"definition"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// PlaceholderDefinition is the synthesized definition used when every
// evidence tier came up empty. The candidate list for an acronym is never
// empty.
const PlaceholderDefinition = "(no definition found)"

// PlaceholderCandidate returns the zero-confidence candidate synthesized
// when no evidence exists for an acronym.
func PlaceholderCandidate() Candidate {
	return Candidate{
		Definition: PlaceholderDefinition,
		Confidence: 0.0,
		Source:     SourceNone,
	}
}

// DedupKey is the comparison key for candidate deduplication:
// case-insensitive, whitespace-trimmed definition text.
func (c Candidate) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(c.Definition))
}

// DedupCandidates removes candidates with duplicate definition text,
// preserving first-seen order.
func DedupCandidates(cands []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(cands))
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		key := c.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Resolution is the per-acronym outcome delivered to consumers: the chosen
// definition plus the full candidate pool it was picked from. Constructed
// once per extraction request and never mutated afterwards.
type Resolution struct {
	Term        string      `json:"term"`
	Definition  string      `json:"definition"`
	Confidence  float64     `json:"confidence"`
	Source      Source      `json:"source"`
	Note        string      `json:"note,omitempty"`
	Excerpt     string      `json:"first_seen_excerpt,omitempty"`
	Candidates  []Candidate `json:"candidates"`
	ChosenIndex int         `json:"chosen_index"`
}

// LearnedDefinition is a previously confirmed expansion from the learned
// store, keyed by the uppercase acronym.
type LearnedDefinition struct {
	Term       string
	Definition string
	Source     Source
	Confidence float64
	UpdatedAt  time.Time
}
