package extract

import (
	"regexp"
	"sort"
	"strings"
)

var keywordWordRe = regexp.MustCompile(`[A-Za-z]{3,}`)

// Keywords derives up to k topic hints from document text: capitalized
// words first, then the most frequent tokens, deduplicated in that order.
// It is a crude frequency heuristic, good enough to narrow web lookups.
func Keywords(text string, k int) []string {
	if k <= 0 {
		return nil
	}

	words := keywordWordRe.FindAllString(text, -1)
	if len(words) == 0 {
		return nil
	}

	var caps []string
	freq := make(map[string]int)
	order := make(map[string]int)
	for i, w := range words {
		if w[0] >= 'A' && w[0] <= 'Z' {
			caps = append(caps, w)
		}
		wl := strings.ToLower(w)
		if _, ok := freq[wl]; !ok {
			order[wl] = i
		}
		freq[wl]++
	}

	ranked := make([]string, 0, len(freq))
	for w := range freq {
		ranked = append(ranked, w)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return order[ranked[i]] < order[ranked[j]]
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	out := make([]string, 0, k)
	seen := make(map[string]struct{})
	add := func(w string) {
		key := strings.ToLower(w)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}

	limit := k / 2
	for i, w := range caps {
		if i >= limit {
			break
		}
		add(w)
	}
	for _, w := range ranked {
		add(w)
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}
