// Package extract implements the in-document half of the resolution
// pipeline: acronym detection, sentence splitting, initials-alignment
// scoring, definition pattern matching, and glossary scanning. Everything in
// this package is a pure function of its inputs.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// A sentence boundary is terminal punctuation, whitespace, then an
	// uppercase letter starting the next sentence.
	sentenceBoundaryRe = regexp.MustCompile(`[.!?]\s+[A-Z]`)
)

// SplitSentences normalizes whitespace and splits text into trimmed
// sentences. Order is significant: it defines proximity for window search.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceBoundaryRe.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation mark; the next sentence begins at the
		// uppercase letter just before loc[1].
		end := loc[0] + 1
		if end <= start {
			continue
		}
		if s := strings.TrimSpace(text[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1] - 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// TruncateBytes shortens s to at most limit bytes, backing up so a
// multi-byte rune is never split at the cut.
func TruncateBytes(s string, limit int) string {
	if len(s) <= limit || limit < 0 {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// window joins the sentences within span positions of idx into one string.
func window(sentences []string, idx, span int) string {
	start := idx - span
	if start < 0 {
		start = 0
	}
	end := idx + span + 1
	if end > len(sentences) {
		end = len(sentences)
	}
	return strings.Join(sentences[start:end], " ")
}
