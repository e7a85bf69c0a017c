package provider

// Snippet is one raw text snippet returned by a knowledge source. The
// aggregator mines Text (guided by Title) for a clean expansion phrase; a
// snippet that yields nothing is dropped.
type Snippet struct {
	// Title is the source's own title for the hit (page title, entity
	// label). May be empty.
	Title string
	// Text is the raw prose to mine for an expansion.
	Text string
	// Source is the candidate tag this snippet carries, e.g.
	// "web:en.wikipedia.org" or "pack-networking".
	Source string
	// BaseScore is the source's own confidence prior, in [0,1].
	BaseScore float64
}

// Hints narrow a knowledge-source query. All fields are optional.
type Hints struct {
	// Keyword is appended to the search term to bias results.
	Keyword string
	// Language selects the source language edition (default "en").
	Language string
	// Domain restricts domain-specific sources (glossary packs) to one
	// subject area.
	Domain string
}

// Lang returns the language hint, defaulting to "en".
func (h Hints) Lang() string {
	if h.Language == "" {
		return "en"
	}
	return h.Language
}

// Query returns the search string for term with the keyword hint applied.
func (h Hints) Query(term string) string {
	if h.Keyword == "" {
		return term
	}
	return term + " " + h.Keyword
}
