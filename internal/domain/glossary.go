package domain

// GlossaryMap maps normalized acronyms to a single expansion, built once per
// document from table scanning and the global long-form scan. The first
// writer wins: an acronym already mapped is never overwritten. Insertion
// order is preserved so downstream output stays deterministic.
type GlossaryMap struct {
	expansions map[string]string
	order      []string
}

// NewGlossaryMap creates an empty GlossaryMap.
func NewGlossaryMap() *GlossaryMap {
	return &GlossaryMap{expansions: make(map[string]string)}
}

// Put records an expansion for the term unless one is already present.
// Returns true if the mapping was added.
func (g *GlossaryMap) Put(term, expansion string) bool {
	if term == "" || expansion == "" {
		return false
	}
	if _, ok := g.expansions[term]; ok {
		return false
	}
	g.expansions[term] = expansion
	g.order = append(g.order, term)
	return true
}

// Get returns the expansion mapped to the term, if any.
func (g *GlossaryMap) Get(term string) (string, bool) {
	expansion, ok := g.expansions[term]
	return expansion, ok
}

// Merge copies mappings from other that are not yet present, in other's
// insertion order.
func (g *GlossaryMap) Merge(other *GlossaryMap) {
	for _, term := range other.order {
		g.Put(term, other.expansions[term])
	}
}

// Terms returns the mapped acronyms in insertion order.
func (g *GlossaryMap) Terms() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len reports the number of mapped acronyms.
func (g *GlossaryMap) Len() int {
	return len(g.order)
}
