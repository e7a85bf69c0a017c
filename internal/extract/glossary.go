package extract

import (
	"regexp"
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/domain"
)

var (
	// Long form (ACR): the long form must start Upper-lower so another
	// acronym never qualifies as the long form.
	globalLongFirstRe = regexp.MustCompile(`\b(` + longFormBody + `?)\s*\(\s*([A-Z][A-Z0-9]{1,9})\s*\)`)
	// ACR (Long form)
	globalAcrFirstRe = regexp.MustCompile(`\b([A-Z][A-Z0-9]{1,9})\s*\(\s*(` + longFormBody + `?)\s*\)`)
)

// GlossaryScanner builds acronym->expansion maps from document tables and
// from document-wide long-form patterns.
type GlossaryScanner struct {
	policy domain.StoplistPolicy
}

// NewGlossaryScanner creates a GlossaryScanner with the given stoplist policy.
func NewGlossaryScanner(policy domain.StoplistPolicy) *GlossaryScanner {
	return &GlossaryScanner{policy: policy}
}

// ScanTables detects acronym/expansion pairs in tabular rows. For each row
// with at least two non-empty cells both column orientations are tried; a
// cell qualifies as the acronym side only if it fully matches the acronym
// shape. The concatenated row text is additionally scanned for embedded
// long-form patterns. First mapping per acronym wins.
func (g *GlossaryScanner) ScanTables(rows [][]string) *domain.GlossaryMap {
	glossary := domain.NewGlossaryMap()

	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}

		// Definitions embedded inside a single cell rather than split
		// across columns.
		glossary.Merge(g.scanText(strings.Join(cells, " | ")))

		if len(cells) < 2 {
			continue
		}
		left, right := cells[0], cells[1]
		for _, pair := range [2][2]string{{left, right}, {right, left}} {
			acrCell, defCell := pair[0], pair[1]
			sub := domain.AcronymShapeRe.FindStringSubmatch(acrCell)
			if sub == nil {
				continue
			}
			term := domain.NormalizeAcronym(sub[1])
			if term == "" || g.policy.InStoplist(term) {
				continue
			}
			if len(defCell) > 2 {
				glossary.Put(term, strings.TrimSpace(defCell))
			}
		}
	}
	return glossary
}

// ScanGlobal applies the two long-form patterns across the whole document,
// independent of sentence boundaries. First match per acronym wins.
func (g *GlossaryScanner) ScanGlobal(text string) *domain.GlossaryMap {
	return g.scanText(text)
}

func (g *GlossaryScanner) scanText(text string) *domain.GlossaryMap {
	mappings := domain.NewGlossaryMap()

	for _, sub := range globalLongFirstRe.FindAllStringSubmatch(text, -1) {
		acr := domain.NormalizeAcronym(sub[2])
		if acr == "" || g.policy.InStoplist(acr) {
			continue
		}
		// The capture starts at the leftmost capitalized word and may drag
		// in sentence lead-in; keep the best-aligned suffix.
		mappings.Put(acr, bestAlignedStart(acr, strings.TrimSpace(sub[1])))
	}
	for _, sub := range globalAcrFirstRe.FindAllStringSubmatch(text, -1) {
		acr, longForm := domain.NormalizeAcronym(sub[1]), strings.TrimSpace(sub[2])
		if acr == "" || g.policy.InStoplist(acr) {
			continue
		}
		mappings.Put(acr, longForm)
	}
	return mappings
}
