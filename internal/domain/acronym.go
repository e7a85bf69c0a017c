package domain

import (
	"regexp"
	"strings"
)

// Acronym shape: 2-10 uppercase alphanumeric characters, optionally followed
// by one hyphen- or slash-joined segment of 2-9 characters (SAR, RS-232, TCP/IP).
const acronymShape = `[A-Z][A-Z0-9]{1,9}(?:[-/][A-Z0-9]{2,9})?`

var (
	// AcronymRe matches an acronym-shaped token with an optional plural "s".
	AcronymRe = regexp.MustCompile(`\b(` + acronymShape + `)(?:'s|’s|s)?\b`)

	// AcronymShapeRe matches a whole string that is exactly an acronym shape.
	AcronymShapeRe = regexp.MustCompile(`^(` + acronymShape + `)(?:'s|’s|s)?$`)

	// DottedAcronymRe matches dotted forms such as A.I. or U.S.A.
	// Uppercase only: lowercase dotted tokens (e.g., i.e.) are not acronyms.
	DottedAcronymRe = regexp.MustCompile(`\b[A-Z](?:\.[A-Z])+\.?`)

	possessiveSuffixRe = regexp.MustCompile(`(?:'s|’s)$`)
)

// NormalizeAcronym converts a raw acronym-shaped token into its canonical
// form: possessive and single plural markers stripped, internal dots removed
// (A.I. -> AI), uppercased. Normalization is idempotent.
func NormalizeAcronym(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = possessiveSuffixRe.ReplaceAllString(raw, "")
	// A single trailing lowercase "s" is a plural marker (SARs), an uppercase
	// trailing S is part of the acronym (GPS).
	raw = strings.TrimSuffix(raw, "s")
	raw = strings.ReplaceAll(raw, ".", "")
	return strings.ToUpper(raw)
}

// StoplistPolicy controls whether common false-positive terms are filtered
// out during detection and glossary scanning. It is passed explicitly to the
// components that need it rather than read from ambient state.
type StoplistPolicy struct {
	// Enabled applies the common-word stoplist. Disable to keep terms like
	// CEO or FAQ in the result set.
	Enabled bool
}

// CommonStoplist lists frequent acronym-shaped tokens that are almost never
// worth defining: day/month abbreviations, business titles, file formats.
var CommonStoplist = buildStoplist(`
AM PM IT ID TV AI UK USA EU US ASAP FYI ETA DIY VAT HR CEO CFO CTO CIO FAQ ERP CRM CAD CAM
PDF DOCX CSV JSON HTML CSS JS API KPI QA QC NDA SLA TBC TBA TBD
MON TUE WED THU FRI SAT SUN JAN FEB MAR APR MAY JUN JUL AUG SEP OCT NOV DEC
`)

func buildStoplist(raw string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, w := range strings.Fields(raw) {
		m[w] = struct{}{}
	}
	return m
}

// InStoplist reports whether the policy filters out the given normalized term.
func (p StoplistPolicy) InStoplist(term string) bool {
	if !p.Enabled {
		return false
	}
	_, ok := CommonStoplist[term]
	return ok
}
