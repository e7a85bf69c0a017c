package domain

import "strings"

// Source identifies the evidence tier a candidate definition came from.
//
// Fixed values are SourceDocument, SourceLearned, SourceUser and SourceNone.
// Web sources are dynamic ("web:<domain>") and glossary packs are
// "pack-<name>"; use WebSource / PackSource to construct them.
type Source string

const (
	SourceDocument Source = "document"
	SourceLearned  Source = "learned"
	SourceUser     Source = "user"
	SourceNone     Source = "none"
)

func (s Source) String() string { return string(s) }

// WebSource builds the source tag for an external web domain.
func WebSource(domain string) Source {
	return Source("web:" + domain)
}

// PackSource builds the source tag for a curated glossary pack.
func PackSource(name string) Source {
	return Source("pack-" + name)
}

// IsDocument reports whether the candidate came from the document itself
// (in-text pattern, proximity heuristic, or glossary table).
func (s Source) IsDocument() bool { return s == SourceDocument }

// IsLearned reports whether the candidate came from the learned store,
// either system-learned or user-confirmed.
func (s Source) IsLearned() bool { return s == SourceLearned || s == SourceUser }

// IsWeb reports whether the candidate came from an external web source.
func (s Source) IsWeb() bool { return strings.HasPrefix(string(s), "web:") }

// IsPack reports whether the candidate came from a curated glossary pack.
func (s Source) IsPack() bool { return strings.HasPrefix(string(s), "pack-") }
