// Package glossarypack serves curated acronym packs bundled into the binary.
// Packs are small JSON maps per subject area; a hit in a pack is near
// authoritative, so the base score is high.
package glossarypack

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/acrodocs/acrodocs-backend/internal/domain"
	"github.com/acrodocs/acrodocs-backend/internal/provider"
)

//go:embed packs/*.json
var packFS embed.FS

const baseScore = 0.88

type pack struct {
	name    string
	entries map[string]string
}

// Provider answers from the embedded packs. When a domain hint is present,
// only the matching pack is consulted; otherwise all packs are, in name
// order.
type Provider struct {
	packs []pack
	log   *slog.Logger
}

// NewProvider loads every embedded pack. A malformed pack fails loudly
// rather than shipping a silently empty source.
func NewProvider(logger *slog.Logger) (*Provider, error) {
	return newProviderFromFS(packFS, logger)
}

func newProviderFromFS(fsys fs.FS, logger *slog.Logger) (*Provider, error) {
	files, err := fs.Glob(fsys, "packs/*.json")
	if err != nil {
		return nil, fmt.Errorf("glossarypack: glob packs: %w", err)
	}
	sort.Strings(files)

	p := &Provider{log: logger.With("adapter", "glossarypack")}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("glossarypack: read %s: %w", file, err)
		}
		entries := make(map[string]string)
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("glossarypack: parse %s: %w", file, err)
		}
		name := strings.TrimSuffix(path.Base(file), ".json")
		normalized := make(map[string]string, len(entries))
		for term, def := range entries {
			normalized[domain.NormalizeAcronym(term)] = strings.TrimSpace(def)
		}
		p.packs = append(p.packs, pack{name: name, entries: normalized})
	}
	return p, nil
}

func (p *Provider) Name() string { return "glossarypack" }

// PackNames lists the loaded packs, for diagnostics.
func (p *Provider) PackNames() []string {
	names := make([]string, 0, len(p.packs))
	for _, pk := range p.packs {
		names = append(names, pk.name)
	}
	return names
}

func (p *Provider) Query(_ context.Context, term string, hints provider.Hints) ([]provider.Snippet, error) {
	key := domain.NormalizeAcronym(term)
	wantPack := strings.ToLower(strings.TrimSpace(hints.Domain))

	var out []provider.Snippet
	for _, pk := range p.packs {
		if wantPack != "" && pk.name != wantPack {
			continue
		}
		def, ok := pk.entries[key]
		if !ok || def == "" {
			continue
		}
		out = append(out, provider.Snippet{
			Title:     term,
			Text:      def,
			Source:    string(domain.PackSource(pk.name)),
			BaseScore: baseScore,
		})
	}
	return out, nil
}
