package glossarypack

import (
	"context"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/acrodocs/acrodocs-backend/internal/provider"
)

func TestProvider_Query_EmbeddedPacks(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(slog.Default())
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if len(p.PackNames()) == 0 {
		t.Fatal("no packs loaded")
	}

	snips, err := p.Query(context.Background(), "GPS", provider.Hints{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(snips) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snips))
	}
	if snips[0].Text != "Global Positioning System" {
		t.Errorf("text = %q", snips[0].Text)
	}
	if snips[0].Source != "pack-aerospace" {
		t.Errorf("source = %q", snips[0].Source)
	}
	if snips[0].BaseScore != 0.88 {
		t.Errorf("base score = %v, want 0.88", snips[0].BaseScore)
	}
}

func TestProvider_Query_DomainHintFilters(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"packs/alpha.json": {Data: []byte(`{"ABC":"Alpha Beta Charlie"}`)},
		"packs/bravo.json": {Data: []byte(`{"ABC":"Another Bravo Choice"}`)},
	}
	p, err := newProviderFromFS(fsys, slog.Default())
	if err != nil {
		t.Fatalf("newProviderFromFS() error = %v", err)
	}

	all, err := p.Query(context.Background(), "ABC", provider.Hints{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d snippets without hint, want 2", len(all))
	}

	only, err := p.Query(context.Background(), "ABC", provider.Hints{Domain: "Bravo"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(only) != 1 || only[0].Text != "Another Bravo Choice" {
		t.Fatalf("got %v, want only the bravo pack entry", only)
	}
}

func TestProvider_Query_NormalizesTerm(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"packs/alpha.json": {Data: []byte(`{"N.A.S.A.":"National Aeronautics and Space Administration"}`)},
	}
	p, err := newProviderFromFS(fsys, slog.Default())
	if err != nil {
		t.Fatalf("newProviderFromFS() error = %v", err)
	}

	snips, err := p.Query(context.Background(), "NASA's", provider.Hints{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(snips) != 1 {
		t.Fatalf("got %d snippets, want 1 via normalization", len(snips))
	}
}

func TestNewProviderFromFS_Malformed(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"packs/broken.json": {Data: []byte(`not json`)},
	}
	if _, err := newProviderFromFS(fsys, slog.Default()); err == nil {
		t.Fatal("newProviderFromFS() error = nil, want parse error")
	}
}
