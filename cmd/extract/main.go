// Command extract runs the acronym extraction pipeline over a local
// document and prints the result, without the HTTP server or a database.
//
// Usage:
//
//	extract [flags] <file.docx|file.txt>
//
// Web lookups run against the live sources unless -no-web is given.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/acrodocs/acrodocs-backend/internal/adapter/docsource"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/duckduckgo"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/glossarypack"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/webclient"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/wikidata"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/wikipedia"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/wiktionary"
	"github.com/acrodocs/acrodocs-backend/internal/config"
	"github.com/acrodocs/acrodocs-backend/internal/domain"
	"github.com/acrodocs/acrodocs-backend/internal/lookup"
	"github.com/acrodocs/acrodocs-backend/internal/service/extraction"
)

func main() {
	var (
		asCSV         = flag.Bool("csv", false, "emit CSV instead of JSON")
		includeCommon = flag.Bool("include-common", false, "keep stoplisted common words")
		keyword       = flag.String("keyword", "", "disambiguation keyword hint")
		lang          = flag.String("lang", "en", "language hint")
		domainHint    = flag.String("domain", "", "glossary pack domain hint")
		strict        = flag.Bool("strict", false, "keep only exact-initial web candidates")
		noWeb         = flag.Bool("no-web", false, "skip web lookups")
		timeout       = flag.Duration("timeout", 5*time.Second, "per-request web timeout")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: extract [flags] <file.docx|file.txt>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	doc, err := docsource.FromUpload(filepath.Base(path), data)
	if err != nil {
		log.Fatalf("parse %s: %v", path, err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var web webSource = noopWeb{}
	if !*noWeb {
		client := webclient.New(*timeout, "acrodocs-cli/1.0", logger)
		wiki := wikipedia.NewProvider(client, logger)
		packs, err := glossarypack.NewProvider(logger)
		if err != nil {
			log.Fatalf("load glossary packs: %v", err)
		}
		sources := []lookup.Source{
			wikipedia.NewTitleSearch(wiki),
			wikipedia.NewSummary(wiki),
			wikipedia.NewOpenSearch(wiki),
			wiktionary.NewProvider(client, logger),
			wikidata.NewProvider(client, logger),
			packs,
			duckduckgo.NewProvider(client, logger),
		}
		web = lookup.New(nopCache{}, sources, logger)
	}

	svc := extraction.NewService(logger, nopLearned{}, web, config.ExtractionConfig{
		Workers:          4,
		MaxWebCandidates: 5,
	})

	results, err := svc.Extract(context.Background(), extraction.Input{
		Text:      doc.FullText,
		TableRows: doc.TableRows,
	}, extraction.Options{
		IncludeCommon: *includeCommon,
		Keyword:       *keyword,
		Lang:          *lang,
		Domain:        *domainHint,
		Strict:        *strict,
	})
	if err != nil {
		log.Fatalf("extract: %v", err)
	}

	if *asCSV {
		writeCSV(results)
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"acronyms": results}); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}

func writeCSV(results []domain.Resolution) {
	cw := csv.NewWriter(os.Stdout)
	cw.Write([]string{"Acronym", "Definition", "Confidence", "Source", "Note", "FirstSeenExcerpt"}) //nolint:errcheck
	for _, res := range results {
		cw.Write([]string{ //nolint:errcheck
			res.Term,
			res.Definition,
			strconv.FormatFloat(res.Confidence, 'f', -1, 64),
			string(res.Source),
			res.Note,
			res.Excerpt,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Fatalf("write csv: %v", err)
	}
}

// webSource matches what the extraction service expects for web lookups.
type webSource interface {
	Lookup(ctx context.Context, q lookup.Query) []domain.Candidate
}

// nopLearned is a learned store with no entries, for offline runs.
type nopLearned struct{}

func (nopLearned) Get(context.Context, string) (*domain.LearnedDefinition, error) {
	return nil, domain.ErrNotFound
}
func (nopLearned) Set(context.Context, domain.LearnedDefinition) error { return nil }

// nopCache never hits and drops writes.
type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]domain.Candidate, error) {
	return nil, domain.ErrNotFound
}
func (nopCache) Set(context.Context, string, []domain.Candidate) error { return nil }

// noopWeb skips external lookups entirely.
type noopWeb struct{}

func (noopWeb) Lookup(context.Context, lookup.Query) []domain.Candidate { return nil }
