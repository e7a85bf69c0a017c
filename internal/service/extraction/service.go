// Package extraction implements the acronym-resolution pipeline: detect
// acronyms in a document, gather candidate definitions from every evidence
// tier, and choose one per acronym.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/acrodocs/acrodocs-backend/internal/config"
	"github.com/acrodocs/acrodocs-backend/internal/domain"
	"github.com/acrodocs/acrodocs-backend/internal/extract"
	"github.com/acrodocs/acrodocs-backend/internal/lookup"
)

const (
	// excerptLimit bounds the excerpt attached to document-sourced hits.
	excerptLimit = 240
	// contextLimit bounds the document context forwarded to web lookups.
	contextLimit = 4000

	webNote = "possible match (web)"

	// maxKeywords bounds the topic hints derived from document context.
	maxKeywords = 8

	learnedConfidence = 0.95
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type learnedStore interface {
	Get(ctx context.Context, term string) (*domain.LearnedDefinition, error)
	Set(ctx context.Context, ld domain.LearnedDefinition) error
}

type webLookup interface {
	Lookup(ctx context.Context, q lookup.Query) []domain.Candidate
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Input is one document to process: body text plus table rows.
type Input struct {
	Text      string
	TableRows [][]string
}

// Options tunes a single extraction run.
type Options struct {
	// IncludeCommon disables the common-word stoplist for this run.
	IncludeCommon bool
	Keyword       string
	Lang          string
	Domain        string
	Strict        bool
}

// Service implements the extraction business logic.
type Service struct {
	log     *slog.Logger
	learned learnedStore
	web     webLookup
	cfg     config.ExtractionConfig
}

// NewService creates a new Extraction service.
func NewService(logger *slog.Logger, learned learnedStore, web webLookup, cfg config.ExtractionConfig) *Service {
	return &Service{
		log:     logger.With("service", "extraction"),
		learned: learned,
		web:     web,
		cfg:     cfg,
	}
}

// Extract resolves every acronym found in the input. Empty input yields an
// empty result, never an error. Acronyms are resolved independently and
// fanned out across a bounded worker group; result order follows
// first-occurrence order in the document.
func (s *Service) Extract(ctx context.Context, in Input, opts Options) ([]domain.Resolution, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && len(in.TableRows) == 0 {
		return []domain.Resolution{}, nil
	}

	policy := domain.StoplistPolicy{Enabled: !opts.IncludeCommon && !s.cfg.IncludeCommon}

	sentences := extract.SplitSentences(text)

	scanner := extract.NewGlossaryScanner(policy)
	glossary := scanner.ScanTables(in.TableRows)
	glossary.Merge(scanner.ScanGlobal(text))

	// Glossary-only acronyms (defined in a table but never used in the body)
	// must still be reported, so detection runs over both.
	detector := extract.NewDetector(policy)
	acronyms := detector.Detect(text + "\n" + strings.Join(glossary.Terms(), "\n"))
	if len(acronyms) == 0 {
		return []domain.Resolution{}, nil
	}

	matcher := extract.NewMatcher()
	ctxText := extract.TruncateBytes(text, contextLimit)

	if opts.Keyword == "" {
		if kws := extract.Keywords(ctxText, maxKeywords); len(kws) > 0 {
			opts.Keyword = kws[0]
		}
	}

	results := make([]domain.Resolution, len(acronyms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, acr := range acronyms {
		i, acr := i, acr
		g.Go(func() error {
			results[i] = s.resolve(gctx, acr, glossary, sentences, matcher, ctxText, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve acronyms: %w", err)
	}

	return results, nil
}

// resolve collects candidates for one acronym in evidence order and chooses
// the best. It always yields at least one candidate.
func (s *Service) resolve(ctx context.Context, acr string, glossary *domain.GlossaryMap, sentences []string, matcher *extract.Matcher, contextText string, opts Options) domain.Resolution {
	var candidates []domain.Candidate
	excerpts := make(map[string]string)

	if def, ok := glossary.Get(acr); ok {
		c := domain.Candidate{Definition: def, Confidence: 0.86, Source: domain.SourceDocument}
		candidates = append(candidates, c)
		excerpts[c.DedupKey()] = extract.TableExcerpt(acr, def)
	}

	if hit := matcher.Find(acr, sentences); hit != nil {
		c := domain.Candidate{Definition: hit.Phrase, Confidence: hit.Confidence, Source: domain.SourceDocument}
		candidates = append(candidates, c)
		if _, seen := excerpts[c.DedupKey()]; !seen {
			excerpts[c.DedupKey()] = extract.TruncateBytes(hit.Excerpt, excerptLimit)
		}
	}

	if ld, err := s.learned.Get(ctx, acr); err == nil {
		candidates = append(candidates, domain.Candidate{
			Definition: ld.Definition,
			Confidence: ld.Confidence,
			Source:     ld.Source,
		})
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("learned store read failed", "term", acr, "error", err)
	}

	// External lookups are the expensive, rate-limited path; they run only
	// when the document and the learned store produced nothing.
	if len(candidates) == 0 {
		candidates = append(candidates, s.web.Lookup(ctx, lookup.Query{
			Term:    acr,
			Context: contextText,
			Limit:   s.cfg.MaxWebCandidates,
			Keyword: opts.Keyword,
			Lang:    opts.Lang,
			Domain:  opts.Domain,
			Strict:  opts.Strict,
		})...)
	}

	candidates = domain.DedupCandidates(candidates)
	if len(candidates) == 0 {
		candidates = []domain.Candidate{domain.PlaceholderCandidate()}
	}

	chosen := chooseIndex(candidates)
	best := candidates[chosen]

	res := domain.Resolution{
		Term:        acr,
		Definition:  best.Definition,
		Confidence:  best.Confidence,
		Source:      best.Source,
		Candidates:  candidates,
		ChosenIndex: chosen,
	}
	if best.Source.IsDocument() {
		res.Excerpt = excerpts[best.DedupKey()]
	}
	if best.Source.IsWeb() {
		res.Note = webNote
	}
	return res
}

// chooseIndex applies the source-priority tie-break:
// document > learned/user > first remaining.
func chooseIndex(candidates []domain.Candidate) int {
	for i, c := range candidates {
		if c.Source.IsDocument() {
			return i
		}
	}
	for i, c := range candidates {
		if c.Source.IsLearned() {
			return i
		}
	}
	return 0
}

// Learn stores a user-confirmed definition for a term.
func (s *Service) Learn(ctx context.Context, term, definition string) (*domain.LearnedDefinition, error) {
	norm := domain.NormalizeAcronym(term)
	if norm == "" || len(norm) < 2 {
		return nil, domain.NewValidationError("term", "must be an acronym of at least two characters")
	}
	definition = strings.TrimSpace(definition)
	if definition == "" {
		return nil, domain.NewValidationError("definition", "must not be empty")
	}

	ld := domain.LearnedDefinition{
		Term:       norm,
		Definition: definition,
		Source:     domain.SourceUser,
		Confidence: learnedConfidence,
	}
	if err := s.learned.Set(ctx, ld); err != nil {
		return nil, fmt.Errorf("store learned definition %s: %w", norm, err)
	}

	return &ld, nil
}

func (s *Service) workers() int {
	if s.cfg.Workers > 0 {
		return s.cfg.Workers
	}
	return 4
}
