// Package learned implements the learned-definition store using PostgreSQL.
// Rows are keyed by the uppercase acronym; Set is an upsert so concurrent
// writers cannot conflict.
package learned

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acrodocs/acrodocs-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides learned-definition persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new learned-definition repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the learned definition for a term.
// Returns domain.ErrNotFound if the term has never been learned.
func (r *Repo) Get(ctx context.Context, term string) (*domain.LearnedDefinition, error) {
	query, args, err := qb.
		Select("term", "definition", "source", "confidence", "updated_at").
		From("learned_definitions").
		Where(squirrel.Eq{"term": term}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		ld  domain.LearnedDefinition
		src string
	)
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&ld.Term, &ld.Definition, &src, &ld.Confidence, &ld.UpdatedAt); err != nil {
		return nil, mapError(err, "learned_definition", term)
	}
	ld.Source = domain.Source(src)

	return &ld, nil
}

// Set stores or replaces the learned definition for a term.
func (r *Repo) Set(ctx context.Context, ld domain.LearnedDefinition) error {
	query, args, err := qb.
		Insert("learned_definitions").
		Columns("term", "definition", "source", "confidence", "updated_at").
		Values(ld.Term, ld.Definition, string(ld.Source), ld.Confidence, squirrel.Expr("now()")).
		Suffix(`ON CONFLICT (term) DO UPDATE
			SET definition = EXCLUDED.definition,
			    source     = EXCLUDED.source,
			    confidence = EXCLUDED.confidence,
			    updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return mapError(err, "learned_definition", ld.Term)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, key, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, key, err)
}
