// Package webcache implements the external-lookup response cache using
// PostgreSQL. Values are ranked candidate lists stored as JSONB; entries
// carry a write timestamp but expire only via the cleanup command.
package webcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acrodocs/acrodocs-backend/internal/domain"
)

var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides response-cache persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new response-cache repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the cached candidate list for a key.
// Returns domain.ErrNotFound on a cache miss.
func (r *Repo) Get(ctx context.Context, key string) ([]domain.Candidate, error) {
	query, args, err := qb.
		Select("candidates").
		From("web_cache").
		Where(squirrel.Eq{"cache_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var raw []byte
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("web_cache %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("web_cache %s: %w", key, err)
	}

	var candidates []domain.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, fmt.Errorf("web_cache %s: decode candidates: %w", key, err)
	}

	return candidates, nil
}

// Set stores or replaces the candidate list for a key.
func (r *Repo) Set(ctx context.Context, key string, candidates []domain.Candidate) error {
	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	raw, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("web_cache %s: encode candidates: %w", key, err)
	}

	query, args, err := qb.
		Insert("web_cache").
		Columns("cache_key", "candidates", "created_at").
		Values(key, raw, squirrel.Expr("now()")).
		Suffix(`ON CONFLICT (cache_key) DO UPDATE
			SET candidates = EXCLUDED.candidates,
			    created_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("web_cache %s: %w", key, err)
	}

	return nil
}

// DeleteOlderThan removes cache entries written before the cutoff age.
// Returns the count of deleted entries.
func (r *Repo) DeleteOlderThan(ctx context.Context, age time.Duration) (int, error) {
	query, args, err := qb.
		Delete("web_cache").
		Where(squirrel.Expr("created_at < now() - make_interval(secs => ?)", age.Seconds())).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("web_cache cleanup: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
