// Command cleanup-cache deletes web lookup cache entries older than the
// retention window.
//
// Usage:
//
//	cleanup-cache
//
// Requires DATABASE_DSN environment variable to be set. CACHE_RETENTION
// overrides the default retention of 168h.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acrodocs/acrodocs-backend/internal/adapter/postgres/webcache"
)

const defaultRetention = 168 * time.Hour

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	retention := defaultRetention
	if v := os.Getenv("CACHE_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid CACHE_RETENTION %q: %v", v, err)
		}
		retention = d
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	deleted, err := webcache.New(pool).DeleteOlderThan(ctx, retention)
	if err != nil {
		log.Fatalf("cleanup cache: %v", err)
	}

	fmt.Printf("Deleted %d cache entries older than %s.\n", deleted, retention)
}
