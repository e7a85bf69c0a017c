package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	// Verify migrations ran: both tables must exist and be queryable.
	var n int
	if err := pool.QueryRow(
		context.Background(),
		`SELECT count(*) FROM learned_definitions`,
	).Scan(&n); err != nil {
		t.Fatalf("expected learned_definitions table, got error: %v", err)
	}

	if err := pool.QueryRow(
		context.Background(),
		`SELECT count(*) FROM web_cache`,
	).Scan(&n); err != nil {
		t.Fatalf("expected web_cache table, got error: %v", err)
	}
}
