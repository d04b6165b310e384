// Package database provides unit tests for database connection management.
// Integration tests with a real PostgreSQL instance live in the integration
// suite; here we only validate configuration defaults.
package database

import "testing"

// TestDefaultConfig verifies pool defaults are applied around the given URL.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("postgres://localhost:5432/sga")

	if cfg.URL != "postgres://localhost:5432/sga" {
		t.Errorf("unexpected URL %q", cfg.URL)
	}
	if cfg.MaxConns != 25 {
		t.Errorf("expected MaxConns 25, got %d", cfg.MaxConns)
	}
	if cfg.MinConns != 5 {
		t.Errorf("expected MinConns 5, got %d", cfg.MinConns)
	}
}
