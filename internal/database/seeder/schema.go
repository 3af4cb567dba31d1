package seeder

import (
	"context"
	"fmt"

	"job-pulse/internal/database"
)

// SchemaSeeder creates the reference tables when they are absent.
// Statements are idempotent so a restart never fails on an existing
// schema.
type SchemaSeeder struct{}

func (SchemaSeeder) Name() string { return "schema" }

func (SchemaSeeder) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS role_profiles (
			role_key TEXT PRIMARY KEY,
			role_name TEXT NOT NULL,
			expected_level TEXT NOT NULL DEFAULT 'mid',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS role_required_skills (
			role_key TEXT NOT NULL REFERENCES role_profiles(role_key) ON DELETE CASCADE,
			skill_name TEXT NOT NULL,
			PRIMARY KEY (role_key, skill_name)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
