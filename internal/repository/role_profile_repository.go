package repository

import (
	"context"

	"job-pulse/internal/database"
	"job-pulse/internal/domain/skillgap"
)

// RoleProfileRepository is the read-only reference-data source: which
// skills a role requires and which experience level it expects. A
// role without rows is a valid answer (empty skills, empty level),
// not an error.
type RoleProfileRepository interface {
	RequiredSkills(ctx context.Context, role string) ([]string, error)
	ExpectedLevel(ctx context.Context, role string) (string, error)
	ListRoles(ctx context.Context) ([]string, error)
}

type PostgresRoleProfileRepository struct {
	db database.DB
}

func NewPostgresRoleProfileRepository(db database.DB) *PostgresRoleProfileRepository {
	return &PostgresRoleProfileRepository{db: db}
}

func (r *PostgresRoleProfileRepository) RequiredSkills(ctx context.Context, role string) ([]string, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT skill_name FROM role_required_skills WHERE role_key = $1 ORDER BY skill_name ASC`,
		roleKey(role),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRoleProfileRepository) ExpectedLevel(ctx context.Context, role string) (string, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT expected_level FROM role_profiles WHERE role_key = $1`,
		roleKey(role),
	)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	level := ""
	if rows.Next() {
		if err := rows.Scan(&level); err != nil {
			return "", err
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return level, nil
}

func (r *PostgresRoleProfileRepository) ListRoles(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT role_name FROM role_profiles ORDER BY role_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// roleKey matches the dataset-tolerant normalization used for skill
// comparison: reference rows are keyed the same way.
func roleKey(role string) string {
	return skillgap.Normalize(role)
}
