package seeder

import (
	"context"
	"fmt"
	"strings"

	"job-pulse/internal/database"
)

// RoleProfilesSeeder loads the default reference catalog: the roles the
// recommendation surface ranks against, each with an expected
// experience level and a required skill set. Existing rows win, so
// operator edits survive restarts.
type RoleProfilesSeeder struct{}

func (RoleProfilesSeeder) Name() string { return "role_profiles" }

type RoleProfile struct {
	Name   string
	Level  string
	Skills []string
}

// DefaultRoleProfiles is the built-in catalog, also used directly when
// the server runs without a database.
func DefaultRoleProfiles() []RoleProfile {
	return []RoleProfile{
		{
			Name:   "Data Scientist",
			Level:  "mid",
			Skills: []string{"Python", "SQL", "Statistics", "Machine Learning", "Pandas", "NumPy", "Scikit-learn"},
		},
		{
			Name:   "Machine Learning Engineer",
			Level:  "senior",
			Skills: []string{"Python", "Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "MLOps", "Docker"},
		},
		{
			Name:   "Software Engineer",
			Level:  "mid",
			Skills: []string{"Programming", "Data Structures", "Algorithms", "Git", "System Design", "Testing"},
		},
		{
			Name:   "DevOps Engineer",
			Level:  "mid",
			Skills: []string{"Linux", "Docker", "Kubernetes", "CI/CD", "Terraform", "Monitoring"},
		},
		{
			Name:   "Cloud Architect",
			Level:  "senior",
			Skills: []string{"AWS", "System Design", "Networking", "Security", "Kubernetes", "Cost Optimization"},
		},
		{
			Name:   "Data Analyst",
			Level:  "entry",
			Skills: []string{"SQL", "Excel", "Data Visualization", "Statistics", "Python"},
		},
		{
			Name:   "Product Manager",
			Level:  "senior",
			Skills: []string{"Product Strategy", "Roadmapping", "Stakeholder Management", "Analytics", "Communication"},
		},
		{
			Name:   "Full Stack Developer",
			Level:  "mid",
			Skills: []string{"JavaScript", "TypeScript", "React", "Node.js", "SQL", "REST APIs"},
		},
		{
			Name:   "Backend Developer",
			Level:  "mid",
			Skills: []string{"Go", "SQL", "REST APIs", "Caching", "Message Queues", "Testing"},
		},
		{
			Name:   "Frontend Developer",
			Level:  "entry",
			Skills: []string{"HTML", "CSS", "JavaScript", "React", "Accessibility"},
		},
	}
}

func (RoleProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	for _, profile := range DefaultRoleProfiles() {
		key := roleKey(profile.Name)

		if _, err := db.Exec(
			ctx,
			`INSERT INTO role_profiles (role_key, role_name, expected_level) VALUES ($1, $2, $3) ON CONFLICT (role_key) DO NOTHING`,
			key, profile.Name, profile.Level,
		); err != nil {
			return err
		}

		for _, skill := range profile.Skills {
			if _, err := db.Exec(
				ctx,
				`INSERT INTO role_required_skills (role_key, skill_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				key, skill,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func roleKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
