package repository

import (
	"context"
	"sort"
)

// StaticProfile is one in-memory reference entry.
type StaticProfile struct {
	Role           string
	ExpectedLevel  string
	RequiredSkills []string
}

// StaticRoleProfileRepository serves reference data from memory. It is
// the fallback when the server runs without a database, mirroring the
// seeded catalog.
type StaticRoleProfileRepository struct {
	byKey map[string]StaticProfile
	roles []string
}

func NewStaticRoleProfileRepository(profiles []StaticProfile) *StaticRoleProfileRepository {
	byKey := make(map[string]StaticProfile, len(profiles))
	roles := make([]string, 0, len(profiles))
	for _, p := range profiles {
		byKey[roleKey(p.Role)] = p
		roles = append(roles, p.Role)
	}
	sort.Strings(roles)
	return &StaticRoleProfileRepository{byKey: byKey, roles: roles}
}

func (r *StaticRoleProfileRepository) RequiredSkills(_ context.Context, role string) ([]string, error) {
	p, ok := r.byKey[roleKey(role)]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, len(p.RequiredSkills))
	copy(out, p.RequiredSkills)
	sort.Strings(out)
	return out, nil
}

func (r *StaticRoleProfileRepository) ExpectedLevel(_ context.Context, role string) (string, error) {
	p, ok := r.byKey[roleKey(role)]
	if !ok {
		return "", nil
	}
	return p.ExpectedLevel, nil
}

func (r *StaticRoleProfileRepository) ListRoles(_ context.Context) ([]string, error) {
	out := make([]string, len(r.roles))
	copy(out, r.roles)
	return out, nil
}
