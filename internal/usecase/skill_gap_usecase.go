package usecase

import (
	"context"
	"strings"

	"job-pulse/internal/domain/skillgap"
	"job-pulse/internal/repository"
)

type SkillGapUsecase interface {
	Analyze(ctx context.Context, role string, candidateSkills []string) (skillgap.Result, error)
}

type SkillGap struct {
	profiles repository.RoleProfileRepository
}

func NewSkillGapUsecase(profiles repository.RoleProfileRepository) *SkillGap {
	return &SkillGap{profiles: profiles}
}

// Analyze compares candidate skills against a role's reference set.
// A role without reference data yields a valid zero-score result.
func (u *SkillGap) Analyze(ctx context.Context, role string, candidateSkills []string) (skillgap.Result, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return skillgap.Result{}, ErrInvalidInput
	}

	required, err := u.profiles.RequiredSkills(ctx, role)
	if err != nil {
		return skillgap.Result{}, ErrInternal
	}

	return skillgap.Analyze(role, candidateSkills, required), nil
}
