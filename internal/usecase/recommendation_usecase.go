package usecase

import (
	"context"
	"errors"
	"log"

	"job-pulse/internal/domain/recommend"
	"job-pulse/internal/repository"
)

var ErrNoRolesKnown = errors.New("no roles known")

type RecommendationUsecase interface {
	Recommend(ctx context.Context, candidateSkills []string, experienceLevel string) ([]recommend.Result, error)
}

type Recommendation struct {
	profiles repository.RoleProfileRepository
	logger   *log.Logger
}

func NewRecommendationUsecase(profiles repository.RoleProfileRepository, logger *log.Logger) *Recommendation {
	if logger == nil {
		logger = log.Default()
	}
	return &Recommendation{profiles: profiles, logger: logger}
}

// Recommend ranks every known role against a candidate profile.
func (u *Recommendation) Recommend(ctx context.Context, candidateSkills []string, experienceLevel string) ([]recommend.Result, error) {
	roles, err := u.profiles.ListRoles(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if len(roles) == 0 {
		return nil, ErrNoRolesKnown
	}

	profiles := make([]recommend.RoleProfile, 0, len(roles))
	for _, role := range roles {
		required, err := u.profiles.RequiredSkills(ctx, role)
		if err != nil {
			u.logger.Printf("[Recommend] skill lookup failed | role=%s error=%v", role, err)
			continue
		}
		level, err := u.profiles.ExpectedLevel(ctx, role)
		if err != nil {
			u.logger.Printf("[Recommend] level lookup failed | role=%s error=%v", role, err)
			continue
		}
		profiles = append(profiles, recommend.RoleProfile{
			Role:           role,
			RequiredSkills: required,
			ExpectedLevel:  recommend.ParseLevel(level),
		})
	}
	if len(profiles) == 0 {
		return nil, ErrNoRolesKnown
	}

	return recommend.Rank(candidateSkills, recommend.ParseLevel(experienceLevel), profiles), nil
}
