package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"job-pulse/internal/config"
	"job-pulse/internal/pkg/jwt"
)

type AuthUsecase interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Auth authenticates the single operational admin account configured
// through the environment; there is no user database in this system.
type Auth struct {
	cfg config.AuthConfig
	jwt jwt.Service
}

func NewAuthUsecase(cfg config.AuthConfig, jwtSvc jwt.Service) *Auth {
	return &Auth{cfg: cfg, jwt: jwtSvc}
}

func (u *Auth) Login(_ context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidInput
	}

	if username != u.cfg.AdminUsername {
		return "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.cfg.AdminPasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	token, err := u.jwt.GenerateAdminToken(username)
	if err != nil {
		return "", ErrInternal
	}
	return token, nil
}
