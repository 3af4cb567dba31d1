package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"job-pulse/internal/pkg/jwt"
)

const CtxAdminKey = "admin_username"

type AdminAuthMiddleware struct {
	jwt jwt.Service
}

func NewAdminAuthMiddleware(jwtSvc jwt.Service) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{jwt: jwtSvc}
}

func (m *AdminAuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxAdminKey, claims.Username)
		return c.Next()
	}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
