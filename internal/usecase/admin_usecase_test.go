package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"job-pulse/internal/config"
	"job-pulse/internal/pkg/jwt"
)

type mockInvalidator struct {
	invalidated []string
	clearedAll  bool
}

func (m *mockInvalidator) Invalidate(role string) { m.invalidated = append(m.invalidated, role) }
func (m *mockInvalidator) InvalidateAll()         { m.clearedAll = true }

type mockPredictionInvalidator struct {
	calls int
}

func (m *mockPredictionInvalidator) DeletePredictions(context.Context) error {
	m.calls++
	return nil
}

type mockAdminNotifier struct {
	events []string
}

func (m *mockAdminNotifier) ModelsInvalidated(role string) { m.events = append(m.events, role) }

func TestAdmin_InvalidateSingleRole(t *testing.T) {
	models := &mockInvalidator{}
	predictions := &mockPredictionInvalidator{}
	notifier := &mockAdminNotifier{}
	u := NewAdminUsecase(models, predictions, notifier, nil)

	if err := u.InvalidateModels(context.Background(), "Data Scientist"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(models.invalidated) != 1 || models.invalidated[0] != "Data Scientist" {
		t.Fatalf("unexpected invalidations %v", models.invalidated)
	}
	if models.clearedAll {
		t.Fatalf("single-role invalidation must not clear everything")
	}
	if predictions.calls != 1 {
		t.Fatalf("expected prediction cache clear")
	}
	if len(notifier.events) != 1 {
		t.Fatalf("expected notification")
	}
}

func TestAdmin_InvalidateAll(t *testing.T) {
	models := &mockInvalidator{}
	u := NewAdminUsecase(models, nil, nil, nil)

	if err := u.InvalidateModels(context.Background(), "  "); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !models.clearedAll {
		t.Fatalf("empty role must clear the whole cache")
	}
}

func TestAuth_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	}
	svc := jwt.NewHMACService("test-secret", time.Hour)
	u := NewAuthUsecase(cfg, svc)

	token, err := u.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Username != "admin" || !claims.Admin {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := u.Login(context.Background(), "admin", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := u.Login(context.Background(), "someone", "s3cret"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
	if _, err := u.Login(context.Background(), "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
