package usecase

import (
	"context"
	"log"
	"strings"
)

// ModelInvalidator is the registry's cache-clear hook, exposed to the
// admin surface for use after a model is retrained or replaced.
type ModelInvalidator interface {
	Invalidate(role string)
	InvalidateAll()
}

// PredictionInvalidator drops cached prediction responses; stale
// responses would otherwise outlive a model swap.
type PredictionInvalidator interface {
	DeletePredictions(ctx context.Context) error
}

type AdminNotifier interface {
	ModelsInvalidated(role string)
}

type AdminUsecase interface {
	InvalidateModels(ctx context.Context, role string) error
}

type Admin struct {
	models      ModelInvalidator
	predictions PredictionInvalidator
	notifier    AdminNotifier
	logger      *log.Logger
}

func NewAdminUsecase(models ModelInvalidator, predictions PredictionInvalidator, notifier AdminNotifier, logger *log.Logger) *Admin {
	if logger == nil {
		logger = log.Default()
	}
	return &Admin{models: models, predictions: predictions, notifier: notifier, logger: logger}
}

// InvalidateModels drops cached model handles for one role, or every
// role when the role is empty, then clears cached predictions so the
// next request re-resolves against the fresh artifacts.
func (u *Admin) InvalidateModels(ctx context.Context, role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		u.models.InvalidateAll()
		u.logger.Printf("[Admin] model cache cleared | scope=all")
	} else {
		u.models.Invalidate(role)
		u.logger.Printf("[Admin] model cache cleared | role=%s", role)
	}

	if u.predictions != nil {
		if err := u.predictions.DeletePredictions(ctx); err != nil {
			u.logger.Printf("[Admin] prediction cache clear failed | error=%v", err)
		}
	}

	if u.notifier != nil {
		u.notifier.ModelsInvalidated(role)
	}
	return nil
}
