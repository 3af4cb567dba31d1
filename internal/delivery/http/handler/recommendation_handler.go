package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"job-pulse/internal/delivery/http/dto"
	"job-pulse/internal/delivery/http/middleware"
	"job-pulse/internal/pkg/response"
	"job-pulse/internal/usecase"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/recommendations", h.Recommend)
}

func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.Recommend(c.Context(), req.Skills, req.ExperienceLevel)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	out := make([]dto.RecommendationItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RecommendationItemResponse{
			Role:  it.Role,
			Score: it.Score,
			Rank:  it.Rank,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrNoRolesKnown):
		return middleware.NewAppError(fiber.StatusNotFound, "No roles known", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
