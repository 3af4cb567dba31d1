package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"job-pulse/internal/delivery/http/dto"
	"job-pulse/internal/delivery/http/middleware"
	"job-pulse/internal/pkg/response"
	"job-pulse/internal/usecase"
)

type SkillGapHandler struct {
	uc usecase.SkillGapUsecase
}

func NewSkillGapHandler(uc usecase.SkillGapUsecase) *SkillGapHandler {
	return &SkillGapHandler{uc: uc}
}

func (h *SkillGapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/skill-gap", h.Analyze)
}

func (h *SkillGapHandler) Analyze(c fiber.Ctx) error {
	var req dto.SkillGapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Analyze(c.Context(), req.JobRole, req.Skills)
	if err != nil {
		return mapSkillGapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillGapResponse{
		JobRole:       res.Role,
		MatchedSkills: res.MatchedSkills,
		MissingSkills: res.MissingSkills,
		Score:         res.Score,
	})
}

func mapSkillGapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
