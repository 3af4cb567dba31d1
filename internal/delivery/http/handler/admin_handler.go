package handler

import (
	"github.com/gofiber/fiber/v3"

	"job-pulse/internal/delivery/http/dto"
	"job-pulse/internal/delivery/http/middleware"
	"job-pulse/internal/pkg/response"
	"job-pulse/internal/usecase"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/models/invalidate", h.InvalidateModels)
}

func (h *AdminHandler) InvalidateModels(c fiber.Ctx) error {
	var req dto.InvalidateModelsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.InvalidateModels(c.Context(), req.Role); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	scope := req.Role
	if scope == "" {
		scope = "all"
	}
	return response.Success(c, fiber.StatusOK, "Model cache invalidated", map[string]any{"scope": scope})
}
