package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v3"

	"job-pulse/internal/delivery/http/dto"
	"job-pulse/internal/delivery/http/middleware"
	"job-pulse/internal/pkg/response"
	"job-pulse/internal/usecase"
)

type DatasetHandler struct {
	uc usecase.DatasetUsecase
}

func NewDatasetHandler(uc usecase.DatasetUsecase) *DatasetHandler {
	return &DatasetHandler{uc: uc}
}

func (h *DatasetHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/datasets")
	grp.Post("/", h.Upload)
	grp.Get("/", h.List)
	grp.Post("/:dataset_id/predictions", h.Predict)
}

func (h *DatasetHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapDatasetUsecaseError(err)
	}

	out := make([]dto.DatasetItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.DatasetItemResponse{
			DatasetID:  it.ID,
			SizeBytes:  it.Size,
			UploadedAt: it.UploadedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *DatasetHandler) Upload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file field", nil, err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable upload", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable upload", nil, err)
	}

	res, err := h.uc.Upload(c.Context(), fh.Filename, data)
	if err != nil {
		return mapDatasetUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Dataset uploaded", dto.UploadResponse{
		DatasetID: res.DatasetID,
		Filename:  res.Filename,
	})
}

func (h *DatasetHandler) Predict(c fiber.Ctx) error {
	var req dto.PredictRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Predict(c.Context(), c.Params("dataset_id"), usecase.CandidateProfile{
		Skills:          req.Skills,
		ExperienceLevel: req.ExperienceLevel,
	})
	if err != nil {
		return mapDatasetUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromPrediction(res))
}

func mapDatasetUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrInvalidDataset):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrDatasetNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Dataset not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
