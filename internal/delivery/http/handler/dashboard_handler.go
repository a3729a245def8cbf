package handler

import (
	"errors"

	"tna-analytics/internal/delivery/http/middleware"
	"tna-analytics/internal/pkg/response"
	"tna-analytics/internal/repository"
	"tna-analytics/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) HandleOverview(c fiber.Ctx) error {
	overview, err := h.uc.Overview(c.Context())
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", overview)
}

// mapDatasetError is shared by the dataset-backed handlers.
func mapDatasetError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, repository.ErrDatasetNotFound):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Dataset not available", nil, err)
	case errors.Is(err, repository.ErrEmptyDataset):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Dataset is empty", nil, err)
	case errors.Is(err, usecase.ErrClusterNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Cluster not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
