package handler

import (
	"tna-analytics/internal/delivery/http/middleware"
	"tna-analytics/internal/pkg/response"
	"tna-analytics/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssessmentHandler struct {
	uc *usecase.AssessmentUsecase
}

type submitAssessmentRequest struct {
	Ratings map[string]any `json:"ratings"`
}

func NewAssessmentHandler(uc *usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) HandleForm(c fiber.Ctx) error {
	form, err := h.uc.Form(c.Context())
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", form)
}

func (h *AssessmentHandler) HandleSubmit(c fiber.Ctx) error {
	var req submitAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Ratings == nil {
		req.Ratings = map[string]any{}
	}

	result, err := h.uc.Submit(c.Context(), req.Ratings)
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", result)
}
