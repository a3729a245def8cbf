package handler

import (
	"tna-analytics/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Handle(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"healthy": true})
}
