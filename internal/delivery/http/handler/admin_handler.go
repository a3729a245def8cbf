package handler

import (
	"bytes"
	"strconv"

	"tna-analytics/internal/delivery/http/middleware"
	"tna-analytics/internal/pkg/response"
	"tna-analytics/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc *usecase.AdminUsecase
}

func NewAdminHandler(uc *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) HandleDatasetInfo(c fiber.Ctx) error {
	info, err := h.uc.Info(c.Context())
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", info)
}

func (h *AdminHandler) HandlePreview(c fiber.Ctx) error {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
		limit = v
	}

	rows, err := h.uc.PreviewRows(c.Context(), limit)
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", rows)
}

func (h *AdminHandler) HandleStatistics(c fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context())
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", stats)
}

func (h *AdminHandler) HandleExport(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Context(), &buf); err != nil {
		return mapDatasetError(err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tna_data_export.csv"`)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func (h *AdminHandler) HandleReload(c fiber.Ctx) error {
	result, err := h.uc.Reload(c.Context())
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", result)
}
