package handler

import (
	"strconv"

	"tna-analytics/internal/delivery/http/middleware"
	"tna-analytics/internal/pkg/response"
	"tna-analytics/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ClusterHandler struct {
	clusters        *usecase.ClusterUsecase
	recommendations *usecase.RecommendationUsecase
}

func NewClusterHandler(clusters *usecase.ClusterUsecase, recommendations *usecase.RecommendationUsecase) *ClusterHandler {
	return &ClusterHandler{clusters: clusters, recommendations: recommendations}
}

func (h *ClusterHandler) HandleList(c fiber.Ctx) error {
	summaries, err := h.clusters.List(c.Context())
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", summaries)
}

func (h *ClusterHandler) HandleProfile(c fiber.Ctx) error {
	id, err := clusterIDFromParams(c)
	if err != nil {
		return err
	}

	profile, err := h.clusters.Profile(c.Context(), id)
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", profile)
}

func (h *ClusterHandler) HandleRecommendations(c fiber.Ctx) error {
	id, err := clusterIDFromParams(c)
	if err != nil {
		return err
	}

	recs, err := h.recommendations.ForCluster(c.Context(), id)
	if err != nil {
		return mapDatasetError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", recs)
}

func clusterIDFromParams(c fiber.Ctx) (int, error) {
	raw := c.Params("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid cluster id", nil, err)
	}
	return id, nil
}
