package routes

import (
	"tna-analytics/internal/delivery/http/handler"
	"tna-analytics/internal/delivery/http/middleware"
	"tna-analytics/internal/domain/user"
	"tna-analytics/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds the constructed handlers and wires them onto the app.
type Registry struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Dashboard  *handler.DashboardHandler
	Cluster    *handler.ClusterHandler
	Assessment *handler.AssessmentHandler
	Admin      *handler.AdminHandler
	WS         *ws.Handler

	AuthMw *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		app.Get("/health", r.Health.Handle)
	}
	if r.WS != nil {
		app.Get("/ws/dashboard", r.WS.HandleDashboardWS)
	}

	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	if r.Auth != nil {
		r.Auth.RegisterRoutes(v1.Group("/auth"))
	}

	if r.AuthMw == nil {
		return
	}
	protected := v1.Group("", r.AuthMw.Middleware())

	if r.Dashboard != nil {
		protected.Get("/dashboard/overview", r.Dashboard.HandleOverview)
	}

	if r.Cluster != nil {
		clusters := protected.Group("/clusters")
		clusters.Get("", r.Cluster.HandleList)
		clusters.Get("/:id/profile", r.Cluster.HandleProfile)
		clusters.Get("/:id/recommendations", r.Cluster.HandleRecommendations)
	}

	if r.Assessment != nil {
		assessment := protected.Group("/assessment")
		assessment.Get("/form", r.Assessment.HandleForm)
		assessment.Post("", r.Assessment.HandleSubmit)
	}

	if r.Admin != nil {
		admin := protected.Group("/admin", r.AuthMw.RequireRole(user.RoleAdmin))
		admin.Get("/dataset", r.Admin.HandleDatasetInfo)
		admin.Get("/dataset/preview", r.Admin.HandlePreview)
		admin.Get("/dataset/export", r.Admin.HandleExport)
		admin.Get("/statistics", r.Admin.HandleStatistics)
		admin.Post("/dataset/reload", r.Admin.HandleReload)
	}
}
