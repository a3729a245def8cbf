package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"tna-analytics/internal/config"
	"tna-analytics/internal/delivery/http/handler"
	"tna-analytics/internal/delivery/http/middleware"
	"tna-analytics/internal/delivery/http/routes"
	"tna-analytics/internal/infrastructure/cache"
	"tna-analytics/internal/usecase"
	ucauth "tna-analytics/internal/usecase/auth"
	"tna-analytics/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{})

	errMw := middleware.NewErrorMiddleware()
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	authMw := middleware.NewAuthMiddleware(c.JWT)

	authUC := usecase.NewAuthUsecase(c.Users, c.JWT)
	dashboardUC := usecase.NewDashboardUsecase(c.Datasets)
	clusterUC := usecase.NewClusterUsecase(c.Datasets)
	recommendationUC := usecase.NewRecommendationUsecase(c.Datasets, c.Cache, cache.DefaultTTLFromEnv())
	assessmentUC := usecase.NewAssessmentUsecase(c.Datasets, c.Models)
	adminUC := usecase.NewAdminUsecase(c.Datasets, c.Models, c.Cache, ws.NotifyDatasetReloaded)

	registry := &routes.Registry{
		Health:     handler.NewHealthHandler(),
		Auth:       handler.NewAuthHandler(authUC),
		Dashboard:  handler.NewDashboardHandler(dashboardUC),
		Cluster:    handler.NewClusterHandler(clusterUC, recommendationUC),
		Assessment: handler.NewAssessmentHandler(assessmentUC),
		Admin:      handler.NewAdminHandler(adminUC),
		WS:         ws.NewHandler(c.Hub, c.Logger),
		AuthMw:     authMw,
	}
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)

	if err := seedDefaultAdmin(c); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	return app, c.Close, nil
}

func seedDefaultAdmin(c *Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	svc := ucauth.NewService(c.Users)
	created, err := svc.EnsureDefaultAdmin(ctx, c.Config.Auth.DefaultAdminUsername, c.Config.Auth.DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	if created && c.Logger != nil {
		c.Logger.Printf("seeded default admin account | username=%s", c.Config.Auth.DefaultAdminUsername)
	}
	return nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
