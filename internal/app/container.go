package app

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tna-analytics/internal/config"
	"tna-analytics/internal/infrastructure/cache"
	"tna-analytics/internal/infrastructure/persistence/postgres"
	"tna-analytics/internal/pkg/jwt"
	"tna-analytics/internal/repository"
	"tna-analytics/internal/usecase"
	"tna-analytics/internal/ws"
)

// Container owns the shared infrastructure: database pool, cache, dataset
// repository, model cache, and the websocket hub.
type Container struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Cache  *cache.Redis

	Datasets *repository.DatasetRepository
	Models   *usecase.ModelRepository
	Users    *postgres.UserRepository
	JWT      jwt.Service
	Hub      *ws.Hub

	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	users := postgres.NewUserRepository(pool)
	if err := users.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	jwtSvc := jwt.NewHMACService(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessExpiresIn,
		cfg.Auth.RefreshExpiresIn,
	)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config:   cfg,
		Pool:     pool,
		Cache:    cache.NewRedis(logger),
		Datasets: repository.NewDatasetRepository(cfg.Data.DatasetFile),
		Models:   usecase.NewModelRepository(config.NumClusters, config.ClusterSeed),
		Users:    users,
		JWT:      jwtSvc,
		Hub:      hub,
		Logger:   logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}
