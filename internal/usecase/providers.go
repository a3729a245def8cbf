package usecase

import (
	"context"
	"time"

	"tna-analytics/internal/domain/survey"
)

// DatasetProvider hands out the currently loaded survey dataset.
type DatasetProvider interface {
	Current() (*survey.Dataset, error)
}

// ModelProvider returns fitted clustering artifacts for a dataset.
type ModelProvider interface {
	GetOrFit(dataset *survey.Dataset) (*FittedModel, error)
}

// AnalyticsCache caches derived responses keyed by dataset fingerprint.
type AnalyticsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
