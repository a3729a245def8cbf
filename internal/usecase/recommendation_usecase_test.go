package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecommendationsForCluster(t *testing.T) {
	uc := NewRecommendationUsecase(staticDatasets{ds: profileDataset(t)}, nil, 0)

	recs, err := uc.ForCluster(context.Background(), 0)
	if err != nil {
		t.Fatalf("ForCluster: %v", err)
	}

	if recs.ClusterID != 0 || recs.Interpretation == "" {
		t.Errorf("header = %+v", recs)
	}
	if len(recs.Recommendations) == 0 {
		t.Fatal("expected recommendations for the high-need cluster")
	}

	top := recs.Recommendations[0]
	if top.DomainID != "1" {
		t.Errorf("top recommendation = domain %s, want 1", top.DomainID)
	}
	if top.Priority != "URGENT" {
		t.Errorf("top priority = %q, want URGENT for avg >= 4.5", top.Priority)
	}
	if len(top.Programs) == 0 {
		t.Error("expected suggested programs")
	}
	if len(top.FocusAreas) == 0 {
		t.Fatal("expected focus areas")
	}
	for i := 1; i < len(top.FocusAreas); i++ {
		if top.FocusAreas[i].AvgRating > top.FocusAreas[i-1].AvgRating {
			t.Error("focus areas not sorted descending")
		}
	}

	// Domain 3 sits far below the overall average and must not be
	// recommended.
	for _, r := range recs.Recommendations {
		if r.DomainID == "3" {
			t.Errorf("domain 3 recommended: %+v", r)
		}
	}
}

func TestRecommendationsUseCache(t *testing.T) {
	cache := newFakeCache()
	uc := NewRecommendationUsecase(staticDatasets{ds: profileDataset(t)}, cache, time.Minute)

	first, err := uc.ForCluster(context.Background(), 0)
	if err != nil {
		t.Fatalf("ForCluster: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	second, err := uc.ForCluster(context.Background(), 0)
	if err != nil {
		t.Fatalf("ForCluster (cached): %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d after hit, want still 1", cache.sets)
	}
	if len(second.Recommendations) != len(first.Recommendations) {
		t.Errorf("cached result differs: %d vs %d recommendations", len(second.Recommendations), len(first.Recommendations))
	}
}

func TestRecommendationsClusterNotFound(t *testing.T) {
	uc := NewRecommendationUsecase(staticDatasets{ds: profileDataset(t)}, nil, 0)
	if _, err := uc.ForCluster(context.Background(), 7); !errors.Is(err, ErrClusterNotFound) {
		t.Fatalf("err = %v, want ErrClusterNotFound", err)
	}
}
