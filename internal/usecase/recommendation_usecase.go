package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tna-analytics/internal/config"
	"tna-analytics/internal/domain/needs"
	"tna-analytics/internal/domain/survey"
)

type FocusArea struct {
	Competency string  `json:"competency"`
	AvgRating  float64 `json:"avg_rating"`
	NeedLevel  string  `json:"need_level"`
}

type TrainingRecommendation struct {
	DomainID   string      `json:"domain_id"`
	DomainName string      `json:"domain_name"`
	AvgRating  float64     `json:"avg_rating"`
	Gap        float64     `json:"gap"`
	Priority   string      `json:"priority"`
	FocusAreas []FocusArea `json:"focus_areas,omitempty"`
	Programs   []string    `json:"suggested_programs,omitempty"`
}

type ClusterRecommendations struct {
	ClusterID       int                      `json:"cluster_id"`
	Interpretation  string                   `json:"interpretation"`
	Recommendations []TrainingRecommendation `json:"recommendations"`
}

type RecommendationUsecase struct {
	datasets DatasetProvider
	cache    AnalyticsCache
	cacheTTL time.Duration
}

func NewRecommendationUsecase(datasets DatasetProvider, cache AnalyticsCache, cacheTTL time.Duration) *RecommendationUsecase {
	return &RecommendationUsecase{datasets: datasets, cache: cache, cacheTTL: cacheTTL}
}

// ForCluster derives the ranked training-program recommendations for one
// cluster cohort. Results are cached per dataset fingerprint; a reload with
// changed contents produces new keys so stale entries are never served.
func (u *RecommendationUsecase) ForCluster(ctx context.Context, clusterID int) (ClusterRecommendations, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return ClusterRecommendations{}, err
	}

	cacheKey := recommendationsCacheKey(ds.Fingerprint, clusterID)
	if u.cache != nil {
		var cached ClusterRecommendations
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	cohort := ds.ClusterRecords(clusterID)
	if len(cohort) == 0 {
		return ClusterRecommendations{}, ErrClusterNotFound
	}

	result := ClusterRecommendations{
		ClusterID:       clusterID,
		Interpretation:  config.ClusterInterpretation(clusterID),
		Recommendations: buildTrainingRecommendations(ds, cohort),
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, result, u.cacheTTL)
	}
	return result, nil
}

func recommendationsCacheKey(fingerprint string, clusterID int) string {
	return fmt.Sprintf("tna:recs:%s:%d", fingerprint, clusterID)
}

func buildTrainingRecommendations(ds *survey.Dataset, cohort []survey.Record) []TrainingRecommendation {
	cohortAvgs := needs.DomainAverages(cohort, ds.Schema.Domains)
	overallAvgs := needs.DomainAverages(ds.Records, ds.Schema.Domains)

	ids := make([]string, 0, len(ds.Schema.Domains))
	keysByDomain := make(map[string][]string, len(ds.Schema.Domains))
	for _, d := range ds.Schema.Domains {
		ids = append(ids, d.ID)
		keysByDomain[d.ID] = d.Keys
	}

	ranked := needs.BuildRecommendations(ids, cohortAvgs, overallAvgs, config.DomainName)

	out := make([]TrainingRecommendation, 0, len(ranked))
	for _, rec := range ranked {
		out = append(out, TrainingRecommendation{
			DomainID:   rec.DomainID,
			DomainName: rec.DomainName,
			AvgRating:  rec.AvgRating,
			Gap:        rec.Gap,
			Priority:   rec.Priority.String(),
			FocusAreas: focusAreas(cohort, keysByDomain[rec.DomainID], 5),
			Programs:   config.TrainingPrograms(rec.DomainID),
		})
	}
	return out
}

// focusAreas lists the cohort's highest-rated competencies within a domain,
// keeping only those at or above moderate need (3.0).
func focusAreas(cohort []survey.Record, keys []string, limit int) []FocusArea {
	avgs := needs.CompetencyAverages(cohort, keys)

	areas := make([]FocusArea, 0, len(avgs))
	for _, key := range keys {
		avg, ok := avgs[key]
		if !ok || avg < 3.0 {
			continue
		}
		level := "MODERATE"
		switch {
		case avg >= 4.5:
			level = "URGENT"
		case avg >= 4.0:
			level = "HIGH"
		}
		areas = append(areas, FocusArea{
			Competency: survey.CompetencyName(key),
			AvgRating:  avg,
			NeedLevel:  level,
		})
	}
	sort.SliceStable(areas, func(i, j int) bool { return areas[i].AvgRating > areas[j].AvgRating })
	if len(areas) > limit {
		areas = areas[:limit]
	}
	return areas
}
