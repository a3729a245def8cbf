package usecase

import (
	"context"
	"errors"
	"sort"

	"tna-analytics/internal/config"
	"tna-analytics/internal/domain/needs"
	"tna-analytics/internal/domain/survey"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrClusterNotFound = errors.New("cluster not found")
)

type ClusterSummary struct {
	ClusterID      int     `json:"cluster_id"`
	Participants   int     `json:"participants"`
	Percentage     float64 `json:"percentage"`
	AvgRating      float64 `json:"avg_rating"`
	EngagementRank int     `json:"engagement_rank"`
	Interpretation string  `json:"interpretation"`
}

type Overview struct {
	TotalParticipants int              `json:"total_participants"`
	NumClusters       int              `json:"num_clusters"`
	Clusters          []ClusterSummary `json:"clusters"`
}

type DashboardUsecase struct {
	datasets DatasetProvider
}

func NewDashboardUsecase(datasets DatasetProvider) *DashboardUsecase {
	return &DashboardUsecase{datasets: datasets}
}

// Overview assembles the landing-page numbers: participant totals, cluster
// sizes, and the interpretation card per cluster.
func (u *DashboardUsecase) Overview(ctx context.Context) (Overview, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return Overview{}, err
	}

	summaries := clusterSummaries(ds)
	return Overview{
		TotalParticipants: len(ds.Records),
		NumClusters:       len(summaries),
		Clusters:          summaries,
	}, nil
}

// clusterSummaries computes size, share, and mean rating per cluster, and
// derives the engagement rank by ordering clusters on mean rating
// descending. The rank makes the interpretation binding re-derivable from
// data instead of trusting raw cluster ids across refits.
func clusterSummaries(ds *survey.Dataset) []ClusterSummary {
	ids := ds.ClusterIDs()
	total := len(ds.Records)

	summaries := make([]ClusterSummary, 0, len(ids))
	for _, id := range ids {
		cohort := ds.ClusterRecords(id)
		avg := meanOverCompetencies(cohort, ds.Schema.CompetencyKeys)
		pct := 0.0
		if total > 0 {
			pct = float64(len(cohort)) / float64(total) * 100
		}
		summaries = append(summaries, ClusterSummary{
			ClusterID:      id,
			Participants:   len(cohort),
			Percentage:     pct,
			AvgRating:      avg,
			Interpretation: config.ClusterInterpretation(id),
		})
	}

	byAvg := make([]int, len(summaries))
	for i := range byAvg {
		byAvg[i] = i
	}
	sort.SliceStable(byAvg, func(a, b int) bool {
		return summaries[byAvg[a]].AvgRating > summaries[byAvg[b]].AvgRating
	})
	for rank, idx := range byAvg {
		summaries[idx].EngagementRank = rank + 1
	}

	return summaries
}

func meanOverCompetencies(records []survey.Record, keys []string) float64 {
	colMeans := needs.CompetencyAverages(records, keys)
	if len(colMeans) == 0 {
		return 0
	}
	var sum float64
	for _, m := range colMeans {
		sum += m
	}
	return sum / float64(len(colMeans))
}
