package usecase

import (
	"context"
	"sort"

	"tna-analytics/internal/config"
	"tna-analytics/internal/domain/needs"
	"tna-analytics/internal/domain/survey"
)

type CompetencyNeed struct {
	Competency string  `json:"competency"`
	AvgRating  float64 `json:"avg_rating"`
	NeedLevel  string  `json:"need_level"`
}

type DomainComparison struct {
	DomainID   string  `json:"domain_id"`
	DomainName string  `json:"domain_name"`
	ClusterAvg float64 `json:"cluster_avg"`
	OverallAvg float64 `json:"overall_avg"`
	Gap        float64 `json:"gap"`
}

type PriorityArea struct {
	DomainName string  `json:"domain_name"`
	Gap        float64 `json:"gap"`
	AvgRating  float64 `json:"avg_rating"`
	Priority   string  `json:"priority,omitempty"`
}

type ClusterProfile struct {
	ClusterID      int                `json:"cluster_id"`
	Interpretation string             `json:"interpretation"`
	Participants   int                `json:"participants"`
	AvgRating      float64            `json:"avg_rating"`
	TopNeeds       []CompetencyNeed   `json:"top_needs"`
	Domains        []DomainComparison `json:"domains"`
	HighPriority   []PriorityArea     `json:"high_priority_areas"`
	LowerPriority  []PriorityArea     `json:"lower_priority_areas"`
}

type ClusterUsecase struct {
	datasets DatasetProvider
}

func NewClusterUsecase(datasets DatasetProvider) *ClusterUsecase {
	return &ClusterUsecase{datasets: datasets}
}

// List returns the summaries for every cluster in the dataset.
func (u *ClusterUsecase) List(ctx context.Context) ([]ClusterSummary, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return nil, err
	}
	return clusterSummaries(ds), nil
}

// Profile builds the per-cluster analysis page: interpretation, headline
// numbers, top competency needs, and the domain comparison against the
// overall averages.
func (u *ClusterUsecase) Profile(ctx context.Context, clusterID int) (ClusterProfile, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return ClusterProfile{}, err
	}

	cohort := ds.ClusterRecords(clusterID)
	if len(cohort) == 0 {
		return ClusterProfile{}, ErrClusterNotFound
	}

	profile := ClusterProfile{
		ClusterID:      clusterID,
		Interpretation: config.ClusterInterpretation(clusterID),
		Participants:   len(cohort),
		AvgRating:      meanOverCompetencies(cohort, ds.Schema.CompetencyKeys),
		TopNeeds:       topCompetencyNeeds(cohort, ds.Schema.CompetencyKeys, 5),
	}

	cohortAvgs := needs.DomainAverages(cohort, ds.Schema.Domains)
	overallAvgs := needs.DomainAverages(ds.Records, ds.Schema.Domains)
	for _, d := range ds.Schema.Domains {
		cAvg, ok := cohortAvgs[d.ID]
		if !ok {
			continue
		}
		oAvg := overallAvgs[d.ID]
		profile.Domains = append(profile.Domains, DomainComparison{
			DomainID:   d.ID,
			DomainName: d.Name,
			ClusterAvg: cAvg,
			OverallAvg: oAvg,
			Gap:        needs.Gap(cAvg, oAvg),
		})
	}

	profile.HighPriority, profile.LowerPriority = priorityAreas(profile.Domains)
	return profile, nil
}

func topCompetencyNeeds(cohort []survey.Record, keys []string, limit int) []CompetencyNeed {
	avgs := needs.CompetencyAverages(cohort, keys)

	items := make([]CompetencyNeed, 0, len(avgs))
	for _, key := range keys {
		avg, ok := avgs[key]
		if !ok {
			continue
		}
		items = append(items, CompetencyNeed{
			Competency: survey.CompetencyName(key),
			AvgRating:  avg,
			NeedLevel:  competencyNeedLevel(avg),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].AvgRating > items[j].AvgRating })
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func competencyNeedLevel(avg float64) string {
	switch {
	case avg >= 4.0:
		return "High/Urgent Need"
	case avg >= 3.0:
		return "Moderate Need"
	default:
		return "Low Need"
	}
}

// priorityAreas splits domains into those above the overall average (top 5,
// largest gap first) and those below it (bottom 3).
func priorityAreas(domains []DomainComparison) (high, low []PriorityArea) {
	sorted := make([]DomainComparison, len(domains))
	copy(sorted, domains)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Gap > sorted[j].Gap })

	for _, d := range sorted {
		if d.Gap <= 0 || len(high) >= 5 {
			continue
		}
		area := PriorityArea{DomainName: d.DomainName, Gap: d.Gap, AvgRating: d.ClusterAvg}
		switch {
		case d.ClusterAvg >= 4:
			area.Priority = "URGENT"
		case d.ClusterAvg >= 3:
			area.Priority = "HIGH"
		}
		high = append(high, area)
	}

	for i := len(sorted) - 1; i >= 0 && len(low) < 3; i-- {
		d := sorted[i]
		if d.Gap >= 0 {
			break
		}
		low = append(low, PriorityArea{DomainName: d.DomainName, Gap: d.Gap, AvgRating: d.ClusterAvg})
	}
	return high, low
}
