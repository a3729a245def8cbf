package usecase

import (
	"context"

	"tna-analytics/internal/config"
	"tna-analytics/internal/domain/needs"
)

type AssessmentDomain struct {
	DomainID     string   `json:"domain_id"`
	DomainName   string   `json:"domain_name"`
	Competencies []string `json:"competencies"`
}

type AssessmentForm struct {
	RatingMin float64            `json:"rating_min"`
	RatingMax float64            `json:"rating_max"`
	Domains   []AssessmentDomain `json:"domains"`
}

type PersonalRecommendation struct {
	DomainID   string  `json:"domain_id"`
	DomainName string  `json:"domain_name"`
	AvgRating  float64 `json:"avg_rating"`
	Gap        float64 `json:"gap"`
	Priority   string  `json:"priority"`
}

type AssessmentResult struct {
	Cluster         int                      `json:"cluster"`
	Interpretation  string                   `json:"interpretation"`
	Recommendations []PersonalRecommendation `json:"recommendations"`
}

// AssessmentUsecase classifies a fresh self-assessment into one of the
// existing clusters and derives the respondent's personal training
// recommendations.
type AssessmentUsecase struct {
	datasets DatasetProvider
	models   ModelProvider
}

func NewAssessmentUsecase(datasets DatasetProvider, models ModelProvider) *AssessmentUsecase {
	return &AssessmentUsecase{datasets: datasets, models: models}
}

// Form returns the competency schema the assessment form renders from, in
// the same grouping and order the model was fitted with.
func (u *AssessmentUsecase) Form(ctx context.Context) (AssessmentForm, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return AssessmentForm{}, err
	}

	form := AssessmentForm{RatingMin: needs.MinRating, RatingMax: needs.MaxRating}
	for _, d := range ds.Schema.Domains {
		form.Domains = append(form.Domains, AssessmentDomain{
			DomainID:     d.ID,
			DomainName:   d.Name,
			Competencies: append([]string(nil), d.Keys...),
		})
	}
	return form, nil
}

// Submit runs the prediction pipeline on the submitted ratings. Values are
// clamped into the rating scale and anything missing or unparseable defaults
// to the midpoint -- a structurally valid dataset is the only hard
// requirement.
func (u *AssessmentUsecase) Submit(ctx context.Context, rawRatings map[string]any) (AssessmentResult, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return AssessmentResult{}, err
	}

	model, err := u.models.GetOrFit(ds)
	if err != nil {
		return AssessmentResult{}, err
	}

	ratings := make(map[string]float64, len(model.Schema.CompetencyKeys))
	for _, key := range model.Schema.CompetencyKeys {
		raw, ok := rawRatings[key]
		if !ok {
			ratings[key] = needs.MidRating
			continue
		}
		ratings[key] = needs.ParseRating(raw)
	}

	cluster, err := model.Predict(ratings)
	if err != nil {
		return AssessmentResult{}, err
	}

	result := AssessmentResult{
		Cluster:        cluster,
		Interpretation: config.ClusterInterpretation(cluster),
	}

	respondentAvgs := needs.RespondentDomainAverages(ratings, ds.Schema.Domains)
	overallAvgs := needs.DomainAverages(ds.Records, ds.Schema.Domains)

	ids := make([]string, 0, len(ds.Schema.Domains))
	for _, d := range ds.Schema.Domains {
		ids = append(ids, d.ID)
	}
	for _, rec := range needs.BuildRecommendations(ids, respondentAvgs, overallAvgs, config.DomainName) {
		result.Recommendations = append(result.Recommendations, PersonalRecommendation{
			DomainID:   rec.DomainID,
			DomainName: rec.DomainName,
			AvgRating:  rec.AvgRating,
			Gap:        rec.Gap,
			Priority:   rec.Priority.String(),
		})
	}
	return result, nil
}
