package usecase

import (
	"context"
	"testing"

	"tna-analytics/internal/domain/survey"
)

func assessmentFixture(t *testing.T) (*AssessmentUsecase, *survey.Dataset) {
	ds := separableDataset(t, "fp-assess")
	repo := NewModelRepository(2, 42)
	return NewAssessmentUsecase(staticDatasets{ds: ds}, repo), ds
}

func TestAssessmentForm(t *testing.T) {
	uc, ds := assessmentFixture(t)

	form, err := uc.Form(context.Background())
	if err != nil {
		t.Fatalf("Form: %v", err)
	}

	if form.RatingMin != 1 || form.RatingMax != 5 {
		t.Errorf("rating scale = [%v, %v], want [1, 5]", form.RatingMin, form.RatingMax)
	}
	if len(form.Domains) != len(ds.Schema.Domains) {
		t.Fatalf("len(Domains) = %d, want %d", len(form.Domains), len(ds.Schema.Domains))
	}
	for i, d := range form.Domains {
		if d.DomainID != ds.Schema.Domains[i].ID {
			t.Errorf("domain[%d] = %s, want %s", i, d.DomainID, ds.Schema.Domains[i].ID)
		}
		if len(d.Competencies) == 0 {
			t.Errorf("domain %s has no competencies", d.DomainID)
		}
	}
}

func TestAssessmentSubmitClassifiesRespondent(t *testing.T) {
	uc, _ := assessmentFixture(t)

	lowResult, err := uc.Submit(context.Background(), map[string]any{
		"1. Planning": 1.0, "1. Delivery": 1.0, "2. Evaluation": 1.0,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	highResult, err := uc.Submit(context.Background(), map[string]any{
		"1. Planning": "5", "1. Delivery": 5, "2. Evaluation": 4.9,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if lowResult.Cluster == highResult.Cluster {
		t.Errorf("opposite profiles classified identically (cluster %d)", lowResult.Cluster)
	}
	if lowResult.Interpretation == "" || highResult.Interpretation == "" {
		t.Error("missing interpretation")
	}

	// The high-need respondent sits above every overall average, so each
	// domain qualifies at high or urgent priority.
	if len(highResult.Recommendations) == 0 {
		t.Fatal("expected recommendations for all-5 ratings")
	}
	for _, rec := range highResult.Recommendations {
		if rec.Priority != "URGENT" && rec.Priority != "HIGH" {
			t.Errorf("recommendation %s priority = %q", rec.DomainID, rec.Priority)
		}
	}
}

func TestAssessmentSubmitBlankFormYieldsNoRecommendations(t *testing.T) {
	// A dataset where everyone rates the midpoint: a blank submission
	// matches the population exactly, so nothing qualifies.
	mid := map[string]float64{"1. Planning": 3, "1. Delivery": 3, "2. Evaluation": 3}
	ds := testDataset(t, "fp-mid", separableColumns, []survey.Record{
		record(0, mid), record(0, mid), record(1, mid), record(1, mid),
	})
	uc := NewAssessmentUsecase(staticDatasets{ds: ds}, NewModelRepository(2, 42))

	result, err := uc.Submit(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("recommendations = %+v, want none for a blank form", result.Recommendations)
	}
	if result.Interpretation == "" {
		t.Error("missing interpretation")
	}
}

func TestAssessmentSubmitToleratesGarbageValues(t *testing.T) {
	uc, _ := assessmentFixture(t)

	if _, err := uc.Submit(context.Background(), map[string]any{
		"1. Planning":   "not a number",
		"1. Delivery":   nil,
		"unknown key":   99,
		"2. Evaluation": []string{"nope"},
	}); err != nil {
		t.Fatalf("Submit with garbage input: %v", err)
	}
}
